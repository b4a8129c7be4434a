package apispec

import (
	"testing"
)

const openAPISample = `{
  "openapi": "3.0.0",
  "info": {"title": "Petstore", "version": "1.0.0", "description": "A sample API."},
  "security": [{"api_key": []}],
  "paths": {
    "/pets": {
      "get": {
        "summary": "List pets",
        "operationId": "listPets",
        "tags": ["pets"],
        "parameters": [
          {"name": "limit", "in": "query", "required": false, "schema": {"type": "integer"}, "description": "Max items"}
        ],
        "responses": {"200": {"description": "OK"}}
      },
      "post": {
        "summary": "Create a pet",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "properties": {
                  "name": {"type": "string", "description": "Pet name"},
                  "age": {"type": "integer"}
                },
                "required": ["name"]
              }
            }
          }
        },
        "responses": {"201": {"description": "Created"}}
      }
    }
  },
  "components": {
    "securitySchemes": {"api_key": {"type": "apiKey"}},
    "schemas": {"Pet": {}, "Error": {}}
  }
}`

func TestNormalizeOpenAPI(t *testing.T) {
	spec, err := ParseAndNormalize([]byte(openAPISample))
	if err != nil {
		t.Fatalf("ParseAndNormalize: %v", err)
	}

	if spec.Info.Title != "Petstore" || spec.Info.Version != "1.0.0" {
		t.Errorf("Info = %+v, want Petstore 1.0.0", spec.Info)
	}
	if spec.PathCount() != 1 {
		t.Fatalf("PathCount = %d, want 1", spec.PathCount())
	}

	get, ok := spec.Paths["/pets"]["get"]
	if !ok {
		t.Fatal("GET /pets missing")
	}
	if get.Summary != "List pets" || get.OperationID != "listPets" {
		t.Errorf("GET /pets = %+v", get)
	}
	if len(get.Parameters) != 1 {
		t.Fatalf("GET /pets has %d parameters, want 1", len(get.Parameters))
	}
	p := get.Parameters[0]
	if p.Name != "limit" || p.In != "query" || p.Type != "integer" || p.Required {
		t.Errorf("parameter = %+v", p)
	}

	post := spec.Paths["/pets"]["post"]
	if len(post.RequestBody) != 2 {
		t.Fatalf("POST /pets body has %d fields, want 2", len(post.RequestBody))
	}
	// Body fields come back sorted by name.
	if post.RequestBody[0].Name != "age" || post.RequestBody[1].Name != "name" {
		t.Errorf("body fields = %+v, want age then name", post.RequestBody)
	}
	if !post.RequestBody[1].Required {
		t.Error("name field should be required")
	}
	if post.RequestBody[0].Required {
		t.Error("age field should not be required")
	}

	if !spec.GlobalSecurity {
		t.Error("GlobalSecurity should be set")
	}
	if _, ok := spec.Components.SecuritySchemes["api_key"]; !ok {
		t.Errorf("security schemes = %+v, want api_key", spec.Components.SecuritySchemes)
	}
	if len(spec.Components.Schemas) != 2 || spec.Components.Schemas[0] != "Error" {
		t.Errorf("schemas = %v, want sorted [Error Pet]", spec.Components.Schemas)
	}
}

func TestNormalizeSwaggerSecurityDefinitions(t *testing.T) {
	raw := map[string]any{
		"swagger": "2.0",
		"info":    map[string]any{"title": "Legacy"},
		"paths":   map[string]any{"/v1": map[string]any{"get": map[string]any{"summary": "Root"}}},
		"securityDefinitions": map[string]any{
			"basic": map[string]any{"type": "basic"},
		},
	}

	spec := Normalize(raw)
	scheme, ok := spec.Components.SecuritySchemes["basic"]
	if !ok {
		t.Fatalf("security schemes = %+v, want basic", spec.Components.SecuritySchemes)
	}
	if scheme.Type != "basic" {
		t.Errorf("scheme type = %q, want basic", scheme.Type)
	}
}

func TestNormalizePostman(t *testing.T) {
	raw := map[string]any{
		"info": map[string]any{"name": "My Collection"},
		"item": []any{
			map[string]any{
				"name": "Users folder",
				"item": []any{
					map[string]any{
						"name": "List users",
						"request": map[string]any{
							"method": "GET",
							"url": map[string]any{
								"path": []any{"api", "users"},
							},
						},
					},
				},
			},
			map[string]any{
				"name": "Health",
				"request": map[string]any{
					"method": "GET",
					"url":    "/health",
				},
			},
		},
	}

	spec := Normalize(raw)
	if spec.Info.Title != "My Collection" {
		t.Errorf("Title = %q, want My Collection", spec.Info.Title)
	}
	if spec.PathCount() != 2 {
		t.Fatalf("PathCount = %d, want 2: %v", spec.PathCount(), spec.SortedPaths())
	}
	if op, ok := spec.Paths["/api/users"]["get"]; !ok || op.Summary != "List users" {
		t.Errorf("GET /api/users = %+v, %v", op, ok)
	}
	if _, ok := spec.Paths["/health"]["get"]; !ok {
		t.Errorf("GET /health missing: %v", spec.SortedPaths())
	}
}

func TestNormalizeCustomEndpoints(t *testing.T) {
	raw := map[string]any{
		"name":    "Billing",
		"version": "2.1",
		"endpoints": []any{
			map[string]any{
				"path":        "/invoices/{id}",
				"method":      "POST",
				"name":        "Create invoice",
				"description": "Creates an invoice.",
				"queryParams": map[string]any{"dry_run": "boolean"},
				"pathParams":  map[string]any{"id": "string"},
				"body":        map[string]any{"amount": 100},
				"response":    map[string]any{"status": "ok"},
			},
		},
	}

	spec := Normalize(raw)
	if spec.Info.Title != "Billing" || spec.Info.Version != "2.1" {
		t.Errorf("Info = %+v", spec.Info)
	}

	op, ok := spec.Paths["/invoices/{id}"]["post"]
	if !ok {
		t.Fatalf("POST /invoices/{id} missing: %v", spec.SortedPaths())
	}
	if op.Summary != "Create invoice" {
		t.Errorf("Summary = %q", op.Summary)
	}
	if len(op.Parameters) != 2 {
		t.Fatalf("got %d parameters, want 2: %+v", len(op.Parameters), op.Parameters)
	}
	// Query params come first, then path params; path params are required.
	if op.Parameters[0].Name != "dry_run" || op.Parameters[0].In != "query" {
		t.Errorf("Parameters[0] = %+v", op.Parameters[0])
	}
	if op.Parameters[1].Name != "id" || op.Parameters[1].In != "path" || !op.Parameters[1].Required {
		t.Errorf("Parameters[1] = %+v", op.Parameters[1])
	}
	if len(op.RequestBody) != 1 || op.RequestBody[0].Name != "amount" {
		t.Errorf("RequestBody = %+v", op.RequestBody)
	}
	if op.Responses["200"].Example == nil {
		t.Errorf("Responses = %+v, want 200 example", op.Responses)
	}
}

func TestNormalizeMinimal(t *testing.T) {
	raw := map[string]any{
		"title": "Tiny",
		"/ping": map[string]any{
			"GET": map[string]any{"summary": "Ping"},
		},
		"ignored": "not a path",
	}

	spec := Normalize(raw)
	if spec.Info.Title != "Tiny" {
		t.Errorf("Title = %q, want Tiny", spec.Info.Title)
	}
	if spec.PathCount() != 1 {
		t.Fatalf("PathCount = %d, want 1: %v", spec.PathCount(), spec.SortedPaths())
	}
	if op, ok := spec.Paths["/ping"]["get"]; !ok || op.Summary != "Ping" {
		t.Errorf("GET /ping = %+v, %v", op, ok)
	}
}

func TestParseYAML(t *testing.T) {
	src := []byte("openapi: 3.0.0\ninfo:\n  title: YAML API\npaths:\n  /a:\n    get:\n      summary: A\n")
	spec, err := ParseAndNormalize(src)
	if err != nil {
		t.Fatalf("ParseAndNormalize: %v", err)
	}
	if spec.Info.Title != "YAML API" {
		t.Errorf("Title = %q, want YAML API", spec.Info.Title)
	}
	if _, ok := spec.Paths["/a"]["get"]; !ok {
		t.Errorf("GET /a missing: %v", spec.SortedPaths())
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("{not json\n\t- nor: yaml: [")); err == nil {
		t.Error("Parse accepted malformed input")
	}
}

func TestSortedMethodsCanonicalOrder(t *testing.T) {
	item := PathItem{
		"delete": {}, "get": {}, "post": {}, "patch": {},
	}
	got := item.SortedMethods()
	want := []string{"get", "post", "patch", "delete"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
