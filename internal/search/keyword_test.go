package search

import (
	"testing"

	"github.com/specdoc/specdoc/internal/apispec"
)

func fixtureSpec() *apispec.Spec {
	return &apispec.Spec{
		Info: apispec.Info{Title: "Shop"},
		Paths: map[string]apispec.PathItem{
			"/users": {
				"get":  {Summary: "List users"},
				"post": {Summary: "Create a user", Description: "Registers an account."},
			},
			"/orders": {
				"get": {Summary: "List orders"},
			},
		},
		Components: apispec.Components{
			SecuritySchemes: map[string]apispec.SecurityScheme{
				"user_token": {Type: "http"},
			},
			Schemas: []string{"User", "Order"},
		},
	}
}

func TestKeywordMatchesPathAndContent(t *testing.T) {
	result := Keyword(fixtureSpec(), "user")

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	ops, ok := result.Endpoints["/users"]
	if !ok {
		t.Fatalf("no /users matches: %+v", result.Endpoints)
	}
	if _, ok := ops["GET"]; !ok {
		t.Errorf("GET /users not matched: %+v", ops)
	}
	if _, ok := ops["POST"]; !ok {
		t.Errorf("POST /users not matched: %+v", ops)
	}
	if _, ok := result.Endpoints["/orders"]; ok {
		t.Errorf("/orders should not match %q", "user")
	}

	// Matches components too: schema name and scheme name.
	if _, ok := result.Components["User"]; !ok {
		t.Errorf("schema User not matched: %+v", result.Components)
	}
	if _, ok := result.Components["user_token"]; !ok {
		t.Errorf("scheme user_token not matched: %+v", result.Components)
	}

	wantTotal := 2 + 2 // two operations, two components
	if result.TotalMatches != wantTotal {
		t.Errorf("TotalMatches = %d, want %d", result.TotalMatches, wantTotal)
	}
}

func TestKeywordCaseInsensitive(t *testing.T) {
	result := Keyword(fixtureSpec(), "ORDERS")
	if _, ok := result.Endpoints["/orders"]; !ok {
		t.Errorf("case-insensitive match failed: %+v", result.Endpoints)
	}
}

func TestKeywordMatchesOperationBody(t *testing.T) {
	// "account" appears only inside the POST description.
	result := Keyword(fixtureSpec(), "account")
	ops := result.Endpoints["/users"]
	if _, ok := ops["POST"]; !ok {
		t.Fatalf("POST /users not matched via description: %+v", result.Endpoints)
	}
	if _, ok := ops["GET"]; ok {
		t.Errorf("GET /users should not match %q", "account")
	}
}

func TestKeywordNilSpec(t *testing.T) {
	result := Keyword(nil, "anything")
	if result.Error != "no API spec uploaded yet" {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestKeywordEmpty(t *testing.T) {
	result := Keyword(fixtureSpec(), "   ")
	if result.Error != "empty keyword" {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestKeywordNoMatches(t *testing.T) {
	result := Keyword(fixtureSpec(), "zzzzz")
	if result.Error != "" || result.TotalMatches != 0 {
		t.Errorf("result = %+v, want zero matches without error", result)
	}
}
