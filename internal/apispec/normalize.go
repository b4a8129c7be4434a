package apispec

import (
	"fmt"
	"sort"
	"strings"
)

// Normalize reduces a raw parsed spec to the common Spec shape. Detection
// order: OpenAPI/Swagger (paths mapping or version marker), Postman
// collection (item list), custom endpoint list, then a minimal shape where
// top-level keys are paths.
func Normalize(raw map[string]any) *Spec {
	if paths, ok := raw["paths"].(map[string]any); ok && paths != nil {
		return normalizeOpenAPI(raw)
	}
	if items, ok := raw["item"].([]any); ok && items != nil {
		return normalizePostman(raw)
	}
	if eps, ok := raw["endpoints"].([]any); ok && eps != nil {
		return normalizeCustom(raw)
	}
	if _, ok := raw["swagger"]; ok {
		return normalizeOpenAPI(raw)
	}
	if _, ok := raw["openapi"]; ok {
		return normalizeOpenAPI(raw)
	}
	return normalizeMinimal(raw)
}

func normalizeOpenAPI(raw map[string]any) *Spec {
	spec := &Spec{
		Info:  parseInfo(mapVal(raw, "info")),
		Paths: map[string]PathItem{},
	}

	for path, v := range mapVal(raw, "paths") {
		item, ok := v.(map[string]any)
		if !ok {
			continue
		}
		pi := PathItem{}
		for method, opRaw := range item {
			op, ok := opRaw.(map[string]any)
			if !ok {
				continue
			}
			pi[strings.ToLower(method)] = parseOperation(op)
		}
		if len(pi) > 0 {
			spec.Paths[path] = pi
		}
	}

	spec.Components = parseComponents(raw)
	if sec, ok := raw["security"].([]any); ok && len(sec) > 0 {
		spec.GlobalSecurity = true
	}
	return spec
}

func normalizePostman(raw map[string]any) *Spec {
	title := strVal(mapVal(raw, "info"), "name")
	if title == "" {
		title = "Postman Collection"
	}
	spec := &Spec{
		Info:  Info{Title: title, Description: strVal(mapVal(raw, "info"), "description")},
		Paths: map[string]PathItem{},
	}

	items, _ := raw["item"].([]any)
	walkPostmanItems(items, spec.Paths)
	return spec
}

// walkPostmanItems recurses through Postman folders collecting requests.
func walkPostmanItems(items []any, paths map[string]PathItem) {
	for _, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if sub, ok := item["item"].([]any); ok {
			walkPostmanItems(sub, paths)
			continue
		}
		req, ok := item["request"].(map[string]any)
		if !ok {
			continue
		}

		method := strings.ToLower(strVal(req, "method"))
		if method == "" {
			method = "get"
		}
		path := postmanPath(req["url"])

		if _, ok := paths[path]; !ok {
			paths[path] = PathItem{}
		}
		paths[path][method] = Operation{
			Summary:     strVal(item, "name"),
			Description: strVal(req, "description"),
		}
	}
}

// postmanPath extracts a request path from Postman's url field, which may
// be a raw string or an object with a path segment list.
func postmanPath(url any) string {
	switch u := url.(type) {
	case string:
		if u == "" {
			return "/"
		}
		return u
	case map[string]any:
		if segs, ok := u["path"].([]any); ok && len(segs) > 0 {
			parts := make([]string, 0, len(segs))
			for _, s := range segs {
				parts = append(parts, fmt.Sprint(s))
			}
			return "/" + strings.Join(parts, "/")
		}
		if raw := strVal(u, "raw"); raw != "" {
			return raw
		}
	}
	return "/"
}

func normalizeCustom(raw map[string]any) *Spec {
	info := parseInfo(mapVal(raw, "info"))
	if info.Title == "" {
		info.Title = strVal(raw, "name")
		info.Version = strVal(raw, "version")
	}
	spec := &Spec{Info: info, Paths: map[string]PathItem{}}

	eps, _ := raw["endpoints"].([]any)
	for _, e := range eps {
		ep, ok := e.(map[string]any)
		if !ok {
			continue
		}
		path := strVal(ep, "path")
		if path == "" {
			path = strVal(ep, "endpoint")
		}
		if path == "" {
			path = "/"
		}
		method := strings.ToLower(strVal(ep, "method"))
		if method == "" {
			method = "get"
		}

		op := Operation{
			Summary:     firstNonEmpty(strVal(ep, "name"), strVal(ep, "summary")),
			Description: strVal(ep, "description"),
		}
		for _, name := range sortedKeys(mapVal(ep, "queryParams")) {
			op.Parameters = append(op.Parameters, Parameter{
				Name: name, In: "query",
				Type: fmt.Sprint(mapVal(ep, "queryParams")[name]),
			})
		}
		for _, name := range sortedKeys(mapVal(ep, "pathParams")) {
			op.Parameters = append(op.Parameters, Parameter{
				Name: name, In: "path", Required: true,
				Type: fmt.Sprint(mapVal(ep, "pathParams")[name]),
			})
		}
		for _, name := range sortedKeys(mapVal(ep, "body")) {
			op.RequestBody = append(op.RequestBody, BodyField{Name: name, Type: "string"})
		}
		if resp, ok := ep["response"]; ok && resp != nil {
			op.Responses = map[string]Response{
				"200": {Description: "Response example", Example: resp},
			}
		}

		if _, ok := spec.Paths[path]; !ok {
			spec.Paths[path] = PathItem{}
		}
		spec.Paths[path][method] = op
	}
	return spec
}

// normalizeMinimal treats every top-level key starting with "/" as a path.
func normalizeMinimal(raw map[string]any) *Spec {
	info := parseInfo(mapVal(raw, "info"))
	if info.Title == "" {
		info.Title = strVal(raw, "title")
	}
	if info.Title == "" {
		info.Title = "API"
	}
	spec := &Spec{Info: info, Paths: map[string]PathItem{}}

	for k, v := range raw {
		if !strings.HasPrefix(k, "/") {
			continue
		}
		pi := PathItem{}
		if methods, ok := v.(map[string]any); ok {
			for m, d := range methods {
				op, ok := d.(map[string]any)
				if !ok {
					continue
				}
				pi[strings.ToLower(m)] = parseOperation(op)
			}
		}
		spec.Paths[k] = pi
	}
	return spec
}

func parseInfo(m map[string]any) Info {
	return Info{
		Title:       strVal(m, "title"),
		Version:     fmt.Sprint(valOr(m, "version", "")),
		Description: strVal(m, "description"),
	}
}

func parseOperation(op map[string]any) Operation {
	out := Operation{
		Summary:     strVal(op, "summary"),
		Description: strVal(op, "description"),
		OperationID: strVal(op, "operationId"),
	}
	if tags, ok := op["tags"].([]any); ok {
		for _, t := range tags {
			out.Tags = append(out.Tags, fmt.Sprint(t))
		}
	}

	if params, ok := op["parameters"].([]any); ok {
		for _, p := range params {
			pm, ok := p.(map[string]any)
			if !ok {
				continue
			}
			out.Parameters = append(out.Parameters, Parameter{
				Name:        strVal(pm, "name"),
				In:          strVal(pm, "in"),
				Type:        strVal(mapVal(pm, "schema"), "type"),
				Required:    boolVal(pm, "required"),
				Description: strVal(pm, "description"),
			})
		}
	}

	out.RequestBody = parseRequestBody(mapVal(op, "requestBody"))
	out.Responses = parseResponses(mapVal(op, "responses"))
	return out
}

// parseRequestBody flattens a JSON request body schema into named fields.
func parseRequestBody(body map[string]any) []BodyField {
	var fields []BodyField
	content := mapVal(body, "content")
	for _, mediaType := range sortedKeys(content) {
		schema := mapVal(mapVal(content, mediaType), "schema")
		props := mapVal(schema, "properties")
		required := map[string]bool{}
		if reqs, ok := schema["required"].([]any); ok {
			for _, r := range reqs {
				required[fmt.Sprint(r)] = true
			}
		}
		for _, name := range sortedKeys(props) {
			pdef := mapVal(props, name)
			ptype := strVal(pdef, "type")
			if ptype == "" {
				ptype = strVal(pdef, "format")
			}
			if ptype == "" {
				ptype = "object"
			}
			fields = append(fields, BodyField{
				Name:        name,
				Type:        ptype,
				Required:    required[name],
				Description: strVal(pdef, "description"),
			})
		}
	}
	return fields
}

func parseResponses(responses map[string]any) map[string]Response {
	if len(responses) == 0 {
		return nil
	}
	out := make(map[string]Response, len(responses))
	for code, v := range responses {
		rm, ok := v.(map[string]any)
		if !ok {
			continue
		}
		resp := Response{Description: strVal(rm, "description")}
		content := mapVal(rm, "content")
		for _, mt := range sortedKeys(content) {
			if ex, ok := mapVal(content, mt)["example"]; ok {
				resp.Example = ex
				break
			}
		}
		out[code] = resp
	}
	return out
}

func parseComponents(raw map[string]any) Components {
	comps := mapVal(raw, "components")
	out := Components{}

	schemes := mapVal(comps, "securitySchemes")
	// Swagger 2.0 keeps schemes at the top level.
	if len(schemes) == 0 {
		schemes = mapVal(raw, "securityDefinitions")
	}
	if len(schemes) > 0 {
		out.SecuritySchemes = make(map[string]SecurityScheme, len(schemes))
		for name, v := range schemes {
			sm, ok := v.(map[string]any)
			if !ok {
				continue
			}
			scheme := SecurityScheme{
				Type:         strVal(sm, "type"),
				Scheme:       strVal(sm, "scheme"),
				BearerFormat: strVal(sm, "bearerFormat"),
			}
			scheme.Flows = sortedKeys(mapVal(sm, "flows"))
			out.SecuritySchemes[name] = scheme
		}
	}

	out.Schemas = sortedKeys(mapVal(comps, "schemas"))
	return out
}

// ---- raw map helpers ----

func mapVal(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}

func strVal(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

func boolVal(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	v, _ := m[key].(bool)
	return v
}

func valOr(m map[string]any, key string, def any) any {
	if m == nil {
		return def
	}
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return def
}

func sortedKeys(m map[string]any) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
