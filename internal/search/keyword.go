// Package search implements keyword search over a normalized API spec.
package search

import (
	"encoding/json"
	"strings"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/nlp"
)

// Match is one matched operation.
type Match struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// ComponentMatch is a matched reusable component (schema or security
// scheme).
type ComponentMatch struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Result is the structured outcome of one search query. Endpoints maps a
// path to its matched operations keyed by uppercase method.
type Result struct {
	Keyword      string                      `json:"keyword"`
	TotalMatches int                         `json:"total_matches"`
	Endpoints    map[string]map[string]Match `json:"endpoints"`
	Components   map[string]ComponentMatch   `json:"components,omitempty"`
	Error        string                      `json:"error,omitempty"`
}

// Keyword searches the spec for operations and components containing the
// keyword. Matching is case-insensitive substring over the path, the
// method, and the JSON-marshalled operation. A nil spec or empty keyword
// yields a Result with Error set; the function never fails.
func Keyword(spec *apispec.Spec, keyword string) *Result {
	result := &Result{
		Keyword:   strings.TrimSpace(keyword),
		Endpoints: map[string]map[string]Match{},
	}

	if spec == nil {
		result.Error = "no API spec uploaded yet"
		return result
	}
	kw := strings.ToLower(result.Keyword)
	if kw == "" {
		result.Error = "empty keyword"
		return result
	}

	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		for _, method := range item.SortedMethods() {
			op := item[method]
			if !operationMatches(path, method, op, kw) {
				continue
			}
			upper := strings.ToUpper(method)
			if result.Endpoints[path] == nil {
				result.Endpoints[path] = map[string]Match{}
			}
			result.Endpoints[path][upper] = Match{
				Summary:     op.Summary,
				Description: nlp.SmartDescription(path, method, op),
			}
			result.TotalMatches++
		}
	}

	for name, scheme := range spec.Components.SecuritySchemes {
		if strings.Contains(strings.ToLower(name), kw) || strings.Contains(strings.ToLower(scheme.Type), kw) {
			addComponent(result, name, ComponentMatch{Type: "securityScheme", Name: name})
		}
	}
	for _, name := range spec.Components.Schemas {
		if strings.Contains(strings.ToLower(name), kw) {
			addComponent(result, name, ComponentMatch{Type: "schema", Name: name})
		}
	}

	return result
}

// operationMatches checks the path, method, and the operation's JSON blob
// for the lowercase keyword.
func operationMatches(path, method string, op apispec.Operation, kw string) bool {
	if strings.Contains(strings.ToLower(path), kw) || strings.Contains(method, kw) {
		return true
	}
	blob, err := json.Marshal(op)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(blob)), kw)
}

func addComponent(result *Result, name string, match ComponentMatch) {
	if result.Components == nil {
		result.Components = map[string]ComponentMatch{}
	}
	result.Components[name] = match
	result.TotalMatches++
}
