package apispec

import "sort"

// Spec is the normalized form every supported input format is reduced to.
// Paths maps an endpoint path to its operations keyed by lowercase method.
type Spec struct {
	Info       Info                `json:"info"`
	Paths      map[string]PathItem `json:"paths"`
	Components Components          `json:"components,omitempty"`
	// GlobalSecurity is true when the source spec declares a top-level
	// security requirement.
	GlobalSecurity bool `json:"global_security,omitempty"`
}

// Info holds the spec's identifying metadata.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// PathItem maps a lowercase HTTP method to its operation.
type PathItem map[string]Operation

// Operation describes a single method on a single path.
type Operation struct {
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description,omitempty"`
	OperationID string              `json:"operationId,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody []BodyField         `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses,omitempty"`
}

// Parameter is a query, path, or header parameter.
type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Type        string `json:"type,omitempty"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// BodyField is one property of a JSON request body schema.
type BodyField struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// Response describes one response status of an operation.
type Response struct {
	Description string `json:"description,omitempty"`
	Example     any    `json:"example,omitempty"`
}

// Components carries the reusable pieces consulted by the auth section
// and component search.
type Components struct {
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitempty"`
	Schemas         []string                  `json:"schemas,omitempty"`
}

// SecurityScheme is a named authentication scheme.
type SecurityScheme struct {
	Type         string   `json:"type"`
	Scheme       string   `json:"scheme,omitempty"`
	BearerFormat string   `json:"bearerFormat,omitempty"`
	Flows        []string `json:"flows,omitempty"`
}

// methodOrder fixes the display order of well-known HTTP methods.
var methodOrder = map[string]int{
	"get": 0, "post": 1, "put": 2, "patch": 3, "delete": 4, "head": 5, "options": 6,
}

// SortedPaths returns the spec's paths in lexical order.
func (s *Spec) SortedPaths() []string {
	paths := make([]string, 0, len(s.Paths))
	for p := range s.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// SortedMethods returns the item's methods in canonical HTTP order, with
// unknown methods last, alphabetically.
func (p PathItem) SortedMethods() []string {
	methods := make([]string, 0, len(p))
	for m := range p {
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool {
		oi, iok := methodOrder[methods[i]]
		oj, jok := methodOrder[methods[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok:
			return true
		case jok:
			return false
		default:
			return methods[i] < methods[j]
		}
	})
	return methods
}

// PathCount returns the number of distinct paths.
func (s *Spec) PathCount() int { return len(s.Paths) }
