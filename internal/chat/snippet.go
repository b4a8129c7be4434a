package chat

import (
	"fmt"
	"strings"

	"github.com/specdoc/specdoc/internal/apispec"
)

// placeholderValues maps schema types to sample values used in generated
// request bodies.
var placeholderValues = map[string]any{
	"string":  "example",
	"integer": 1,
	"number":  1.0,
	"boolean": true,
	"array":   []any{},
	"object":  map[string]any{},
}

// exampleReply builds a sample request snippet for the endpoint the
// message mentions, or the first operation with a body otherwise.
func exampleReply(spec *apispec.Spec, message string) Response {
	path, method, op, ok := matchOperation(spec, message)
	if !ok {
		path, method, op, ok = firstBodyOperation(spec)
	}
	if !ok {
		return Response{
			Intent: IntentExample,
			Answer: "The spec defines no endpoints to build an example from.",
		}
	}

	snippet := buildSnippet(path, method, op)
	upper := strings.ToUpper(method)
	answer := fmt.Sprintf("To call %s, send a %s request to %s", describeOp(path, op), upper, path)
	if len(snippet.Body) > 0 {
		answer += " with a JSON body containing " + strings.Join(sortedKeys(snippet.Body), ", ")
	}
	answer += "."

	return Response{
		Intent:      IntentExample,
		Answer:      answer,
		CodeSnippet: snippet,
		Summary:     fmt.Sprintf("Sample %s request for %s.", upper, path),
	}
}

// matchOperation finds the operation whose path appears in the message.
// Longer paths match first so /users/{id} beats /users.
func matchOperation(spec *apispec.Spec, message string) (string, string, apispec.Operation, bool) {
	msg := strings.ToLower(message)

	best := ""
	for _, path := range spec.SortedPaths() {
		if strings.Contains(msg, strings.ToLower(path)) && len(path) > len(best) {
			best = path
		}
	}
	if best == "" {
		return "", "", apispec.Operation{}, false
	}

	item := spec.Paths[best]
	methods := item.SortedMethods()

	// Prefer a method the message names.
	for _, m := range methods {
		if strings.Contains(msg, m) {
			return best, m, item[m], true
		}
	}
	if len(methods) > 0 {
		return best, methods[0], item[methods[0]], true
	}
	return "", "", apispec.Operation{}, false
}

func firstBodyOperation(spec *apispec.Spec) (string, string, apispec.Operation, bool) {
	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		for _, method := range item.SortedMethods() {
			if len(item[method].RequestBody) > 0 {
				return path, method, item[method], true
			}
		}
	}
	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		methods := item.SortedMethods()
		if len(methods) > 0 {
			return path, methods[0], item[methods[0]], true
		}
	}
	return "", "", apispec.Operation{}, false
}

func buildSnippet(path, method string, op apispec.Operation) *Snippet {
	snippet := &Snippet{
		Endpoint: path,
		Method:   strings.ToUpper(method),
		Headers:  map[string]string{"Content-Type": "application/json"},
	}
	if len(op.RequestBody) > 0 {
		snippet.Body = map[string]any{}
		for _, f := range op.RequestBody {
			value, ok := placeholderValues[f.Type]
			if !ok {
				value = "example"
			}
			snippet.Body[f.Name] = value
		}
	}
	return snippet
}

func describeOp(path string, op apispec.Operation) string {
	if op.Summary != "" {
		return strings.TrimRight(op.Summary, ".")
	}
	return path
}
