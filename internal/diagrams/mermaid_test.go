package diagrams

import (
	"strings"
	"testing"

	"github.com/specdoc/specdoc/internal/apispec"
)

func TestFlowDiagram(t *testing.T) {
	spec := &apispec.Spec{
		Paths: map[string]apispec.PathItem{
			"/pets":      {"get": {}, "post": {}},
			"/pets/{id}": {"delete": {}},
		},
	}

	got := FlowDiagram(spec)

	if !strings.HasPrefix(got, "flowchart LR\n    Client((Client))") {
		t.Fatalf("diagram preamble wrong:\n%s", got)
	}
	for _, want := range []string{
		"Client --> GET__pets[GET /pets]",
		"Client --> POST__pets[POST /pets]",
		"Client --> DELETE__pets_id[DELETE /pets/#lbrace;id#rbrace;]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("diagram missing %q:\n%s", want, got)
		}
	}

	// Deterministic ordering: paths lexically, methods canonically.
	getIdx := strings.Index(got, "GET__pets[")
	postIdx := strings.Index(got, "POST__pets[")
	delIdx := strings.Index(got, "DELETE__pets_id[")
	if !(getIdx < postIdx && postIdx < delIdx) {
		t.Errorf("edge ordering wrong:\n%s", got)
	}
}

func TestFlowDiagramEmptySpec(t *testing.T) {
	got := FlowDiagram(&apispec.Spec{Paths: map[string]apispec.PathItem{}})
	want := "flowchart LR\n    Client((Client))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFencedFlowDiagram(t *testing.T) {
	got := FencedFlowDiagram(&apispec.Spec{Paths: map[string]apispec.PathItem{}})
	if !strings.HasPrefix(got, "```mermaid\n") || !strings.HasSuffix(got, "\n```") {
		t.Errorf("fence wrong: %q", got)
	}
}
