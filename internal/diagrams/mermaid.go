package diagrams

import (
	"fmt"
	"strings"

	"github.com/specdoc/specdoc/internal/apispec"
)

// FlowDiagram generates a mermaid flowchart of every operation in the
// spec, with a single Client node fanning out to each METHOD path.
func FlowDiagram(spec *apispec.Spec) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")
	b.WriteString("    Client((Client))\n")

	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		for _, method := range item.SortedMethods() {
			upper := strings.ToUpper(method)
			id := sanitizeID(upper + "_" + path)
			label := escapeMermaid(upper + " " + path)
			b.WriteString(fmt.Sprintf("    Client --> %s[%s]\n", id, label))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FencedFlowDiagram wraps the flow diagram in a mermaid code fence for
// embedding in markdown.
func FencedFlowDiagram(spec *apispec.Spec) string {
	return "```mermaid\n" + FlowDiagram(spec) + "\n```"
}

// sanitizeID converts a string into a safe mermaid node ID.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		".", "_",
		"-", "_",
		" ", "_",
		"{", "",
		"}", "",
		"(", "_",
		")", "_",
		":", "_",
	)
	return replacer.Replace(s)
}

// escapeMermaid escapes characters that have special meaning in mermaid
// node labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
