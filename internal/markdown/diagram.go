package markdown

import (
	"regexp"
	"strings"
)

var mermaidBlock = regexp.MustCompile("(?s)```mermaid\\s*\n(.*?)```")

// ExtractDiagram returns the inner text of the first mermaid fenced code
// block in the section, verbatim except for surrounding blank lines. The
// second return is false when the section carries no diagram block.
func ExtractDiagram(section string) (string, bool) {
	m := mermaidBlock.FindStringSubmatch(section)
	if m == nil {
		return "", false
	}
	return strings.Trim(m[1], "\n"), true
}
