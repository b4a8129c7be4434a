package markdown

import (
	"html"
	"regexp"
	"strings"
)

// Inline substitutions, applied in fixed order: bold, italic, inline
// code, links. These are independent text replacements, not a structural
// parse; nesting across constructs is deliberately not supported.
var (
	fencePattern  = regexp.MustCompile("(?s)```.*?```")
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.+?)\*`)
	codePattern   = regexp.MustCompile("`([^`]+)`")
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// Render transforms a constrained markdown subset into HTML: 1–3 level
// headers, bold, italic, inline code, bullet list items, links, blank
// line paragraphs and single-newline breaks. Fenced code blocks are
// removed entirely rather than rendered.
//
// Header lines take the rest of the line verbatim, so inline constructs
// inside a header are not processed. That mirrors the legacy renderer's
// behavior, which downstream output depends on; fixing it to full
// markdown semantics is out of scope. Source text is HTML-escaped before
// any substitution, so untrusted input cannot inject markup.
func Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	escaped := html.EscapeString(text)
	escaped = fencePattern.ReplaceAllString(escaped, "")

	var blocks []string
	var paragraph []string

	flush := func() {
		if len(paragraph) > 0 {
			blocks = append(blocks, "<p>"+strings.Join(paragraph, "<br>")+"</p>")
			paragraph = nil
		}
	}

	for _, line := range strings.Split(escaped, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "### "):
			flush()
			blocks = append(blocks, "<h3>"+strings.TrimPrefix(trimmed, "### ")+"</h3>")
		case strings.HasPrefix(trimmed, "## "):
			flush()
			blocks = append(blocks, "<h2>"+strings.TrimPrefix(trimmed, "## ")+"</h2>")
		case strings.HasPrefix(trimmed, "# "):
			flush()
			blocks = append(blocks, "<h1>"+strings.TrimPrefix(trimmed, "# ")+"</h1>")
		case isListLine(trimmed):
			flush()
			blocks = append(blocks, "<li>"+renderInline(trimmed[2:])+"</li>")
		default:
			paragraph = append(paragraph, renderInline(trimmed))
		}
	}
	flush()

	return strings.Join(blocks, "\n")
}

// renderInline applies the inline substitution chain to one line.
func renderInline(line string) string {
	line = boldPattern.ReplaceAllString(line, "<strong>$1</strong>")
	line = italicPattern.ReplaceAllString(line, "<em>$1</em>")
	line = codePattern.ReplaceAllString(line, "<code>$1</code>")
	line = linkPattern.ReplaceAllString(line, `<a href="$2">$1</a>`)
	return line
}

// isListLine reports whether the trimmed line is an unordered list item.
func isListLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") ||
		strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "+ ")
}
