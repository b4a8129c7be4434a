package markdown

import "strings"

// CellStyle is a presentation hint derived from a cell's literal content.
type CellStyle string

const (
	StylePlain      CellStyle = "plain"
	StyleCode       CellStyle = "code"
	StyleStrong     CellStyle = "strong"
	StyleStatusOK   CellStyle = "status_ok"
	StyleStatusFail CellStyle = "status_fail"
)

// Cell is a single table entry with its display style. Text has the
// style's markers already stripped.
type Cell struct {
	Text  string    `json:"text"`
	Style CellStyle `json:"style"`
}

// Table is a parsed pipe-delimited table. Every row has exactly
// len(Headers) cells.
type Table struct {
	Headers []string `json:"headers"`
	Rows    [][]Cell `json:"rows"`
}

// ParseTable parses section text as a pipe-delimited table, or returns
// nil when the text does not look tabular. Text is tabular when it has at
// least 3 non-blank lines, at least one line containing a pipe, and at
// least 2 pipe lines that are not separator rows. The caller falls back
// to Render on nil.
func ParseTable(section string) *Table {
	var nonBlank, pipeLines []string
	for _, line := range strings.Split(section, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonBlank = append(nonBlank, line)
		if strings.Contains(line, "|") {
			pipeLines = append(pipeLines, line)
		}
	}
	if len(nonBlank) < 3 || len(pipeLines) == 0 {
		return nil
	}

	var content []string
	for _, line := range pipeLines {
		if !isSeparatorRow(line) {
			content = append(content, line)
		}
	}
	if len(content) < 2 {
		return nil
	}

	headers := splitCells(content[0])
	if len(headers) == 0 {
		return nil
	}

	t := &Table{Headers: headers}
	for _, line := range content[1:] {
		cells := splitCells(line)
		if len(cells) == 0 {
			continue
		}
		row := make([]Cell, len(headers))
		for i := range headers {
			if i < len(cells) {
				row[i] = styleCell(cells[i])
			} else {
				row[i] = Cell{Style: StylePlain}
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// isSeparatorRow reports whether the line is a markdown table separator,
// composed solely of dashes, pipes, colons, and spaces.
func isSeparatorRow(line string) bool {
	hasDash := false
	for _, r := range strings.TrimSpace(line) {
		switch r {
		case '-':
			hasDash = true
		case '|', ':', ' ':
		default:
			return false
		}
	}
	return hasDash
}

// splitCells splits a pipe line into trimmed cell strings, discarding the
// empty edge cells produced by leading and trailing pipes.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// styleCell resolves a cell's display style from its literal content,
// first match wins: backtick-wrapped code, bold markers, status glyphs,
// then plain text.
func styleCell(text string) Cell {
	switch {
	case len(text) > 1 && strings.HasPrefix(text, "`") && strings.HasSuffix(text, "`"):
		return Cell{Text: strings.Trim(text, "`"), Style: StyleCode}
	case strings.Count(text, "**") >= 2:
		return Cell{Text: strings.ReplaceAll(text, "**", ""), Style: StyleStrong}
	case text == "✅":
		return Cell{Text: text, Style: StyleStatusOK}
	case text == "❌":
		return Cell{Text: text, Style: StyleStatusFail}
	default:
		return Cell{Text: text, Style: StylePlain}
	}
}
