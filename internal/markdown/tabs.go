package markdown

// SectionData is the render-ready form of one section: its raw text plus
// whichever structured view applies. Table is set when the section parses
// as a pipe table, Diagram when it carries a mermaid block; HTML is the
// generic rendering used as the fallback view.
type SectionData struct {
	Key     SectionKey `json:"key"`
	Text    string     `json:"text"`
	Table   *Table     `json:"table,omitempty"`
	Diagram string     `json:"diagram,omitempty"`
	HTML    string     `json:"html"`
}

// Tabs runs the full pipeline over a summary document: extract sections,
// then derive each section's table, diagram, and HTML rendering. Sections
// are returned in canonical order, empty ones included.
func Tabs(doc string) []SectionData {
	sections := ExtractSections(doc)

	out := make([]SectionData, 0, len(SectionKeys))
	for _, key := range SectionKeys {
		text := sections.Get(key)
		data := SectionData{Key: key, Text: text}
		if text != "" {
			data.Table = ParseTable(text)
			if diagram, ok := ExtractDiagram(text); ok {
				data.Diagram = diagram
			}
			data.HTML = Render(text)
		}
		out = append(out, data)
	}
	return out
}
