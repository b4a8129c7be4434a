package markdown

import (
	"strings"
	"testing"
)

func TestTabsFullPipeline(t *testing.T) {
	data := Tabs(sampleDoc)

	if len(data) != len(SectionKeys) {
		t.Fatalf("got %d sections, want %d", len(data), len(SectionKeys))
	}
	for i, key := range SectionKeys {
		if data[i].Key != key {
			t.Errorf("data[%d].Key = %s, want %s", i, data[i].Key, key)
		}
	}

	byKey := map[SectionKey]SectionData{}
	for _, d := range data {
		byKey[d.Key] = d
	}

	if byKey[KeyEndpoints].Table == nil {
		t.Error("endpoints section did not parse as a table")
	}
	if byKey[KeyParameters].Table == nil {
		t.Error("parameters section did not parse as a table")
	}
	if byKey[KeyOverview].Table != nil {
		t.Error("overview section unexpectedly parsed as a table")
	}
	if byKey[KeyFlow].Diagram == "" {
		t.Error("flow section carries no diagram")
	}
	if !strings.HasPrefix(byKey[KeyFlow].Diagram, "flowchart") {
		t.Errorf("diagram = %q, want mermaid flowchart source", byKey[KeyFlow].Diagram)
	}
	if byKey[KeyOverview].HTML == "" {
		t.Error("overview section has no HTML rendering")
	}
}

func TestTabsEmptySectionsStayEmpty(t *testing.T) {
	doc := HeadingOverview + "\njust an overview"
	data := Tabs(doc)

	for _, d := range data {
		if d.Key == KeyOverview {
			if d.HTML == "" {
				t.Error("overview has no HTML")
			}
			continue
		}
		if d.Text != "" || d.HTML != "" || d.Table != nil || d.Diagram != "" {
			t.Errorf("section %s not empty: %+v", d.Key, d)
		}
	}
}
