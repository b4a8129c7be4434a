// Package markdown slices the generated API summary document into its
// logical sections and turns section text into renderable structures:
// pipe tables, a constrained HTML rendering, and mermaid diagram source.
//
// Everything here is a pure transformation over in-memory strings. None
// of these functions fail; absence degrades to zero values.
package markdown

import "strings"

// Heading markers that delimit the summary document's sections. The
// summary builder emits exactly these lines; the extractor recognizes a
// section by prefix match on the trimmed line.
const (
	HeadingOverview   = "## 📝 Overview"
	HeadingEndpoints  = "### Endpoints:"
	HeadingParameters = "### Parameters:"
	HeadingAuth       = "## 🔐 Authentication"
	HeadingFlow       = "## 🔄 Flow Diagram"
)

// SectionKey names one of the five recognized sections.
type SectionKey string

const (
	KeyOverview   SectionKey = "overview"
	KeyEndpoints  SectionKey = "endpoints"
	KeyParameters SectionKey = "parameters"
	KeyAuth       SectionKey = "auth"
	KeyFlow       SectionKey = "flow"
)

// SectionKeys is the canonical section ordering.
var SectionKeys = []SectionKey{KeyOverview, KeyEndpoints, KeyParameters, KeyAuth, KeyFlow}

var headingFor = map[SectionKey]string{
	KeyOverview:   HeadingOverview,
	KeyEndpoints:  HeadingEndpoints,
	KeyParameters: HeadingParameters,
	KeyAuth:       HeadingAuth,
	KeyFlow:       HeadingFlow,
}

// Sections holds the text of each recognized section of a summary
// document. Absent sections are empty strings.
type Sections struct {
	Overview   string `json:"overview"`
	Endpoints  string `json:"endpoints"`
	Parameters string `json:"parameters"`
	Auth       string `json:"auth"`
	Flow       string `json:"flow"`
}

// Get returns the section text for the given key.
func (s Sections) Get(key SectionKey) string {
	switch key {
	case KeyOverview:
		return s.Overview
	case KeyEndpoints:
		return s.Endpoints
	case KeyParameters:
		return s.Parameters
	case KeyAuth:
		return s.Auth
	case KeyFlow:
		return s.Flow
	}
	return ""
}

// ExtractSections splits a summary document into its recognized sections.
// A section spans from its own heading line (inclusive) up to, but not
// including, the next recognized heading, or the end of the document.
// The first occurrence of each heading wins; later occurrences are plain
// text of whatever section they fall inside. When the document contains
// no recognized heading at all, the whole document becomes the overview.
func ExtractSections(doc string) Sections {
	if doc == "" {
		return Sections{}
	}

	lines := strings.Split(doc, "\n")

	// Locate the first occurrence of each recognized heading.
	type mark struct {
		key  SectionKey
		line int
	}
	seen := map[SectionKey]bool{}
	var marks []mark
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, key := range SectionKeys {
			if seen[key] {
				continue
			}
			if strings.HasPrefix(trimmed, headingFor[key]) {
				seen[key] = true
				marks = append(marks, mark{key: key, line: i})
				break
			}
		}
	}

	if len(marks) == 0 {
		return Sections{Overview: doc}
	}

	out := Sections{}
	for i, m := range marks {
		end := len(lines)
		if i+1 < len(marks) {
			end = marks[i+1].line
		}
		text := strings.Join(lines[m.line:end], "\n")
		switch m.key {
		case KeyOverview:
			out.Overview = text
		case KeyEndpoints:
			out.Endpoints = text
		case KeyParameters:
			out.Parameters = text
		case KeyAuth:
			out.Auth = text
		case KeyFlow:
			out.Flow = text
		}
	}
	return out
}

// Preamble returns the document text before the first recognized heading,
// or "" when the document has no recognized heading.
func Preamble(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, key := range SectionKeys {
			if strings.HasPrefix(trimmed, headingFor[key]) {
				return strings.Join(lines[:i], "\n")
			}
		}
	}
	return ""
}
