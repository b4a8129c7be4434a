// Package summary renders a normalized API spec into the markdown summary
// document consumed by the section pipeline and the HTTP API.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/diagrams"
	"github.com/specdoc/specdoc/internal/markdown"
	"github.com/specdoc/specdoc/internal/nlp"
)

// Build produces the full markdown summary for a spec: title, overview,
// endpoints table, parameters table, auth section, and mermaid flow
// diagram, under the fixed heading markers the extractor recognizes.
func Build(spec *apispec.Spec) string {
	title := spec.Info.Title
	if title == "" {
		title = "API"
	}

	parts := []string{
		fmt.Sprintf("# 📄 %s — Summary", title),
		markdown.HeadingOverview,
		nlp.Summarize(nlp.CollectDescriptions(spec)),
		"",
		endpointsTable(spec),
		"",
		parametersTable(spec),
		"",
		authSection(spec),
		"",
		markdown.HeadingFlow,
		diagrams.FencedFlowDiagram(spec),
	}
	return strings.Join(parts, "\n")
}

func endpointsTable(spec *apispec.Spec) string {
	rows := []string{
		markdown.HeadingEndpoints,
		"| Endpoint | Method | Purpose |",
		"|----------|--------|---------|",
	}
	if len(spec.Paths) == 0 {
		rows = append(rows, "| — | — | No paths found in spec. |")
		return strings.Join(rows, "\n")
	}

	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		for _, method := range item.SortedMethods() {
			op := item[method]
			desc := op.Description
			if desc == "" {
				desc = op.Summary
			}
			if desc == "" {
				desc = "—"
			}
			rows = append(rows, fmt.Sprintf("| `%s` | `%s` | %s |",
				path, strings.ToUpper(method), sanitizeCell(desc)))
		}
	}
	return strings.Join(rows, "\n")
}

func parametersTable(spec *apispec.Spec) string {
	rows := []string{
		markdown.HeadingParameters,
		"| Endpoint | Parameter | In | Type | Required | Description |",
		"|----------|-----------|----|------|----------|-------------|",
	}

	anyRow := false
	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		for _, method := range item.SortedMethods() {
			op := item[method]
			for _, p := range op.Parameters {
				typ := p.Type
				if typ == "" {
					typ = "—"
				}
				desc := p.Description
				if desc == "" {
					desc = "—"
				}
				rows = append(rows, fmt.Sprintf("| `%s` | `%s` | `%s` | `%s` | %s | %s |",
					path, p.Name, p.In, typ, requiredGlyph(p.Required), sanitizeCell(desc)))
				anyRow = true
			}
			for _, f := range op.RequestBody {
				desc := f.Description
				if desc == "" {
					desc = "—"
				}
				rows = append(rows, fmt.Sprintf("| `%s` | `%s` | `body` | `%s` | %s | %s |",
					path, f.Name, f.Type, requiredGlyph(f.Required), sanitizeCell(desc)))
				anyRow = true
			}
		}
	}

	if !anyRow {
		rows = append(rows, "| — | — | — | — | — | No parameters discovered. |")
	}
	return strings.Join(rows, "\n")
}

func authSection(spec *apispec.Spec) string {
	lines := []string{markdown.HeadingAuth}

	schemes := spec.Components.SecuritySchemes
	if len(schemes) == 0 && !spec.GlobalSecurity {
		lines = append(lines, "No global auth defined. Endpoints may be public or define their own security.")
		return strings.Join(lines, "\n")
	}

	for _, name := range sortedSchemeNames(schemes) {
		scheme := schemes[name]
		typ := scheme.Type
		if typ == "" {
			typ = "—"
		}
		line := fmt.Sprintf("- **%s** — type: `%s`", name, typ)
		var extra []string
		if scheme.Scheme != "" {
			extra = append(extra, fmt.Sprintf("scheme: `%s`", scheme.Scheme))
		}
		if scheme.BearerFormat != "" {
			extra = append(extra, fmt.Sprintf("bearerFormat: `%s`", scheme.BearerFormat))
		}
		if len(extra) > 0 {
			line += ", " + strings.Join(extra, ", ")
		}
		lines = append(lines, line)
		if len(scheme.Flows) > 0 {
			lines = append(lines, "  - OAuth2 flows: "+strings.Join(scheme.Flows, ", "))
		}
	}

	if spec.GlobalSecurity {
		lines = append(lines, "- Global security requirement present (auth needed by default).")
	}
	return strings.Join(lines, "\n")
}

func requiredGlyph(required bool) string {
	if required {
		return "✅"
	}
	return "❌"
}

// sanitizeCell keeps free-text descriptions from breaking table rows.
func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "/")
	return strings.TrimSpace(s)
}

func sortedSchemeNames(schemes map[string]apispec.SecurityScheme) []string {
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
