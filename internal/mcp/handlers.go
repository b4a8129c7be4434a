package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specdoc/specdoc/internal/diagrams"
	"github.com/specdoc/specdoc/internal/nlp"
	"github.com/specdoc/specdoc/internal/search"
	"github.com/specdoc/specdoc/internal/store"
	"github.com/specdoc/specdoc/internal/summary"
)

const noSpecMessage = "No API spec uploaded yet. Upload one via `specdoc serve` and POST /upload-spec, or run `specdoc summarize <file>`."

// handleGetAPISummary returns the full markdown summary document.
func (s *Server) handleGetAPISummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec, err := s.latestSpec(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoSpec) {
			return mcp.NewToolResultError(noSpecMessage), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("loading spec: %v", err)), nil
	}
	return mcp.NewToolResultText(summary.Build(spec)), nil
}

// handleListEndpoints returns one line per operation, optionally filtered
// by method.
func (s *Server) handleListEndpoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec, err := s.latestSpec(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoSpec) {
			return mcp.NewToolResultError(noSpecMessage), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("loading spec: %v", err)), nil
	}

	methodFilter := strings.ToLower(request.GetString("method", ""))

	var sb strings.Builder
	count := 0
	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		for _, method := range item.SortedMethods() {
			if methodFilter != "" && method != methodFilter {
				continue
			}
			op := item[method]
			sb.WriteString(fmt.Sprintf("%s %s - %s\n",
				strings.ToUpper(method), path, nlp.SmartDescription(path, method, op)))
			count++
		}
	}
	if count == 0 {
		return mcp.NewToolResultText("No endpoints matched."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d endpoint(s):\n%s", count, sb.String())), nil
}

// handleSearchEndpoints runs keyword search over the latest spec.
func (s *Server) handleSearchEndpoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := request.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: keyword"), nil
	}
	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	spec, err := s.latestSpec(ctx)
	if err != nil && !errors.Is(err, store.ErrNoSpec) {
		return mcp.NewToolResultError(fmt.Sprintf("loading spec: %v", err)), nil
	}

	result := search.Keyword(spec, keyword)
	if result.Error != "" {
		return mcp.NewToolResultError(result.Error), nil
	}
	if result.TotalMatches == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No matches for %q.", result.Keyword)), nil
	}
	return mcp.NewToolResultText(formatSearchResult(result, limit)), nil
}

// handleGetFlowDiagram returns the Mermaid flowchart for the latest spec.
func (s *Server) handleGetFlowDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec, err := s.latestSpec(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoSpec) {
			return mcp.NewToolResultError(noSpecMessage), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("loading spec: %v", err)), nil
	}
	return mcp.NewToolResultText(diagrams.FlowDiagram(spec)), nil
}

// formatSearchResult converts a search result into a rich text format
// optimized for AI agent consumption.
func formatSearchResult(result *search.Result, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d match(es) for %q:\n", result.TotalMatches, result.Keyword))

	paths := make([]string, 0, len(result.Endpoints))
	for path := range result.Endpoints {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	shown := 0
	for _, path := range paths {
		methods := make([]string, 0, len(result.Endpoints[path]))
		for method := range result.Endpoints[path] {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			if shown >= limit {
				break
			}
			m := result.Endpoints[path][method]
			sb.WriteString(fmt.Sprintf("\n%s %s\n", method, path))
			if m.Summary != "" {
				sb.WriteString(fmt.Sprintf("Summary: %s\n", m.Summary))
			}
			sb.WriteString(fmt.Sprintf("Description: %s\n", m.Description))
			shown++
		}
	}

	if len(result.Components) > 0 {
		sb.WriteString("\nComponents:\n")
		names := make([]string, 0, len(result.Components))
		for name := range result.Components {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := result.Components[name]
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", c.Name, c.Type))
		}
	}

	return sb.String()
}
