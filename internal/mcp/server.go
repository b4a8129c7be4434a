// Package mcp exposes the uploaded API spec to AI agents over the Model
// Context Protocol.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/server"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes API spec tools.
type Server struct {
	db  *store.Store
	mcp *server.MCPServer
}

// NewServer creates a new MCP server backed by the given spec store.
func NewServer(db *store.Store) *Server {
	s := &Server{db: db}

	s.mcp = server.NewMCPServer(
		"specdoc",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getAPISummaryTool, s.handleGetAPISummary)
	s.mcp.AddTool(listEndpointsTool, s.handleListEndpoints)
	s.mcp.AddTool(searchEndpointsTool, s.handleSearchEndpoints)
	s.mcp.AddTool(getFlowDiagramTool, s.handleGetFlowDiagram)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// latestSpec loads and decodes the most recently uploaded spec.
func (s *Server) latestSpec(ctx context.Context) (*apispec.Spec, error) {
	rec, err := s.db.LatestSpec(ctx)
	if err != nil {
		return nil, err
	}
	var spec apispec.Spec
	if err := json.Unmarshal([]byte(rec.Normalized), &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}
