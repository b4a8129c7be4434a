package mcp

import "github.com/mark3labs/mcp-go/mcp"

// getAPISummaryTool defines the get_api_summary MCP tool.
var getAPISummaryTool = mcp.NewTool("get_api_summary",
	mcp.WithDescription("Get the full markdown summary of the most recently uploaded API spec, including overview, endpoint and parameter tables, authentication, and flow diagram."),
)

// listEndpointsTool defines the list_endpoints MCP tool.
var listEndpointsTool = mcp.NewTool("list_endpoints",
	mcp.WithDescription("List every endpoint of the uploaded API spec with its method and a one-line description."),
	mcp.WithString("method",
		mcp.Description("Only return endpoints with this HTTP method"),
		mcp.Enum("get", "post", "put", "patch", "delete", "head", "options"),
	),
)

// searchEndpointsTool defines the search_endpoints MCP tool.
var searchEndpointsTool = mcp.NewTool("search_endpoints",
	mcp.WithDescription("Search the uploaded API spec's endpoints and components by keyword. Matches paths, methods, and operation details."),
	mcp.WithString("keyword",
		mcp.Required(),
		mcp.Description("Keyword to look for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of endpoint matches to return (default 10)"),
	),
)

// getFlowDiagramTool defines the get_flow_diagram MCP tool.
var getFlowDiagramTool = mcp.NewTool("get_flow_diagram",
	mcp.WithDescription("Get a Mermaid flowchart showing a client's request flow into the API's endpoints."),
)
