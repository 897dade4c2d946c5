// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes steptools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rmoseley/steptools"
)

const serverInstructions = `steptools MCP server: reduces and inspects STEP (ISO 10303-21) CAD files.

Tools:
- reduce: losslessly shrink a STEP file by merging semantically duplicate entities, removing unreachable ones, and renumbering ids. The output is geometrically identical to the input; surviving entities keep their exact parameter text.
- inspect: parse a STEP file and report entity statistics without modifying it.

Inputs may be given as a file path or as inline content. Reduced output is returned inline unless an output path is provided; prefer a file path for large models.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "steptools", Version: steptools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "reduce",
		Description: "Losslessly reduce a STEP (ISO 10303-21) file. Merges entities with identical content (transitively, through their reference graphs), removes entities unreachable from the product structure, and renumbers ids sequentially. Identity-bearing entities such as products and assembly structure never merge. Use max_decimals or use_step_precision to merge geometry that differs only in numeric noise. Use output to write to a file instead of returning the document inline.",
	}, handleReduce)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Parse a STEP (ISO 10303-21) file and report its structure: entity count, reference count, complex entity count, declared schema, and optionally a per-type breakdown. The file is validated for syntax and referential integrity but not modified.",
	}, handleInspect)
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
