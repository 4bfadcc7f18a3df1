// Package mcpserver exposes the tool registry over the Model Context
// Protocol. The stdio transport is the primary host interface, so all
// logging in this process goes to stderr.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/f1mcp-io/f1mcp/internal/tool"
)

// New builds an MCP server advertising every tool in the registry.
func New(reg *tool.Registry, logger *slog.Logger, name, version string) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}

	s := server.NewMCPServer(name, version, server.WithRecovery())
	for _, t := range reg.Tools() {
		schema, err := json.Marshal(t.Parameters())
		if err != nil {
			// Parameters() returns literal maps; this only trips on a
			// programming error in a tool definition.
			logger.Error("skipping tool with unmarshalable schema", "tool", t.Name(), "error", err)
			continue
		}
		s.AddTool(mcp.NewToolWithRawSchema(t.Name(), t.Description(), schema), Handler(reg, t.Name()))
		logger.Info("tool registered", "tool", t.Name())
	}
	return s
}

// Handler adapts one registry tool to an MCP tool handler. Tool
// failures become error-flagged text results, never protocol errors:
// the calling assistant should see what went wrong as readable text.
func Handler(reg *tool.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		out, err := reg.Execute(ctx, name, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// ServeStdio runs the server over stdin/stdout until the host closes
// the stream.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
