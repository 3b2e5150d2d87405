// Package mcp exposes a plugin session to an AI assistant as MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hellenic-development/figma-claude/pkg/extractor"
	"github.com/hellenic-development/figma-claude/pkg/figma"
	"github.com/hellenic-development/figma-claude/pkg/formatter"
	"github.com/hellenic-development/figma-claude/pkg/plugin"
)

// Server implements the MCP server, one tool per plugin request.
type Server struct {
	mcpServer *server.MCPServer
	plugin    *plugin.Plugin
	logger    extractor.Logger // may be nil
}

// NewServer creates an MCP server driving p. Progress is logged to logger, which
// must not write to stdout.
func NewServer(p *plugin.Plugin, logger extractor.Logger) *Server {
	s := &Server{plugin: p, logger: logger}

	s.mcpServer = server.NewMCPServer(
		"figma-claude",
		figma.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: extractSelectedTool(), Handler: s.handleExtractSelected},
		server.ServerTool{Tool: extractStylesTool(), Handler: s.handleExtractStyles},
		server.ServerTool{Tool: generateDocumentationTool(), Handler: s.handleGenerateDocumentation},
		server.ServerTool{Tool: exportClaudeTool(), Handler: s.handleExportClaude},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func extractSelectedTool() mcp.Tool {
	return mcp.NewTool("extract_selected",
		mcp.WithDescription("Capture the selected frames as screens (image, size, description, component structure). Replaces earlier screens."),
	)
}

func extractStylesTool() mcp.Tool {
	return mcp.NewTool("extract_styles",
		mcp.WithDescription("Read the document's color and text styles and the spacing values used by the selection."),
	)
}

func generateDocumentationTool() mcp.Tool {
	return mcp.NewTool("generate_documentation",
		mcp.WithDescription("Render the captured screens and styles as a Markdown design document."),
	)
}

func exportClaudeTool() mcp.Tool {
	return mcp.NewTool("export_claude",
		mcp.WithDescription("Build the assistant-ready design payload with Tailwind hints and prompt instructions."),
		mcp.WithString("format",
			mcp.Description("Encoding of the payload"),
			mcp.Enum(formatter.FormatJSON, formatter.FormatYAML),
		),
	)
}
