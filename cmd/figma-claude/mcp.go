package main

import (
	"github.com/spf13/cobra"

	"github.com/hellenic-development/figma-claude/pkg/mcp"
	"github.com/hellenic-development/figma-claude/pkg/plugin"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose extraction as MCP tools over stdio",
	Long: `Start an MCP server on stdin/stdout with the tools extract_selected, extract_styles,
generate_documentation and export_claude. Logs go to stderr.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	logger := &cliLogger{w: cmd.ErrOrStderr()}
	opts := buildOptions(logger)

	h, err := newHost(cmd.Context(), opts)
	if err != nil {
		return err
	}

	p := plugin.New(h, plugin.Options{Logger: logger})
	return mcp.NewServer(p, logger).ServeStdio()
}
