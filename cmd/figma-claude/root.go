package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hellenic-development/figma-claude/pkg/figma"
)

const version = figma.Version

var rootCmd = &cobra.Command{
	Use:   "figma-claude",
	Short: "Turn Figma screens and styles into design docs for AI assistants",
	Long: `Capture frames and design styles from a Figma file and produce a Markdown design
document plus an assistant-ready payload (screens, design tokens with Tailwind hints,
prompt instructions). Without a subcommand, runs export.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runExport(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "figma-claude version %s\n", version)
	},
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", ".figma-claude.yaml", "Config file path")
	pf.StringP("url", "u", "", "Figma file URL")
	pf.StringP("token", "t", "", "Figma Personal Access Token")
	pf.StringP("node-ids", "n", "", "Comma-separated node IDs to select (default: node IDs in the URL, else the first page)")
	pf.StringSlice("include", nil, "Glob patterns on top-level node names (e.g. \"Screen/*\")")
	pf.String("namespace", figma.DefaultNamespace, "Shared plugin data namespace holding node descriptions")
	pf.StringSlice("extensions", nil, "Code-generation extensions to treat as present (devMode, codegen)")
	pf.Int("image-cache", 0, "Rendered images kept in memory (0 = default)")
	pf.String("snapshot", "", "Read the design from a YAML/JSON snapshot instead of the Figma API")
	pf.Bool("no-color", false, "Disable colored output")

	addExportFlags(rootCmd)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	}

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
