package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	figmaclaude "github.com/hellenic-development/figma-claude"
	"github.com/hellenic-development/figma-claude/pkg/formatter"
)

const (
	defaultOutput       = "FIGMA_DESIGN_DOCUMENTATION.md"
	defaultClaudeOutput = "claude-export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Extract screens and styles and write the design document and assistant payload",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd)
	},
}

func init() {
	addExportFlags(exportCmd)
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", defaultOutput, "Output markdown file")
	cmd.Flags().String("claude-output", "", "Assistant payload file (default claude-export.<format>)")
	cmd.Flags().StringP("format", "f", formatter.FormatJSON, "Assistant payload encoding: json or yaml")
	cmd.Flags().String("image-dir", "", "Write screen PNGs to this directory")
}

func runExport(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	cyan.Fprintln(out, "\n🎨 Figma to Claude")
	cyan.Fprintln(out, "==================")
	cyan.Fprintln(out)

	opts := buildOptions(&cliLogger{w: out})

	h, err := newHost(cmd.Context(), opts)
	if err != nil {
		return err
	}

	result, err := figmaclaude.RunHost(cmd.Context(), h, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, renderSummary(result))

	outputFile := getStringWithDefault("output", defaultOutput)
	if err := writeOutput(out, outputFile, []byte(result.Markdown)); err != nil {
		return err
	}

	claudeOutput := getStringWithDefault("claude-output", defaultClaudeOutput+"."+opts.Format)
	if err := writeOutput(out, claudeOutput, result.ExportData); err != nil {
		return err
	}

	green.Fprintf(out, "\n✨ Design documentation written to %s and %s\n\n", outputFile, claudeOutput)
	return nil
}

func writeOutput(out io.Writer, path string, data []byte) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	green.Fprintf(out, "\n💾 Writing to %s... ", path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		red.Fprintln(out, "✗")
		return fmt.Errorf("write %s: %w", path, err)
	}
	green.Fprintln(out, "✓")
	return nil
}
