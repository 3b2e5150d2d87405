package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	figmaclaude "github.com/hellenic-development/figma-claude"
)

// Terminal styles for the summary. Lipgloss degrades colors based on terminal capabilities.
var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleValue  = lipgloss.NewStyle().Bold(true)
)

// renderSummary lists what a run captured.
func renderSummary(result *figmaclaude.Result) string {
	sess := result.Session

	var sb strings.Builder
	sb.WriteString(styleHeader.Render("📊 Extraction Summary:"))
	sb.WriteString("\n")

	line := func(label string, value any) {
		sb.WriteString(fmt.Sprintf("  • %s %s\n", styleLabel.Render(label+":"), styleValue.Render(fmt.Sprint(value))))
	}

	line("Project", sess.Metadata.ProjectName)
	line("Screens", len(sess.Screens))
	line("Colors", len(sess.Styles.Colors))
	line("Text Styles", len(sess.Styles.Typography))
	line("Spacing Values", len(sess.Styles.Spacing))
	if sess.DevModeAvailable() {
		line("Generated Code", "yes")
	}
	if len(result.Assets) > 0 {
		line("Screen Images", len(result.Assets))
	}

	return sb.String()
}
