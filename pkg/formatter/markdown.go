package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hellenic-development/figma-claude/pkg/session"
)

// GeneratedLayout formats the "Generated:" timestamp.
const GeneratedLayout = "1/2/2006, 3:04:05 PM"

// DevModeNotice is added when the session was extracted with code generation.
const DevModeNotice = "> This documentation was enhanced with Figma DevMode data"

// ToMarkdown renders the session as a design documentation report.
// It only reads the session.
func ToMarkdown(sess *session.Session, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s - Design Documentation\n\n", sess.Metadata.ProjectName))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", generatedAt.Format(GeneratedLayout)))
	sb.WriteString(fmt.Sprintf("Author: %s\n\n", sess.Metadata.Author))

	if sess.DevModeAvailable() {
		sb.WriteString(DevModeNotice + "\n\n")
	}

	// Screens
	sb.WriteString("## Screens\n\n")
	for _, screen := range sess.Screens {
		sb.WriteString(fmt.Sprintf("### %s\n\n", screen.Name))
		sb.WriteString(fmt.Sprintf("![%s]\n\n", screen.Name))
		if screen.Description != "" {
			sb.WriteString(screen.Description + "\n\n")
		}

		if screen.CSSCode != "" {
			writeCodeBlock(&sb, "CSS Code", "css", screen.CSSCode)
		}
		if screen.ReactCode != "" {
			writeCodeBlock(&sb, "React Component", "jsx", screen.ReactCode)
		}
		if screen.TailwindCode != "" {
			writeCodeBlock(&sb, "Tailwind HTML", "html", screen.TailwindCode)
		}
	}

	// Design system
	sb.WriteString("## Design System\n\n")

	sb.WriteString("### Colors\n\n")
	for _, c := range sess.Styles.Colors {
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", c.Name, c.Hex))
	}
	sb.WriteString("\n")

	sb.WriteString("### Typography\n\n")
	for _, f := range sess.Styles.Typography {
		sb.WriteString(fmt.Sprintf("- **%s**: %s %s, %spx\n", f.Name, f.FontFamily, f.FontStyle, formatNumber(f.FontSize)))
	}
	sb.WriteString("\n")

	sb.WriteString("### Spacing\n\n")
	if len(sess.Styles.Spacing) > 0 {
		values := make([]string, len(sess.Styles.Spacing))
		for i, v := range sess.Styles.Spacing {
			values[i] = strconv.Itoa(v) + "px"
		}
		sb.WriteString(fmt.Sprintf("Common spacing values: %s\n\n", strings.Join(values, ", ")))
	}

	// Component structure
	if sess.HasStructures() {
		sb.WriteString("## Component Structure\n\n")
		for _, screen := range sess.Screens {
			if screen.ComponentStructure == nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("### %s Structure\n\n", screen.Name))
			sb.WriteString("```json\n")
			sb.WriteString(prettyJSON(screen.ComponentStructure))
			sb.WriteString("\n```\n\n")
		}
	}

	return sb.String()
}

func writeCodeBlock(sb *strings.Builder, title, lang, code string) {
	sb.WriteString(fmt.Sprintf("#### %s\n\n```%s\n%s\n```\n\n", title, lang, code))
}

// prettyJSON indents v by two spaces without HTML escaping.
func prettyJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("{\"error\": %q}", err.Error())
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// formatNumber prints integral values without a fraction and others in shortest form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
