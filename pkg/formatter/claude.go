// Package formatter renders an extraction session as documentation and as an
// assistant-ready export payload.
package formatter

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-claude/pkg/session"
	"github.com/hellenic-development/figma-claude/pkg/tailwind"
)

// ClaudeExport is the payload handed to the assistant. It never carries image data;
// screen images travel separately.
type ClaudeExport struct {
	DesignMetadata     session.Metadata `json:"designMetadata" yaml:"designMetadata"`
	Screens            []ScreenSummary  `json:"screens" yaml:"screens"`
	DesignSystem       DesignSystem     `json:"designSystem" yaml:"designSystem"`
	PromptInstructions string           `json:"promptInstructions" yaml:"promptInstructions"`
}

// ScreenSummary describes a screen without its image.
type ScreenSummary struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Dimensions  string `json:"dimensions" yaml:"dimensions"`
}

// DesignSystem pairs every style value with its utility class.
type DesignSystem struct {
	Colors     []ColorToken      `json:"colors" yaml:"colors"`
	Typography []TypographyToken `json:"typography" yaml:"typography"`
	Spacing    []SpacingToken    `json:"spacing" yaml:"spacing"`
}

type ColorToken struct {
	Name               string `json:"name" yaml:"name"`
	Value              string `json:"value" yaml:"value"`
	TailwindEquivalent string `json:"tailwindEquivalent" yaml:"tailwindEquivalent"`
}

type TypographyToken struct {
	Name             string  `json:"name" yaml:"name"`
	Family           string  `json:"family" yaml:"family"`
	Size             float64 `json:"size" yaml:"size"`
	TailwindFontSize string  `json:"tailwindFontSize" yaml:"tailwindFontSize"`
}

type SpacingToken struct {
	Value           int    `json:"value" yaml:"value"`
	TailwindSpacing string `json:"tailwindSpacing" yaml:"tailwindSpacing"`
}

// PromptInstructions returns the fixed assistant instructions for a screen count.
func PromptInstructions(screens int) string {
	return strings.Join([]string{
		"Please create React components using Tailwind CSS based on these Figma designs.",
		fmt.Sprintf("The design shows %d screens/components that should be implemented.", screens),
		"Follow the design system specifications provided for colors, typography, and spacing.",
		"Use the closest Tailwind CSS classes for all styling.",
	}, "\n")
}

// ToClaudeExport projects the session into the assistant payload. A nil matcher
// uses tailwind.Placeholder. The result depends only on the session contents.
func ToClaudeExport(sess *session.Session, colors tailwind.ColorMatcher) *ClaudeExport {
	if colors == nil {
		colors = tailwind.Placeholder{}
	}

	out := &ClaudeExport{
		DesignMetadata: sess.Metadata,
		Screens:        make([]ScreenSummary, 0, len(sess.Screens)),
		DesignSystem: DesignSystem{
			Colors:     make([]ColorToken, 0, len(sess.Styles.Colors)),
			Typography: make([]TypographyToken, 0, len(sess.Styles.Typography)),
			Spacing:    make([]SpacingToken, 0, len(sess.Styles.Spacing)),
		},
		PromptInstructions: PromptInstructions(len(sess.Screens)),
	}

	for _, s := range sess.Screens {
		out.Screens = append(out.Screens, ScreenSummary{
			Name:        s.Name,
			Description: s.Description,
			Dimensions:  fmt.Sprintf("%s x %s", formatNumber(s.Width), formatNumber(s.Height)),
		})
	}

	for _, c := range sess.Styles.Colors {
		out.DesignSystem.Colors = append(out.DesignSystem.Colors, ColorToken{
			Name:               c.Name,
			Value:              c.Hex,
			TailwindEquivalent: colors.ClosestColor(c.Hex),
		})
	}

	for _, f := range sess.Styles.Typography {
		out.DesignSystem.Typography = append(out.DesignSystem.Typography, TypographyToken{
			Name:             f.Name,
			Family:           f.FontFamily,
			Size:             f.FontSize,
			TailwindFontSize: tailwind.FontSize(f.FontSize),
		})
	}

	for _, v := range sess.Styles.Spacing {
		out.DesignSystem.Spacing = append(out.DesignSystem.Spacing, SpacingToken{
			Value:           v,
			TailwindSpacing: tailwind.Spacing(v),
		})
	}

	return out
}
