package extractor

import (
	"context"
	"math"
	"sort"

	"github.com/hellenic-development/figma-claude/pkg/host"
	"github.com/hellenic-development/figma-claude/pkg/protocol"
	"github.com/hellenic-development/figma-claude/pkg/session"
)

// Styles reads the color and text style registries and infers a spacing scale.
type Styles struct {
	Host   host.Host
	Logger Logger
}

// Extract replaces sess.Styles wholesale.
func (s *Styles) Extract(ctx context.Context, sess *session.Session, post protocol.Poster) {
	log := loggerOrNop(s.Logger)

	post.Post(protocol.Reply{Type: protocol.TypeStylesExtractionStarted})
	styles := session.EmptyStyles()

	paints, err := s.Host.PaintStyles(ctx)
	if err != nil {
		log.Errorf("Reading paint styles failed: %v", err)
	}
	for _, p := range paints {
		if c, ok := ColorFromPaintStyle(p); ok {
			styles.Colors = append(styles.Colors, c)
		}
	}

	texts, err := s.Host.TextStyles(ctx)
	if err != nil {
		log.Errorf("Reading text styles failed: %v", err)
	}
	for _, t := range texts {
		styles.Typography = append(styles.Typography, TypographyFromTextStyle(t))
	}

	selection, err := s.Host.Selection(ctx)
	if err != nil {
		log.Warnf("Reading selection for spacing failed: %v", err)
	}
	styles.Spacing = SpacingFromSelection(selection)

	log.Infof("Extracted %d color(s), %d text style(s), %d spacing value(s)",
		len(styles.Colors), len(styles.Typography), len(styles.Spacing))

	sess.Styles = styles
	post.Post(protocol.Reply{Type: protocol.TypeStylesExtractionCompleted, Data: sess.Styles})
}

// ColorFromPaintStyle normalizes a paint style. Only styles whose first paint is
// SOLID produce a color.
func ColorFromPaintStyle(style host.PaintStyle) (session.ColorStyle, bool) {
	if len(style.Paints) == 0 || style.Paints[0].Type != "SOLID" {
		return session.ColorStyle{}, false
	}
	paint := style.Paints[0]

	alpha := 1.0
	if paint.Opacity != nil {
		alpha = *paint.Opacity
	}

	rgb := session.RGBA{
		R: to255(paint.Color.R),
		G: to255(paint.Color.G),
		B: to255(paint.Color.B),
		A: alpha,
	}

	return session.ColorStyle{
		Name:        style.Name,
		ID:          style.ID,
		RGB:         rgb,
		Hex:         rgbToHex(rgb.R, rgb.G, rgb.B),
		Description: style.Description,
	}, true
}

// TypographyFromTextStyle normalizes a text style, resolving line height and
// letter spacing to pixels where a basis exists.
func TypographyFromTextStyle(style host.TextStyle) session.TypographyStyle {
	return session.TypographyStyle{
		Name:          style.Name,
		ID:            style.ID,
		FontFamily:    style.FontName.Family,
		FontStyle:     style.FontName.Style,
		FontSize:      style.FontSize,
		LineHeight:    LineHeightPx(style.LineHeight, style.FontSize),
		LetterSpacing: LetterSpacingPx(style.LetterSpacing),
		Description:   style.Description,
	}
}

// LineHeightPx resolves a line height. Percentages are relative to the font size;
// automatic line height resolves to nil.
func LineHeightPx(m *host.Measure, fontSize float64) *float64 {
	if m == nil {
		return nil
	}
	switch m.Unit {
	case host.UnitPixels:
		v := m.Value
		return &v
	case host.UnitPercent:
		v := m.Value * fontSize / 100
		return &v
	}
	return nil
}

// LetterSpacingPx resolves letter spacing. Percentages have no font-metric basis
// and resolve to nil.
func LetterSpacingPx(m *host.Measure) *float64 {
	if m == nil || m.Unit != host.UnitPixels {
		return nil
	}
	v := m.Value
	return &v
}

// SpacingFromSelection infers a spacing scale from gaps between adjacent children
// and auto-layout padding. The result is strictly positive, unique and ascending.
func SpacingFromSelection(selection []*host.Node) []int {
	seen := make(map[int]bool)
	add := func(v float64) {
		if v <= 0 {
			return
		}
		if r := int(math.Round(v)); r > 0 {
			seen[r] = true
		}
	}

	for _, node := range selection {
		if !node.HasChildren() {
			continue
		}

		children := node.Children
		for i := 0; i < len(children)-1; i++ {
			cur, next := children[i], children[i+1]
			add(next.X - (cur.X + cur.Width))
			add(next.Y - (cur.Y + cur.Height))
		}

		if node.AutoLayout() {
			for _, p := range []*float64{node.PaddingLeft, node.PaddingRight, node.PaddingTop, node.PaddingBottom} {
				if p != nil {
					add(*p)
				}
			}
		}
	}

	spacing := make([]int, 0, len(seen))
	for v := range seen {
		spacing = append(spacing, v)
	}
	sort.Ints(spacing)
	return spacing
}
