// Package host describes the design document surface the extractor reads from.
//
// A Host is whatever owns the document: the Figma REST API (package figma), an
// offline snapshot (Static), or a test fixture.
package host

import "context"

// Node kinds the extractor cares about. Hosts may report any other kind.
const (
	KindFrame     = "FRAME"
	KindComponent = "COMPONENT"
	KindInstance  = "INSTANCE"
	KindGroup     = "GROUP"
	KindText      = "TEXT"

	KindComponentSet = "COMPONENT_SET"
	KindSection      = "SECTION"
)

// LayoutNone marks a frame without auto-layout.
const LayoutNone = "NONE"

// Unit tags for line height and letter spacing values.
const (
	UnitPixels  = "PIXELS"
	UnitPercent = "PERCENT"
	UnitAuto    = "AUTO"
)

// Extension names whose presence enables code generation.
const (
	ExtensionDevMode = "devMode"
	ExtensionCodegen = "codegen"
)

// Node is a single element of the host's scene graph.
type Node struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Type     string  `json:"type" yaml:"type"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Layout is the auto-layout mode; empty or LayoutNone means disabled.
	Layout string `json:"layoutMode,omitempty" yaml:"layoutMode,omitempty"`

	PaddingLeft   *float64 `json:"paddingLeft,omitempty" yaml:"paddingLeft,omitempty"`
	PaddingRight  *float64 `json:"paddingRight,omitempty" yaml:"paddingRight,omitempty"`
	PaddingTop    *float64 `json:"paddingTop,omitempty" yaml:"paddingTop,omitempty"`
	PaddingBottom *float64 `json:"paddingBottom,omitempty" yaml:"paddingBottom,omitempty"`
}

// HasChildren reports whether the node can contain other nodes. Container kinds
// report true even when the host omitted an empty child list; other kinds only
// when they carry children.
func (n *Node) HasChildren() bool {
	switch n.Type {
	case KindFrame, KindGroup, KindComponent, KindComponentSet, KindInstance, KindSection:
		return true
	}
	return len(n.Children) > 0
}

// AutoLayout reports whether the node is a frame with auto-layout enabled.
func (n *Node) AutoLayout() bool {
	return n.Type == KindFrame && n.Layout != "" && n.Layout != LayoutNone
}

// Color is an RGB color with 0-1 float channels.
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

// Paint is one fill entry of a paint style.
type Paint struct {
	Type    string   `json:"type" yaml:"type"` // SOLID, GRADIENT_LINEAR, IMAGE, ...
	Color   Color    `json:"color" yaml:"color"`
	Opacity *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

// PaintStyle is an entry of the document's color style registry.
type PaintStyle struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Paints      []Paint `json:"paints" yaml:"paints"`
}

// Measure is a value tagged with a unit (PIXELS, PERCENT or AUTO).
type Measure struct {
	Unit  string  `json:"unit" yaml:"unit"`
	Value float64 `json:"value" yaml:"value"`
}

// FontName identifies a font face.
type FontName struct {
	Family string `json:"family" yaml:"family"`
	Style  string `json:"style" yaml:"style"`
}

// TextStyle is an entry of the document's text style registry.
type TextStyle struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	FontName      FontName `json:"fontName" yaml:"fontName"`
	FontSize      float64  `json:"fontSize" yaml:"fontSize"`
	LineHeight    *Measure `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	LetterSpacing *Measure `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
}

// ExportSettings controls a raster export.
type ExportSettings struct {
	Format string  // "PNG", "JPG", "SVG", "PDF"
	Scale  float64 // constraint of type SCALE
}

// Host is the design document collaborator.
type Host interface {
	// Selection returns the current selection in order.
	Selection(ctx context.Context) ([]*Node, error)
	PaintStyles(ctx context.Context) ([]PaintStyle, error)
	TextStyles(ctx context.Context) ([]TextStyle, error)
	// ExportImage renders a node and returns the encoded image bytes.
	ExportImage(ctx context.Context, node *Node, settings ExportSettings) ([]byte, error)
	// PluginData returns the free-text value stored under key, or "" if unset.
	PluginData(ctx context.Context, node *Node, key string) (string, error)
	CurrentUser() string
	DocumentName() string
	HasExtension(name string) bool
}
