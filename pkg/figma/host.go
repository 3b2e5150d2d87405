package figma

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hellenic-development/figma-claude/pkg/host"
)

// DefaultNamespace is the shared plugin data namespace read for node descriptions.
const DefaultNamespace = "figma_claude"

// ImageExporter renders a node of the host's file.
type ImageExporter interface {
	Export(ctx context.Context, nodeID, format string, scale float64) ([]byte, error)
}

// HostConfig configures a REST-backed host.
type HostConfig struct {
	FileKey    string
	NodeIDs    []string // empty = top-level children of the first page
	Include    []string // doublestar patterns matched against node names; empty = all
	Namespace  string   // shared plugin data namespace, default DefaultNamespace
	Extensions []string // extension names to report as present
	Images     ImageExporter
}

// Host is a host.Host backed by the Figma REST API. The selection and style
// registries are loaded once by NewHost; images are rendered on demand.
type Host struct {
	cfg        HostConfig
	name       string
	user       string
	selection  []*host.Node
	pluginData map[string]map[string]string // node ID -> key -> value
	paints     []host.PaintStyle
	texts      []host.TextStyle
}

var _ host.Host = (*Host)(nil)

// NewHost loads the file, the selection and the local styles.
func NewHost(ctx context.Context, client *Client, cfg HostConfig) (*Host, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
	}

	fileResp, err := client.GetFile(ctx, cfg.FileKey)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}

	h := &Host{
		cfg:        cfg,
		name:       fileResp.Name,
		pluginData: make(map[string]map[string]string),
	}

	// The current user is informational only.
	if me, err := client.GetMe(ctx); err == nil {
		h.user = me.Handle
	}

	roots, err := h.selectionRoots(ctx, client, fileResp)
	if err != nil {
		return nil, err
	}
	for i := range roots {
		if !h.included(roots[i].Name) {
			continue
		}
		h.selection = append(h.selection, h.convertNode(&roots[i]))
	}

	if err := h.loadStyles(ctx, client, fileResp.Styles); err != nil {
		return nil, err
	}

	return h, nil
}

// selectionRoots returns the REST nodes that make up the selection, in order.
func (h *Host) selectionRoots(ctx context.Context, client *Client, fileResp *FileResponse) ([]Node, error) {
	if len(h.cfg.NodeIDs) == 0 {
		for _, page := range fileResp.Document.Children {
			if page.Type == "CANVAS" {
				return page.Children, nil
			}
		}
		return nil, nil
	}

	nodesResp, err := client.GetFileNodes(ctx, h.cfg.FileKey, h.cfg.NodeIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch nodes: %w", err)
	}

	var roots []Node
	for _, id := range h.cfg.NodeIDs {
		if nd := nodesResp.Nodes[id]; nd != nil {
			roots = append(roots, nd.Document)
		}
	}
	return roots, nil
}

func (h *Host) included(name string) bool {
	if len(h.cfg.Include) == 0 {
		return true
	}
	for _, pattern := range h.cfg.Include {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// convertNode maps a REST node onto the host scene graph, recording plugin data.
func (h *Host) convertNode(n *Node) *host.Node {
	out := &host.Node{
		ID:            n.ID,
		Name:          n.Name,
		Type:          n.Type,
		Layout:        n.LayoutMode,
		PaddingLeft:   n.PaddingLeft,
		PaddingRight:  n.PaddingRight,
		PaddingTop:    n.PaddingTop,
		PaddingBottom: n.PaddingBottom,
	}
	if box := n.AbsoluteBoundingBox; box != nil {
		out.X, out.Y, out.Width, out.Height = box.X, box.Y, box.Width, box.Height
	}
	if data := n.SharedPluginData[h.cfg.Namespace]; len(data) > 0 {
		h.pluginData[n.ID] = data
	}
	if n.Children != nil {
		out.Children = make([]*host.Node, 0, len(n.Children))
		for i := range n.Children {
			out.Children = append(out.Children, h.convertNode(&n.Children[i]))
		}
	}
	return out
}

// loadStyles resolves FILL and TEXT styles through their defining nodes.
func (h *Host) loadStyles(ctx context.Context, client *Client, styles map[string]Style) error {
	ids := make([]string, 0, len(styles))
	for id, s := range styles {
		if s.StyleType == "FILL" || s.StyleType == "TEXT" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	// Registries are unordered on the wire; present them by name.
	sort.Slice(ids, func(i, j int) bool {
		a, b := styles[ids[i]], styles[ids[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return ids[i] < ids[j]
	})

	nodesResp, err := client.GetFileNodes(ctx, h.cfg.FileKey, ids)
	if err != nil {
		return fmt.Errorf("fetch style nodes: %w", err)
	}

	for _, id := range ids {
		nd := nodesResp.Nodes[id]
		if nd == nil {
			continue
		}
		meta := styles[id]
		switch meta.StyleType {
		case "FILL":
			h.paints = append(h.paints, paintStyle(id, meta, &nd.Document))
		case "TEXT":
			if nd.Document.Style != nil {
				h.texts = append(h.texts, textStyle(id, meta, nd.Document.Style))
			}
		}
	}
	return nil
}

func paintStyle(id string, meta Style, n *Node) host.PaintStyle {
	ps := host.PaintStyle{ID: id, Name: meta.Name, Description: meta.Description}
	for _, p := range n.Fills {
		hp := host.Paint{Type: p.Type, Opacity: p.Opacity}
		if p.Color != nil {
			hp.Color = host.Color{R: p.Color.R, G: p.Color.G, B: p.Color.B}
		}
		ps.Paints = append(ps.Paints, hp)
	}
	return ps
}

func textStyle(id string, meta Style, ts *TypeStyle) host.TextStyle {
	out := host.TextStyle{
		ID:          id,
		Name:        meta.Name,
		Description: meta.Description,
		FontName:    host.FontName{Family: ts.FontFamily, Style: fontStyleName(ts)},
		FontSize:    ts.FontSize,
		// The REST API always reports letter spacing in pixels.
		LetterSpacing: &host.Measure{Unit: host.UnitPixels, Value: ts.LetterSpacing},
	}

	switch ts.LineHeightUnit {
	case "PIXELS":
		out.LineHeight = &host.Measure{Unit: host.UnitPixels, Value: ts.LineHeightPx}
	case "FONT_SIZE_%":
		out.LineHeight = &host.Measure{Unit: host.UnitPercent, Value: ts.LineHeightPercentFontSize}
	case "INTRINSIC_%":
		out.LineHeight = &host.Measure{Unit: host.UnitAuto}
	}

	return out
}

var weightNames = map[int]string{
	100: "Thin",
	200: "Extra Light",
	300: "Light",
	400: "Regular",
	500: "Medium",
	600: "Semi Bold",
	700: "Bold",
	800: "Extra Bold",
	900: "Black",
}

// fontStyleName returns the face label, deriving it from weight and italic when
// the API omits it.
func fontStyleName(ts *TypeStyle) string {
	if ts.FontStyle != "" {
		return ts.FontStyle
	}
	name, ok := weightNames[int(ts.FontWeight)]
	if !ok {
		name = "Regular"
	}
	if ts.Italic {
		if name == "Regular" {
			return "Italic"
		}
		return name + " Italic"
	}
	return name
}

// Selection returns the nodes resolved when the host was created.
func (h *Host) Selection(ctx context.Context) ([]*host.Node, error) {
	return h.selection, nil
}

// PaintStyles returns the file's fill styles sorted by name.
func (h *Host) PaintStyles(ctx context.Context) ([]host.PaintStyle, error) {
	return h.paints, nil
}

// TextStyles returns the file's text styles sorted by name.
func (h *Host) TextStyles(ctx context.Context) ([]host.TextStyle, error) {
	return h.texts, nil
}

// ExportImage renders node through the configured ImageExporter.
func (h *Host) ExportImage(ctx context.Context, node *host.Node, settings host.ExportSettings) ([]byte, error) {
	if h.cfg.Images == nil {
		return nil, fmt.Errorf("image export not configured")
	}
	return h.cfg.Images.Export(ctx, node.ID, strings.ToLower(settings.Format), settings.Scale)
}

// PluginData returns the node's shared plugin data in the configured namespace.
func (h *Host) PluginData(ctx context.Context, node *host.Node, key string) (string, error) {
	return h.pluginData[node.ID][key], nil
}

// CurrentUser returns the token owner's handle, or empty when unknown.
func (h *Host) CurrentUser() string { return h.user }

// DocumentName returns the Figma file name.
func (h *Host) DocumentName() string { return h.name }

// HasExtension reports whether name was listed in HostConfig.Extensions.
func (h *Host) HasExtension(name string) bool {
	for _, e := range h.cfg.Extensions {
		if e == name {
			return true
		}
	}
	return false
}
