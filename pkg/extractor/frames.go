package extractor

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/hellenic-development/figma-claude/pkg/codegen"
	"github.com/hellenic-development/figma-claude/pkg/host"
	"github.com/hellenic-development/figma-claude/pkg/protocol"
	"github.com/hellenic-development/figma-claude/pkg/session"
)

// EmptySelectionMessage is shown when extraction runs with nothing selected.
const EmptySelectionMessage = "Please select at least one frame to export"

// DescriptionKey is the plugin data key holding a node's free-text description.
const DescriptionKey = "description"

// ScreenExport is the raster export used for every screen.
var ScreenExport = host.ExportSettings{Format: "PNG", Scale: 2}

// Frames exports the selected frames, components and instances as screens.
type Frames struct {
	Host      host.Host
	Generator codegen.Generator // nil uses codegen.Placeholder
	Logger    Logger
}

// Extract replaces sess.Screens with one screen per eligible selected node.
//
// Nodes are processed one at a time in selection order. A node that fails to
// export is logged and left out; the rest of the batch continues.
func (f *Frames) Extract(ctx context.Context, sess *session.Session, post protocol.Poster) {
	log := loggerOrNop(f.Logger)

	selection, err := f.Host.Selection(ctx)
	if err != nil {
		log.Errorf("Reading selection failed: %v", err)
		post.Post(protocol.ErrorReply("screens", fmt.Sprintf("Could not read the selection: %v", err)))
		return
	}

	if len(selection) == 0 {
		post.Post(protocol.ErrorReply("screens", EmptySelectionMessage))
		return
	}

	post.Post(protocol.Reply{Type: protocol.TypeExtractionStarted})
	sess.Screens = []session.Screen{}

	for _, node := range selection {
		if !IsScreen(node) {
			continue
		}

		screen, err := f.extractScreen(ctx, node)
		if err != nil {
			log.Errorf("Error exporting frame %q: %v", node.Name, err)
			continue
		}

		if sess.DevModeAvailable() {
			if err := f.attachCode(ctx, &screen, node); err != nil {
				log.Errorf("Error extracting code from node %q: %v", node.Name, err)
			}
		}

		sess.Screens = append(sess.Screens, screen)
	}

	log.Infof("Extracted %d screen(s)", len(sess.Screens))
	post.Post(protocol.Reply{Type: protocol.TypeExtractionCompleted, Data: sess.Screens})
}

// IsScreen reports whether node is exported as a screen.
func IsScreen(node *host.Node) bool {
	switch node.Type {
	case host.KindFrame, host.KindComponent, host.KindInstance:
		return true
	}
	return false
}

// extractScreen builds the base screen record. No partial record is returned on error.
func (f *Frames) extractScreen(ctx context.Context, node *host.Node) (session.Screen, error) {
	img, err := f.Host.ExportImage(ctx, node, ScreenExport)
	if err != nil {
		return session.Screen{}, fmt.Errorf("export image: %w", err)
	}

	desc, err := f.Host.PluginData(ctx, node, DescriptionKey)
	if err != nil {
		return session.Screen{}, fmt.Errorf("read description: %w", err)
	}

	return session.Screen{
		ID:          node.ID,
		Name:        node.Name,
		Type:        node.Type,
		Width:       node.Width,
		Height:      node.Height,
		Image:       base64.StdEncoding.EncodeToString(img),
		Description: desc,
	}, nil
}

// attachCode fills the generated-code fields. On error the screen is left with
// none of them.
func (f *Frames) attachCode(ctx context.Context, screen *session.Screen, node *host.Node) error {
	gen := f.Generator
	if gen == nil {
		gen = codegen.Placeholder{}
	}

	css, err := gen.CSS(ctx, node)
	if err != nil {
		return fmt.Errorf("css: %w", err)
	}
	react, err := gen.React(ctx, node)
	if err != nil {
		return fmt.Errorf("react: %w", err)
	}
	tw, err := gen.Tailwind(ctx, node)
	if err != nil {
		return fmt.Errorf("tailwind: %w", err)
	}

	screen.CSSCode = css
	screen.ReactCode = react
	screen.TailwindCode = tw
	screen.ComponentStructure = Structure(node)
	return nil
}

// Structure snapshots a node and its immediate children (name, type and ID only).
func Structure(node *host.Node) *session.ComponentStructure {
	cs := &session.ComponentStructure{
		Name: node.Name,
		Type: node.Type,
		ID:   node.ID,
	}

	if node.HasChildren() {
		cs.Children = make([]session.ComponentStructure, 0, len(node.Children))
		for _, child := range node.Children {
			cs.Children = append(cs.Children, session.ComponentStructure{
				Name: child.Name,
				Type: child.Type,
				ID:   child.ID,
			})
		}
	}

	return cs
}
