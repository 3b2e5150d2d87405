package host

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Static is an in-memory Host. It backs offline snapshots and tests.
type Static struct {
	Nodes      []*Node
	Paints     []PaintStyle
	Texts      []TextStyle
	Images     map[string][]byte            // node ID -> encoded image
	Data       map[string]map[string]string // node ID -> key -> value
	User       string
	Document   string
	Extensions []string

	// ExportErrors and DataErrors force failures for specific node IDs.
	ExportErrors map[string]error
	DataErrors   map[string]error
}

var _ Host = (*Static)(nil)

// Selection returns the configured nodes.
func (s *Static) Selection(ctx context.Context) ([]*Node, error) {
	return s.Nodes, nil
}

// PaintStyles returns the configured paint styles.
func (s *Static) PaintStyles(ctx context.Context) ([]PaintStyle, error) {
	return s.Paints, nil
}

// TextStyles returns the configured text styles.
func (s *Static) TextStyles(ctx context.Context) ([]TextStyle, error) {
	return s.Texts, nil
}

// ExportImage returns the stored image for node, or its configured failure.
func (s *Static) ExportImage(ctx context.Context, node *Node, settings ExportSettings) ([]byte, error) {
	if err := s.ExportErrors[node.ID]; err != nil {
		return nil, err
	}
	img, ok := s.Images[node.ID]
	if !ok {
		return nil, fmt.Errorf("no image for node %s", node.ID)
	}
	return img, nil
}

// PluginData returns the stored value for node and key, or its configured failure.
func (s *Static) PluginData(ctx context.Context, node *Node, key string) (string, error) {
	if err := s.DataErrors[node.ID]; err != nil {
		return "", err
	}
	return s.Data[node.ID][key], nil
}

// CurrentUser returns the configured user name.
func (s *Static) CurrentUser() string { return s.User }

// DocumentName returns the configured document name.
func (s *Static) DocumentName() string { return s.Document }

// HasExtension reports whether name is among the configured extensions.
func (s *Static) HasExtension(name string) bool {
	for _, e := range s.Extensions {
		if e == name {
			return true
		}
	}
	return false
}

// Snapshot is the on-disk form of a Static host. YAML and JSON are both accepted.
type Snapshot struct {
	Document   string                       `yaml:"document"`
	User       string                       `yaml:"user"`
	Extensions []string                     `yaml:"extensions"`
	Selection  []*Node                      `yaml:"selection"`
	Paints     []PaintStyle                 `yaml:"paintStyles"`
	Texts      []TextStyle                  `yaml:"textStyles"`
	Images     map[string]string            `yaml:"images"` // node ID -> base64
	PluginData map[string]map[string]string `yaml:"pluginData"`
}

// LoadSnapshot decodes a document snapshot into a Static host.
func LoadSnapshot(r io.Reader) (*Static, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	images := make(map[string][]byte, len(snap.Images))
	for id, b64 := range snap.Images {
		img, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("decode image for node %s: %w", id, err)
		}
		images[id] = img
	}

	return &Static{
		Nodes:      snap.Selection,
		Paints:     snap.Paints,
		Texts:      snap.Texts,
		Images:     images,
		Data:       snap.PluginData,
		User:       snap.User,
		Document:   snap.Document,
		Extensions: snap.Extensions,
	}, nil
}
