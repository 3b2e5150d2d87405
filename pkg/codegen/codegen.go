// Package codegen is the port to the host's developer-mode code generation.
//
// The host API behind it is undocumented, so the only implementation is
// Placeholder, which emits skeleton code named after the node. A real generator
// can be supplied to the extractor without touching its call sites.
package codegen

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hellenic-development/figma-claude/pkg/host"
)

// Generator derives source code for a node.
type Generator interface {
	CSS(ctx context.Context, node *host.Node) (string, error)
	React(ctx context.Context, node *host.Node) (string, error)
	Tailwind(ctx context.Context, node *host.Node) (string, error)
}

// Placeholder returns skeleton code. Not yet backed by a host API.
type Placeholder struct{}

var _ Generator = Placeholder{}

var whitespace = regexp.MustCompile(`\s+`)

// className lowercases the node name and replaces whitespace runs with hyphens.
func className(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "-")
}

// CSS returns a stub rule named after the node.
func (Placeholder) CSS(ctx context.Context, node *host.Node) (string, error) {
	return fmt.Sprintf("/* CSS for %s */\n.%s {\n  /* CSS properties would go here */\n}", node.Name, className(node.Name)), nil
}

// React returns a stub function component named after the node.
func (Placeholder) React(ctx context.Context, node *host.Node) (string, error) {
	component := whitespace.ReplaceAllString(node.Name, "")
	return fmt.Sprintf("// React component for %s\nimport React from 'react';\n\nexport function %s() {\n  return (\n    <div className=\"%s\">\n      {/* Component content would go here */}\n    </div>\n  );\n}",
		node.Name, component, className(node.Name)), nil
}

// Tailwind returns stub Tailwind markup for the node.
func (Placeholder) Tailwind(ctx context.Context, node *host.Node) (string, error) {
	return fmt.Sprintf("<!-- Tailwind HTML for %s -->\n<div class=\"w-full h-full flex items-center justify-center\">\n  <!-- Content would go here -->\n</div>", node.Name), nil
}
