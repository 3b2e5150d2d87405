package codegen

import (
	"context"
	"testing"

	"github.com/hellenic-development/figma-claude/pkg/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholder(t *testing.T) {
	node := &host.Node{ID: "1:1", Name: "Sign  Up Form", Type: host.KindFrame}
	var gen Generator = Placeholder{}
	ctx := context.Background()

	css, err := gen.CSS(ctx, node)
	require.NoError(t, err)
	assert.Equal(t, "/* CSS for Sign  Up Form */\n.sign-up-form {\n  /* CSS properties would go here */\n}", css)

	react, err := gen.React(ctx, node)
	require.NoError(t, err)
	assert.Contains(t, react, "export function SignUpForm() {")
	assert.Contains(t, react, `<div className="sign-up-form">`)

	tw, err := gen.Tailwind(ctx, node)
	require.NoError(t, err)
	assert.Contains(t, tw, "<!-- Tailwind HTML for Sign  Up Form -->")
}

func TestClassName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Button", "button"},
		{"Primary Button", "primary-button"},
		{"Tab\tBar  Item", "tab-bar-item"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, className(tt.in))
	}
}
