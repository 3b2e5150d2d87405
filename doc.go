// Package figmaclaude captures screens and design styles from a Figma file and
// turns them into a Markdown design document and an assistant-ready payload
// (screens, design tokens with Tailwind hints, prompt instructions).
//
// The same session pipeline backs three surfaces: the one-shot CLI export in
// cmd/figma-claude, a websocket server for a browser panel (pkg/uiserver) and
// an MCP server for AI assistants (pkg/mcp). This root package exposes the
// one-shot pipeline as a Go API.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmaclaude:
//
//	import "github.com/hellenic-development/figma-claude" // package figmaclaude
//
// # Quick start
//
//	result, err := figmaclaude.Run(ctx, figmaclaude.Options{
//	    AccessToken: os.Getenv("FIGMA_TOKEN"),
//	    FileURL:     "https://www.figma.com/design/ABC123/My-Design?node-id=1-2",
//	    ImageDir:    "screens",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("design.md", []byte(result.Markdown), 0644)
//	os.WriteFile("claude.json", result.ExportData, 0644)
//
// # Selection
//
// The REST API has no live selection. The node IDs in [Options.NodeIDs] or in
// the URL act as the selection; without them every top-level node of the first
// page is selected. [Options.Include] narrows that down by node name.
//
// # Offline runs
//
// [RunHost] accepts any host.Host, such as a snapshot loaded with
// host.LoadSnapshot, so the pipeline can run without network access.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package figmaclaude
