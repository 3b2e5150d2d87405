package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs the export command against a real Figma file.
//
// Run with:
//   FIGMA_TOKEN=<your-token> go test -v -run TestExportLive ./cmd/figma-claude

const liveFigmaURL = "https://www.figma.com/design/rrjFDZ1mXkjC147DGMDtFU/Mobile-Apps-%E2%80%93-Prototyping-Kit--Community-?node-id=193-3231&p=f&t=jQIqfqrH4tIfi4Ey-0"

func mustGetToken(t *testing.T) string {
	token := os.Getenv("FIGMA_TOKEN")
	if token == "" {
		t.Skip("FIGMA_TOKEN not set, skipping test")
	}
	return token
}

func TestExportLive(t *testing.T) {
	token := mustGetToken(t)
	resetKoanf()

	dir := t.TempDir()
	mdPath := filepath.Join(dir, "FIGMA_DESIGN_DOCUMENTATION.md")
	payloadPath := filepath.Join(dir, "claude-export.json")
	imageDir := filepath.Join(dir, "screens")

	// rootCmd is shared with other tests, so flags they set are reset here.
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"export",
		"--config", filepath.Join(dir, "none.yaml"),
		"--url", liveFigmaURL,
		"--token", token,
		"--snapshot", "",
		"-f", "json",
		"--no-color",
		"-o", mdPath,
		"--claude-output", payloadPath,
		"--image-dir", imageDir,
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute(), out.String())
	t.Log(out.String())

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Screens")

	payload, err := os.ReadFile(payloadPath)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"designMetadata"`)

	entries, err := os.ReadDir(imageDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries, "expected at least one screen image")
}
