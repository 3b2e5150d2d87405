package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	figmaclaude "github.com/hellenic-development/figma-claude"
	"github.com/hellenic-development/figma-claude/pkg/formatter"
	"github.com/hellenic-development/figma-claude/pkg/host"
)

const envPrefix = "FIGMA_CLAUDE_"

var k = koanf.New(".")

// listKeys hold comma-separated values when set through the environment.
var listKeys = map[string]bool{"include": true, "extensions": true}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".figma-claude.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Flags last; unset flags only fill keys nothing else provided.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (FIGMA_CLAUDE_* prefix)
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		// FIGMA_CLAUDE_NODE_IDS -> node-ids
		// FIGMA_CLAUDE_INCLUDE=a,b -> include: [a b]
		key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "_", "-")
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// buildOptions constructs the library options from koanf state.
func buildOptions(logger figmaclaude.Logger) figmaclaude.Options {
	opts := figmaclaude.Options{
		AccessToken: k.String("token"),
		FileURL:     k.String("url"),
		Include:     k.Strings("include"),
		Namespace:   getStringWithDefault("namespace", ""),
		Extensions:  k.Strings("extensions"),
		ImageCache:  k.Int("image-cache"),
		ImageDir:    k.String("image-dir"),
		Format:      getStringWithDefault("format", formatter.FormatJSON),
		Logger:      logger,
	}
	if ids := k.String("node-ids"); ids != "" {
		opts.NodeIDs = figmaclaude.ParseNodeIDs(ids)
	}
	return opts
}

// newHost opens the configured design source: a snapshot file or the Figma API.
func newHost(ctx context.Context, opts figmaclaude.Options) (host.Host, error) {
	if path := k.String("snapshot"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()

		h, err := host.LoadSnapshot(f)
		if err != nil {
			return nil, err
		}
		if len(opts.Extensions) > 0 {
			h.Extensions = opts.Extensions
		}
		return h, nil
	}

	if opts.AccessToken == "" {
		return nil, fmt.Errorf("a Figma token is required (--token or %sTOKEN)", envPrefix)
	}
	if opts.FileURL == "" {
		return nil, fmt.Errorf("a Figma file URL is required (--url or %sURL)", envPrefix)
	}
	h, err := figmaclaude.NewHost(ctx, opts)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// getStringWithDefault returns the key's value, or defaultVal when it is unset or empty.
func getStringWithDefault(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}
