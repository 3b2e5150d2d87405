package main

import (
	"github.com/spf13/cobra"

	"github.com/hellenic-development/figma-claude/pkg/plugin"
	"github.com/hellenic-development/figma-claude/pkg/uiserver"
)

const defaultListen = "127.0.0.1:8765"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the plugin UI protocol over a websocket (/ws)",
	Long: `Serve the plugin UI protocol over a websocket at /ws. Each connection gets its own
session against the configured design source; a cancel message ends it.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", defaultListen, "Address to listen on")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := &cliLogger{w: cmd.ErrOrStderr()}
	opts := buildOptions(logger)

	h, err := newHost(cmd.Context(), opts)
	if err != nil {
		return err
	}

	srv := uiserver.New(func() *plugin.Plugin {
		return plugin.New(h, plugin.Options{Logger: logger})
	}, logger)

	return srv.ListenAndServe(cmd.Context(), getStringWithDefault("listen", defaultListen))
}
