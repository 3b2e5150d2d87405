package figmaclaude

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hellenic-development/figma-claude/pkg/extractor"
	"github.com/hellenic-development/figma-claude/pkg/figma"
	"github.com/hellenic-development/figma-claude/pkg/formatter"
	"github.com/hellenic-development/figma-claude/pkg/host"
	"github.com/hellenic-development/figma-claude/pkg/imager"
	"github.com/hellenic-development/figma-claude/pkg/plugin"
	"github.com/hellenic-development/figma-claude/pkg/protocol"
	"github.com/hellenic-development/figma-claude/pkg/session"
)

// Options configures a run against the Figma REST API.
type Options struct {
	AccessToken string
	FileURL     string   // Figma file URL
	NodeIDs     []string // empty = node IDs from the URL, else the first page's frames
	Include     []string // doublestar patterns on top-level node names
	Namespace   string   // shared plugin data namespace for descriptions
	Extensions  []string // extensions reported as present (devMode, codegen)
	ImageCache  int      // rendered images kept in memory, 0 = default
	ImageDir    string   // when set, screen PNGs are written here
	Format      string   // assistant export encoding: "json" (default) or "yaml"
	APIBaseURL  string   // default https://api.figma.com/v1
	Logger      Logger   // nil = no logging
	Now         func() time.Time
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger = extractor.Logger

// Result contains the output of every request kind.
type Result struct {
	Session    *session.Session
	FileName   string
	Markdown   string                  // design documentation
	Export     *formatter.ClaudeExport // assistant payload
	ExportData []byte                  // Export encoded per Options.Format
	Assets     []imager.ExportedAsset  // screen images written to ImageDir
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// NewHost resolves the file and selection from the options and loads them
// from the Figma API. Screen images of the selection are prefetched.
func NewHost(ctx context.Context, opts Options) (*figma.Host, error) {
	opts.logInfo("Extracting file key from URL...")
	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, fmt.Errorf("extract file key: %w", err)
	}
	opts.logInfo("File key: %s", fileKey)

	nodeIDs := opts.NodeIDs
	if len(nodeIDs) > 0 {
		opts.logInfo("Using %d explicit node ID(s)", len(nodeIDs))
	} else {
		nodeIDs, err = figma.ExtractNodeIDs(opts.FileURL)
		if err != nil {
			return nil, fmt.Errorf("extract node IDs from URL: %w", err)
		}
		if len(nodeIDs) > 0 {
			opts.logInfo("Found %d node(s) in URL", len(nodeIDs))
		} else {
			opts.logInfo("No node IDs found, selecting the first page")
		}
	}

	var clientOpts []figma.ClientOption
	if opts.APIBaseURL != "" {
		clientOpts = append(clientOpts, figma.WithBaseURL(opts.APIBaseURL))
	}
	client := figma.NewClient(opts.AccessToken, clientOpts...)

	fetcher, err := imager.NewFetcher(client, fileKey, opts.ImageCache)
	if err != nil {
		return nil, err
	}

	opts.logInfo("Fetching file data from Figma...")
	h, err := figma.NewHost(ctx, client, figma.HostConfig{
		FileKey:    fileKey,
		NodeIDs:    nodeIDs,
		Include:    opts.Include,
		Namespace:  opts.Namespace,
		Extensions: opts.Extensions,
		Images:     fetcher,
	})
	if err != nil {
		return nil, err
	}
	opts.logInfo("File: %s", h.DocumentName())

	selection, _ := h.Selection(ctx)
	ids := make([]string, 0, len(selection))
	for _, n := range selection {
		if extractor.IsScreen(n) {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) > 0 {
		opts.logInfo("Rendering %d screen(s)...", len(ids))
		format := strings.ToLower(extractor.ScreenExport.Format)
		errs, err := fetcher.Prefetch(ctx, ids, format, extractor.ScreenExport.Scale)
		if err != nil {
			// Screens are rendered one by one during extraction instead.
			opts.logWarn("Prefetch failed: %v", err)
		}
		for _, e := range errs {
			opts.logWarn("%v", e)
		}
	}

	return h, nil
}

// Run loads the design from the Figma API and runs every request kind against it.
func Run(ctx context.Context, opts Options) (*Result, error) {
	h, err := NewHost(ctx, opts)
	if err != nil {
		return nil, err
	}
	return RunHost(ctx, h, opts)
}

// RunHost runs screen extraction, style extraction, documentation and the
// assistant export, in that order, against h.
func RunHost(ctx context.Context, h host.Host, opts Options) (*Result, error) {
	switch opts.Format {
	case "", formatter.FormatJSON, formatter.FormatYAML:
	default:
		return nil, fmt.Errorf("invalid export format %q (must be json or yaml)", opts.Format)
	}

	p := plugin.New(h, plugin.Options{Logger: opts.Logger, Now: opts.Now})

	var rec protocol.Recorder
	for _, kind := range []protocol.Kind{
		protocol.ExtractSelected,
		protocol.ExtractStyles,
		protocol.GenerateDocumentation,
		protocol.ExportClaude,
	} {
		if err := p.Handle(ctx, protocol.Request{Kind: kind}, &rec); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		if reply, ok := rec.Last(protocol.TypeError); ok {
			return nil, fmt.Errorf("%s: %s", reply.Context, reply.Message)
		}
	}

	result := &Result{
		Session:  p.Session(),
		FileName: h.DocumentName(),
	}
	if reply, ok := rec.Last(protocol.TypeDocumentationGenerated); ok {
		result.Markdown = reply.Markdown
	}
	if reply, ok := rec.Last(protocol.TypeClaudeExportReady); ok {
		result.Export, _ = reply.Data.(*formatter.ClaudeExport)
	}

	data, err := formatter.EncodeExport(result.Export, opts.Format)
	if err != nil {
		return nil, err
	}
	result.ExportData = data

	if opts.ImageDir != "" {
		opts.logInfo("Writing screen images to %s...", opts.ImageDir)
		written, err := imager.WriteScreens(result.Session.Screens, opts.ImageDir)
		if err != nil {
			return nil, fmt.Errorf("write screens: %w", err)
		}
		for _, e := range written.Errors {
			opts.logWarn("%v", e)
		}
		result.Assets = written.Assets
	}

	return result, nil
}

// ParseNodeIDs parses a comma-separated string of node IDs and returns a slice.
// URL-style IDs (1-2) are normalized to API form (1:2).
func ParseNodeIDs(nodeIDsStr string) []string {
	parts := strings.Split(nodeIDsStr, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, strings.Replace(trimmed, "-", ":", 1))
		}
	}

	return result
}
