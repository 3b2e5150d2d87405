// Package plugin dispatches UI requests to the extraction pipelines of one session.
package plugin

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hellenic-development/figma-claude/pkg/codegen"
	"github.com/hellenic-development/figma-claude/pkg/extractor"
	"github.com/hellenic-development/figma-claude/pkg/formatter"
	"github.com/hellenic-development/figma-claude/pkg/host"
	"github.com/hellenic-development/figma-claude/pkg/protocol"
	"github.com/hellenic-development/figma-claude/pkg/session"
	"github.com/hellenic-development/figma-claude/pkg/tailwind"
)

// ErrClosed is returned for requests that arrive after cancel.
var ErrClosed = errors.New("plugin: session closed")

// Options configures a Plugin. Zero values select the defaults.
type Options struct {
	Generator codegen.Generator     // default codegen.Placeholder
	Colors    tailwind.ColorMatcher // default tailwind.Placeholder
	Logger    extractor.Logger      // nil = silent
	Now       func() time.Time      // default time.Now
	OnClose   func()                // called once after cancel
}

// Plugin owns one extraction session. Requests are handled one at a time.
type Plugin struct {
	mu      sync.Mutex
	host    host.Host
	opts    Options
	session *session.Session
	closed  bool
}

// New starts a session against h.
func New(h host.Host, opts Options) *Plugin {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Colors == nil {
		opts.Colors = tailwind.Placeholder{}
	}
	if opts.Generator == nil {
		opts.Generator = codegen.Placeholder{}
	}

	return &Plugin{
		host:    h,
		opts:    opts,
		session: session.New(h.DocumentName(), h.CurrentUser(), opts.Now()),
	}
}

// Session returns the live session, or nil after cancel. Callers must not use it
// concurrently with Handle.
func (p *Plugin) Session() *session.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// Closed reports whether cancel has been handled.
func (p *Plugin) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Handle runs the pipeline for req and posts its replies. It blocks until the
// pipeline finishes; concurrent calls are serialized.
func (p *Plugin) Handle(ctx context.Context, req protocol.Request, post protocol.Poster) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	log := p.opts.Logger
	if log != nil {
		log.Infof("Handling %s", req.Kind)
	}

	switch req.Kind {
	case protocol.ExtractSelected:
		p.probeDevMode()
		frames := &extractor.Frames{Host: p.host, Generator: p.opts.Generator, Logger: log}
		frames.Extract(ctx, p.session, post)

	case protocol.ExtractStyles:
		styles := &extractor.Styles{Host: p.host, Logger: log}
		styles.Extract(ctx, p.session, post)

	case protocol.GenerateDocumentation:
		post.Post(protocol.Reply{
			Type:     protocol.TypeDocumentationGenerated,
			Markdown: formatter.ToMarkdown(p.session, p.opts.Now()),
		})

	case protocol.ExportClaude:
		post.Post(protocol.Reply{
			Type: protocol.TypeClaudeExportReady,
			Data: formatter.ToClaudeExport(p.session, p.opts.Colors),
		})

	case protocol.Cancel:
		p.closed = true
		p.session = nil
		if p.opts.OnClose != nil {
			p.opts.OnClose()
		}
	}

	return nil
}

// probeDevMode refreshes the capability flag right before frame extraction.
func (p *Plugin) probeDevMode() {
	available := extractor.ProbeDevMode(p.host)
	p.session.DevMode = &session.DevModeSupport{Available: available}
	if available && p.opts.Logger != nil {
		p.opts.Logger.Infof("DevMode available - collecting additional data")
	}
}
