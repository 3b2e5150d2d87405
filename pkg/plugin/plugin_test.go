package plugin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hellenic-development/figma-claude/pkg/formatter"
	"github.com/hellenic-development/figma-claude/pkg/host"
	"github.com/hellenic-development/figma-claude/pkg/protocol"
	"github.com/hellenic-development/figma-claude/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }

func testHost(extensions ...string) *host.Static {
	return &host.Static{
		Document:   "Shop",
		User:       "Ada",
		Extensions: extensions,
		Nodes: []*host.Node{
			{ID: "1:1", Name: "Home", Type: host.KindFrame, Width: 375, Height: 812,
				Children: []*host.Node{
					{ID: "1:2", Name: "Header", Type: host.KindFrame, Width: 375, Height: 64},
					{ID: "1:3", Name: "Body", Type: host.KindFrame, Y: 80, Width: 375, Height: 600},
				}},
		},
		Images: map[string][]byte{"1:1": []byte("png")},
		Paints: []host.PaintStyle{{ID: "S:1", Name: "Red", Paints: []host.Paint{{Type: "SOLID", Color: host.Color{R: 1}}}}},
		Texts:  []host.TextStyle{{ID: "T:1", Name: "H1", FontName: host.FontName{Family: "Inter", Style: "Bold"}, FontSize: 32}},
	}
}

func handle(t *testing.T, p *Plugin, kind protocol.Kind) *protocol.Recorder {
	t.Helper()
	rec := &protocol.Recorder{}
	require.NoError(t, p.Handle(context.Background(), protocol.Request{Kind: kind}, rec))
	return rec
}

func TestPlugin_New(t *testing.T) {
	p := New(testHost(), Options{Now: clock})
	sess := p.Session()
	require.NotNil(t, sess)
	assert.Equal(t, "Shop", sess.Metadata.ProjectName)
	assert.Equal(t, "Ada", sess.Metadata.Author)
	assert.Equal(t, "2026-10-19T09:30:00.000Z", sess.Metadata.Date)
	assert.Nil(t, sess.DevMode, "probe runs lazily")
}

func TestPlugin_FullFlow(t *testing.T) {
	p := New(testHost(host.ExtensionCodegen), Options{Now: clock})

	rec := handle(t, p, protocol.ExtractSelected)
	assert.Equal(t, []string{protocol.TypeExtractionStarted, protocol.TypeExtractionCompleted}, rec.Types())
	require.True(t, p.Session().DevModeAvailable())
	require.Len(t, p.Session().Screens, 1)
	assert.NotEmpty(t, p.Session().Screens[0].CSSCode)

	rec = handle(t, p, protocol.ExtractStyles)
	assert.Equal(t, []string{protocol.TypeStylesExtractionStarted, protocol.TypeStylesExtractionCompleted}, rec.Types())
	assert.Equal(t, []int{16}, p.Session().Styles.Spacing)

	rec = handle(t, p, protocol.GenerateDocumentation)
	require.Len(t, rec.Replies, 1)
	doc := rec.Replies[0]
	assert.Equal(t, protocol.TypeDocumentationGenerated, doc.Type)
	assert.Contains(t, doc.Markdown, "# Shop - Design Documentation")
	assert.Contains(t, doc.Markdown, "Generated: 10/19/2026, 9:30:00 AM")
	assert.Contains(t, doc.Markdown, "## Component Structure")

	rec = handle(t, p, protocol.ExportClaude)
	require.Len(t, rec.Replies, 1)
	export, ok := rec.Replies[0].Data.(*formatter.ClaudeExport)
	require.True(t, ok)
	assert.Equal(t, "375 x 812", export.Screens[0].Dimensions)
	assert.Equal(t, "text-4xl", export.DesignSystem.Typography[0].TailwindFontSize)
}

func TestPlugin_NoDevMode(t *testing.T) {
	p := New(testHost(), Options{Now: clock})
	handle(t, p, protocol.ExtractSelected)

	require.NotNil(t, p.Session().DevMode)
	assert.False(t, p.Session().DevMode.Available)
	assert.Empty(t, p.Session().Screens[0].CSSCode)
	assert.Nil(t, p.Session().Screens[0].ComponentStructure)
}

func TestPlugin_EmptySelection(t *testing.T) {
	h := testHost()
	h.Nodes = nil
	p := New(h, Options{Now: clock})

	rec := handle(t, p, protocol.ExtractSelected)
	require.Len(t, rec.Replies, 1)
	assert.Equal(t, protocol.TypeError, rec.Replies[0].Type)
	assert.Equal(t, "screens", rec.Replies[0].Context)
}

func TestPlugin_UnknownKindIgnored(t *testing.T) {
	p := New(testHost(), Options{Now: clock})
	rec := handle(t, p, protocol.Kind(0))
	assert.Empty(t, rec.Replies)
	assert.False(t, p.Closed())
}

func TestPlugin_Cancel(t *testing.T) {
	closed := 0
	p := New(testHost(), Options{Now: clock, OnClose: func() { closed++ }})

	rec := handle(t, p, protocol.Cancel)
	assert.Empty(t, rec.Replies)
	assert.True(t, p.Closed())
	assert.Nil(t, p.Session())
	assert.Equal(t, 1, closed)

	err := p.Handle(context.Background(), protocol.Request{Kind: protocol.ExtractStyles}, &protocol.Recorder{})
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 1, closed)
}

func TestPlugin_ExportIdempotent(t *testing.T) {
	p := New(testHost(), Options{Now: clock})
	handle(t, p, protocol.ExtractSelected)
	handle(t, p, protocol.ExtractStyles)

	first := handle(t, p, protocol.ExportClaude).Replies[0].Data.(*formatter.ClaudeExport)
	second := handle(t, p, protocol.ExportClaude).Replies[0].Data.(*formatter.ClaudeExport)
	assert.Equal(t, first, second)
}

func TestPlugin_SerializesRequests(t *testing.T) {
	p := New(testHost(), Options{Now: clock})

	var mu sync.Mutex
	var order []string
	post := protocol.PosterFunc(func(r protocol.Reply) {
		mu.Lock()
		order = append(order, r.Type)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Handle(context.Background(), protocol.Request{Kind: protocol.ExtractSelected}, post)
		}()
	}
	wg.Wait()

	require.Len(t, order, 16)
	for i := 0; i < len(order); i += 2 {
		assert.Equal(t, protocol.TypeExtractionStarted, order[i])
		assert.Equal(t, protocol.TypeExtractionCompleted, order[i+1])
	}
	assert.Len(t, p.Session().Screens, 1)
	assert.IsType(t, []session.Screen{}, p.Session().Screens)
}
