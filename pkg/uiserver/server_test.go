package uiserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-claude/pkg/host"
	"github.com/hellenic-development/figma-claude/pkg/plugin"
	"github.com/hellenic-development/figma-claude/pkg/protocol"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	h := &host.Static{
		Document: "Shop",
		User:     "Ada",
		Nodes: []*host.Node{
			{ID: "1:1", Name: "Home", Type: host.KindFrame, Width: 375, Height: 812},
		},
		Images: map[string][]byte{"1:1": []byte("png")},
		Paints: []host.PaintStyle{{ID: "S:1", Name: "Red", Paints: []host.Paint{{Type: "SOLID", Color: host.Color{R: 1}}}}},
	}
	s := New(func() *plugin.Plugin { return plugin.New(h, plugin.Options{}) }, nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

type wireReply struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
	Markdown string          `json:"markdown"`
	Message  string          `json:"message"`
	Context  string          `json:"context"`
}

func send(t *testing.T, conn *websocket.Conn, typ string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"`+typ+`"}`)))
}

func read(t *testing.T, conn *websocket.Conn) wireReply {
	t.Helper()
	var r wireReply
	require.NoError(t, conn.ReadJSON(&r))
	return r
}

func TestServer_Session(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv)

	send(t, conn, "extract-selected")
	assert.Equal(t, protocol.TypeExtractionStarted, read(t, conn).Type)
	done := read(t, conn)
	assert.Equal(t, protocol.TypeExtractionCompleted, done.Type)

	var screens []map[string]any
	require.NoError(t, json.Unmarshal(done.Data, &screens))
	require.Len(t, screens, 1)
	assert.Equal(t, "Home", screens[0]["name"])
	assert.Equal(t, "cG5n", screens[0]["image"])

	// Malformed and unknown messages are ignored.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	send(t, conn, "resize")

	send(t, conn, "generate-documentation")
	doc := read(t, conn)
	assert.Equal(t, protocol.TypeDocumentationGenerated, doc.Type)
	assert.Contains(t, doc.Markdown, "# Shop - Design Documentation")

	send(t, conn, "export-claude")
	export := read(t, conn)
	assert.Equal(t, protocol.TypeClaudeExportReady, export.Type)
	assert.Contains(t, string(export.Data), `"projectName":"Shop"`)
}

func TestServer_CancelClosesConnection(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv)

	send(t, conn, "cancel")
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestServer_SessionsAreIndependent(t *testing.T) {
	s, srv := newTestServer(t)
	a := dial(t, srv)
	b := dial(t, srv)

	send(t, a, "cancel")
	_, _, err := a.ReadMessage()
	require.Error(t, err)

	send(t, b, "extract-styles")
	assert.Equal(t, protocol.TypeStylesExtractionStarted, read(t, b).Type)
	assert.Equal(t, protocol.TypeStylesExtractionCompleted, read(t, b).Type)

	assert.Eventually(t, func() bool { return s.Connections() == 1 }, time.Second, 10*time.Millisecond)
}

func TestServer_Health(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestServer_RejectsPlainHTTP(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
