package uiserver

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// connWithMutex wraps a websocket connection with its own mutex for thread-safe writes.
type connWithMutex struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// WriteJSON writes one message under the connection's write lock.
func (c *connWithMutex) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// WriteClose sends a close frame with the given code and reason.
func (c *connWithMutex) WriteClose(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(code, reason)
	return c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// connManager tracks open connections so they can be closed on shutdown.
type connManager struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]*connWithMutex
}

func newConnManager() *connManager {
	return &connManager{
		connections: make(map[*websocket.Conn]*connWithMutex),
	}
}

func (m *connManager) Add(conn *websocket.Conn) *connWithMutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	cwm := &connWithMutex{conn: conn}
	m.connections[conn] = cwm
	return cwm
}

func (m *connManager) Remove(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.connections, conn)
}

func (m *connManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// CloseAll sends a going-away frame to every connection.
func (m *connManager) CloseAll() {
	m.mu.RLock()
	// Copy so writes happen without holding the map lock.
	conns := make([]*connWithMutex, 0, len(m.connections))
	for _, cwm := range m.connections {
		conns = append(conns, cwm)
	}
	m.mu.RUnlock()

	for _, cwm := range conns {
		cwm.WriteClose(websocket.CloseGoingAway, "server shutting down")
		cwm.conn.Close()
	}
}
