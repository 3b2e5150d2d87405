// Package uiserver serves the plugin's UI protocol over a websocket so a browser
// panel can drive extraction outside the design tool.
package uiserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/hellenic-development/figma-claude/pkg/extractor"
	"github.com/hellenic-development/figma-claude/pkg/plugin"
	"github.com/hellenic-development/figma-claude/pkg/protocol"
)

// Factory starts a fresh plugin session for a new connection.
type Factory func() *plugin.Plugin

// Server accepts websocket connections on /ws. Every connection owns one plugin
// session; a cancel request ends the session and closes the connection.
type Server struct {
	newPlugin Factory
	logger    extractor.Logger
	conns     *connManager
	upgrader  websocket.Upgrader
	router    *chi.Mux
}

// New creates a Server. A nil logger means silent operation.
func New(newPlugin Factory, logger extractor.Logger) *Server {
	s := &Server{
		newPlugin: newPlugin,
		logger:    logger,
		conns:     newConnManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The panel is served from the design tool's sandbox origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWS)
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Connections returns the number of open sessions.
func (s *Server) Connections() int {
	return s.conns.Len()
}

// ListenAndServe serves on addr until ctx is done, then closes every connection.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.conns.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "ok", "connections": s.conns.Len()})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		s.warnf("websocket upgrade failed: %v", err)
		return
	}
	cwm := s.conns.Add(conn)
	defer func() {
		s.conns.Remove(conn)
		conn.Close()
	}()

	p := s.newPlugin()
	post := protocol.PosterFunc(func(reply protocol.Reply) {
		if err := cwm.WriteJSON(reply); err != nil {
			s.warnf("failed to post %s: %v", reply.Type, err)
		}
	})

	ctx := r.Context()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.warnf("websocket read failed: %v", err)
			}
			return
		}

		req, ok := protocol.ParseRequest(raw)
		if !ok {
			continue
		}

		if err := p.Handle(ctx, req, post); err != nil {
			s.warnf("request %s failed: %v", req.Kind, err)
			return
		}

		if p.Closed() {
			cwm.WriteClose(websocket.CloseNormalClosure, "cancelled")
			return
		}
	}
}

func (s *Server) infof(format string, args ...any) {
	if s.logger != nil {
		s.logger.Infof(format, args...)
	}
}

func (s *Server) warnf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Warnf(format, args...)
	}
}
