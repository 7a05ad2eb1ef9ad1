// Package server is the hub's HTTP entry point: it upgrades /ws
// connections to the session protocol and serves /healthz, generalized
// from the teacher's single-client server.go to any number of
// concurrent connections.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/cuboktahedron/tetsimu2-hub/internal/protocol"
	"github.com/cuboktahedron/tetsimu2-hub/internal/session"
	"github.com/cuboktahedron/tetsimu2-hub/internal/transport"
)

const hubVersion = "1.0.0"

// Server serves the session protocol over websocket to any number of
// concurrent clients.
type Server struct {
	addr string
	log  zerolog.Logger
	deps session.ProcessorDeps
}

// NewServer builds a Server listening on addr, handing each upgraded
// connection's processors the given deps (solver path, engine factory).
func NewServer(addr string, log zerolog.Logger, deps session.ProcessorDeps) *Server {
	return &Server{addr: addr, log: log, deps: deps}
}

// Handler returns the mux-routed http.Handler, split out from Serve so
// tests can drive it through httptest.NewServer without binding a
// real port.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.serveWebsocket)
	router.HandleFunc("/healthz", s.serveHealthz)
	return router
}

// Serve blocks, running the HTTP listener until ctx is cancelled or an
// unrecoverable error occurs.
func (s *Server) Serve(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server: serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		_ = httpServer.Close()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) serveHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := transport.Upgrade(w, r)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log := s.log.With().Str("conn", conn.ID()).Logger()
	handler := &connHandler{
		log:  log,
		conn: session.NewConnection(conn.ID(), conn, log, s.deps),
	}

	conn.Run(r.Context(), handler)
}

// connHandler adapts session.Connection to transport.Handler.
type connHandler struct {
	log  zerolog.Logger
	conn *session.Connection
}

func (h *connHandler) OnOpen(conn *transport.Conn) {
	h.log.Info().Msg("connection opened")

	out, err := json.Marshal(protocol.Wrap("Version", protocol.NewVersionMessage(hubVersion)))
	if err != nil {
		h.log.Error().Err(err).Msg("failed to marshal version handshake")
		return
	}
	if err := conn.Send(string(out)); err != nil {
		h.log.Warn().Err(err).Msg("failed to send version handshake")
	}
}

func (h *connHandler) OnMessage(conn *transport.Conn, text string) {
	h.conn.HandleText(text)
}

func (h *connHandler) OnClose(conn *transport.Conn, reason string) {
	h.log.Info().Str("reason", reason).Msg("connection closed")
}
