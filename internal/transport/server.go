// Package transport exposes the simulation over WebSocket: JSON commands in,
// JSON events and state snapshots out. Each connection owns an isolated game.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/delver-game/delver/internal/config"
	"github.com/delver-game/delver/internal/game/engine"
)

const shutdownTimeout = 5 * time.Second

// GameFactory builds a fresh Game for a new connection. Each game gets its
// own randomness source, so sessions never share state.
type GameFactory func() *engine.Game

// Server is the HTTP/WebSocket front of the game. It implements the
// lifecycle Service interface.
type Server struct {
	addr     string
	factory  GameFactory
	logger   *zap.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// New creates a Server listening on the configured address.
//
// Precondition: factory and logger must be non-nil.
func New(cfg config.ServerConfig, factory GameFactory, logger *zap.Logger) *Server {
	s := &Server{
		addr:    cfg.Addr(),
		factory: factory,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The server is an origin-agnostic game backend.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)
	mux.HandleFunc("/healthz", s.handleHealthz)
	s.httpSrv = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start runs the HTTP listener; it blocks until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("listening", zap.String("addr", s.addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop shuts the listener down gracefully.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

// handlePlay upgrades the connection and runs one session to completion.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	logger := s.logger.With(zap.String("remote", conn.RemoteAddr().String()))
	logger.Info("session opened")

	sess := newSession(s.factory(), conn, logger)
	go sess.writePump()
	sess.readPump()
	logger.Info("session closed")
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
