// Package server is the HTTP entry point: it routes POST requests to the
// signup/login/chat handlers, serves static assets for everything else,
// enforces the request body ceiling and shapes every response as a JSON
// envelope with a success flag.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chatrelay/internal/chatlog"
	"chatrelay/internal/config"
	"chatrelay/internal/history"
	"chatrelay/internal/llm"
	"chatrelay/internal/users"
)

type Server struct {
	cfg       *config.Config
	users     *users.Directory
	turns     *chatlog.Log
	assembler *history.Assembler
	llm       llm.Client
	logger    *zap.Logger
	httpSrv   *http.Server
}

func New(cfg *config.Config, dir *users.Directory, turns *chatlog.Log, assembler *history.Assembler, client llm.Client, logger *zap.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		users:     dir,
		turns:     turns,
		assembler: assembler,
		llm:       client,
		logger:    logger,
	}
	s.httpSrv = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST,GET,OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		s.serveStatic(w, r)
		return
	}

	rid := uuid.NewString()
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("handler panic",
				zap.Any("panic", rec),
				zap.String("request_id", rid),
				zap.String("path", r.URL.Path))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Warn("request body over limit",
				zap.String("request_id", rid),
				zap.Int64("limit", s.cfg.MaxBodyBytes))
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	s.logger.Debug("dispatching",
		zap.String("request_id", rid),
		zap.String("path", r.URL.Path),
		zap.Int("body_bytes", len(body)))

	switch r.URL.Path {
	case "/signup":
		s.handleSignup(w, body)
	case "/login":
		s.handleLogin(w, body)
	case "/chat":
		s.handleChat(r.Context(), w, body)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}
