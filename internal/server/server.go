// Package server hosts the dispatcher behind an HTTP API for
// non-Lambda deployments.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hyecheol/ragchat/internal/chat"
	"github.com/hyecheol/ragchat/internal/loader"
	"github.com/hyecheol/ragchat/internal/memory"
	"github.com/hyecheol/ragchat/internal/metrics"
	"github.com/hyecheol/ragchat/internal/models"
)

// sweepInterval is how often idle conversations are evicted.
const sweepInterval = 10 * time.Minute

// Handler processes one inbound request.
type Handler interface {
	Handle(ctx context.Context, req models.Request) (models.Response, error)
}

// Server wires the dispatcher into a chi router with lifecycle
// management.
type Server struct {
	handler       Handler
	conversations *memory.Store
	collector     *metrics.Collector
	logger        *slog.Logger
	addr          string
	router        chi.Router
}

// New creates a server. collector may be nil.
func New(addr string, handler Handler, conversations *memory.Store, collector *metrics.Collector, logger *slog.Logger) *Server {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		handler:       handler,
		conversations: conversations,
		collector:     collector,
		logger:        logger,
		addr:          addr,
	}

	r := chi.NewRouter()
	r.Use(LoggingMiddleware(logger))
	r.Post("/invoke", s.handleInvoke)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/stats", s.handleStats)
	s.router = r

	return s
}

// Router returns the configured router (exposed for tests).
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the context is canceled, then shuts down gracefully.
// A janitor goroutine sweeps idle conversations while serving.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	go s.janitor(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) janitor(ctx context.Context) {
	if s.conversations == nil {
		return
	}
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if evicted := s.conversations.Sweep(now); evicted > 0 {
				s.logger.Info("idle conversations evicted", "count", evicted)
			}
		}
	}
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	var req models.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Body == "" {
		httpError(w, http.StatusBadRequest, "user-id and body are required")
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	resp, err := s.handler.Handle(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, loader.ErrUnsupportedFileType):
			httpError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, loader.ErrSourceFetch):
			httpError(w, http.StatusNotFound, err.Error())
		default:
			httpError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.collector.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Ensure chat.Service satisfies Handler.
var _ Handler = (*chat.Service)(nil)
