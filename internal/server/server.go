// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes name resolution and trial aggregation over a JSON
// HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pdiddy/trialscout/internal/names"
	"github.com/pdiddy/trialscout/internal/trials"
	"github.com/pdiddy/trialscout/pkg/types"
)

const (
	defaultAddr           = ":3000"
	defaultRequestsPerSec = 10
	defaultBurst          = 20
	shutdownTimeout       = 10 * time.Second
)

// PaperSearcher looks up published papers about a drug.
type PaperSearcher interface {
	Search(ctx context.Context, drug string, limit int) ([]types.Paper, error)
}

// RunRecorder stores one aggregation run.
type RunRecorder interface {
	Record(ctx context.Context, r types.RunRecord) (types.RunRecord, error)
}

// Deps are the collaborators the server routes to. Literature and History
// are optional.
type Deps struct {
	Resolver   *names.Resolver
	Pipeline   *trials.Pipeline
	Literature PaperSearcher
	History    RunRecorder
	Logger     *slog.Logger
}

// Server serves the trialscout HTTP API.
type Server struct {
	cfg        types.ServerConfig
	resolver   *names.Resolver
	pipeline   *trials.Pipeline
	literature PaperSearcher
	history    RunRecorder
	logger     *slog.Logger
}

// New returns a Server. A nil logger uses slog.Default().
func New(cfg types.ServerConfig, deps Deps) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRequestsPerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:        cfg,
		resolver:   deps.Resolver,
		pipeline:   deps.Pipeline,
		literature: deps.Literature,
		history:    deps.History,
		logger:     logger,
	}
}

// Routes builds the chi router with middleware and every API route.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimw.Logger)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimiter(RateLimitConfig{
			RequestsPerSecond: s.cfg.RequestsPerSecond,
			Burst:             s.cfg.Burst,
		}))
		if s.cfg.RequestTimeout > 0 {
			r.Use(chimw.Timeout(s.cfg.RequestTimeout))
		}
		r.Get("/drug/{name}", s.handleDrug)
		r.Get("/collect-names/{name}", s.handleCollectNames)
		r.Post("/aggregate-trials", s.handleAggregateTrials)
		r.Get("/literature/{name}", s.handleLiterature)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("trialscout API listening", "addr", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
