// Package server exposes the pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz          liveness and build info
//	GET  /v1/schemes       registered ranking schemes
//	GET  /v1/count         number of ranks for scheme, alphabet and k
//	POST /v1/rank          rank of a word
//	POST /v1/unrank        word with a given rank
//	GET  /v1/enumerate     permutations in heap, lexicographic or rank order
//	GET  /v1/render.svg    an enumeration drawn as a chain
//	GET  /metrics          Prometheus exposition
//
// Request options go in the query string for GET routes (scheme, alphabet, k,
// order, limit, refresh) and in the JSON body for POST routes (scheme,
// alphabet, k and the word or rank). Empty options take the configured
// defaults.
//
// Errors are JSON objects {"code": ..., "error": ...}; see statusFor for the
// status of each code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/permrank/pkg/pipeline"
)

// Config holds server settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Defaults fill request options the client leaves empty.
	Defaults pipeline.Options

	// Gatherer backs /metrics. Nil means the default Prometheus registry.
	Gatherer prometheus.Gatherer
}

// Server is the permrank HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds the router. The runner is shared by all requests.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{cfg: cfg, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "UNSUPPORTED", r.Method+" not allowed on "+r.URL.Path)
	})

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/schemes", s.handleSchemes)
		r.Get("/count", s.handleCount)
		r.Post("/rank", s.handleRank)
		r.Post("/unrank", s.handleUnrank)
		r.Get("/enumerate", s.handleEnumerate)
		r.Get("/render.svg", s.handleRender)
	})

	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully,
// giving in-flight requests up to shutdownTimeout to finish.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

const shutdownTimeout = 10 * time.Second
