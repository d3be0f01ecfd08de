// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz               liveness and build version
//	POST /v1/layout             JSON parameters in, layout JSON out
//	GET  /v1/layout.{format}    parameters as query string, rendered artifact out
//
// Parameters left out of a request take the values of [profile.Default].
// Invalid parameters are answered with 400 and a {"code","message"} body.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/drainplan/pkg/pipeline"
)

// Timeouts applied by [Server.ListenAndServe].
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 30 * time.Second
	ShutdownTimeout = 5 * time.Second
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API on top of a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds a server. The runner's cache is shared by all requests.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/layout.{format}", s.handleArtifact)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
