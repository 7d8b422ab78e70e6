// Package server exposes the rendering pipeline over HTTP.
//
// Routes:
//
//	GET  /health       liveness probe
//	GET  /v1/layouts   the layout catalog
//	POST /v1/render    render a certificate; the body is
//	                   {"template": ..., "record": ..., "options": {...}}
//	                   and the response is the artifact itself
//	POST /v1/record    the canonical record for the same body, as JSON
//
// Errors are answered as {"error": {"code": ..., "message": ...}} with the
// status derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/certifyme/certrender/pkg/pipeline"
)

// MaxBodySize bounds request bodies. Templates may inline images as data
// URIs, so this is generous.
const MaxBodySize = 10 << 20

// Server serves the preview API.
type Server struct {
	runner       *pipeline.Runner
	origin       string
	assetBase    string
	assetTimeout time.Duration
	logger       *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithOrigin sets the verification origin badges point to.
func WithOrigin(origin string) Option {
	return func(s *Server) { s.origin = origin }
}

// WithAssetBase sets the base URL relative asset paths resolve against.
func WithAssetBase(base string) Option {
	return func(s *Server) { s.assetBase = base }
}

// WithAssetTimeout bounds the wait for images per request.
func WithAssetTimeout(d time.Duration) Option {
	return func(s *Server) { s.assetTimeout = d }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server rendering through runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.recoverer)
	r.Use(s.accessLog)

	r.Get("/health", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/layouts", s.layouts)
		r.Post("/render", s.render)
		r.Post("/record", s.record)
	})

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
