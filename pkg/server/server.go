// Package server exposes pattern generation over HTTP.
//
// # Routes
//
//	GET  /healthz          liveness check, returns "ok"
//	GET  /version          build metadata as JSON
//	GET  /api/v1/pattern   parameters as query string
//	POST /api/v1/pattern   parameters as JSON body
//
// Both pattern routes accept width, height, cut_length, gap, separation,
// cut_width, variant, frame and format; omitted values fall back to the
// stock preset. The response body is the rendered artifact. With
// download=true it is sent as an attachment named living_hinge.<ext>.
//
// Validation failures return 400 with a JSON body naming the field, the
// offending value and the violated limit:
//
//	{"code":"PITCH_TOO_SMALL","field":"separation","value":0.2,"limit":0.5,
//	 "message":"separation = 0.2: column pitch below minimum (limit 0.5)"}
//
// Every response carries an X-Request-ID header, taken from the request when
// present and generated otherwise.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/hingecut/pkg/buildinfo"
	"github.com/matzehuels/hingecut/pkg/hinge"
	"github.com/matzehuels/hingecut/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// maxBodyBytes bounds POST bodies; a full request is well under 1 KiB.
	maxBodyBytes = 64 << 10

	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server serves hinge patterns.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	limits hinge.Config
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLimits sets the generator tolerances applied to every request.
func WithLimits(cfg hinge.Config) Option {
	return func(s *Server) { s.limits = cfg }
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, nil)
	}
	s := &Server{
		runner: runner,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		limits: hinge.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", handleHealth)
	r.Get("/version", handleVersion)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/pattern", s.handlePatternQuery)
		r.Post("/pattern", s.handlePatternJSON)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "version", buildinfo.Version)
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
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}
