// Package server exposes the pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz             liveness probe
//	GET  /v1/version          build information
//	GET  /v1/observers        registered observer types
//	GET  /v1/config/default   a runnable default configuration
//	POST /v1/runs             execute a run; body is pipeline.Options as JSON
//	GET  /metrics             Prometheus metrics, when configured
//
// Identical concurrent run requests are collapsed into one execution.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/hotnet/pkg/buildinfo"
	"github.com/matzehuels/hotnet/pkg/cache"
	"github.com/matzehuels/hotnet/pkg/config"
	"github.com/matzehuels/hotnet/pkg/errors"
	"github.com/matzehuels/hotnet/pkg/observability"
	"github.com/matzehuels/hotnet/pkg/pipeline"
)

const (
	// DefaultMaxNodes bounds the network size a request may ask for.
	DefaultMaxNodes = 100_000

	maxBodyBytes = 1 << 20
)

// Options configures a Server.
type Options struct {
	// MaxNodes rejects runs with a larger size (0 means DefaultMaxNodes).
	MaxNodes int
	// Metrics is served at /metrics when non-nil.
	Metrics http.Handler
}

// Server is the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	maxNodes int
	runs     singleflight.Group
	router   chi.Router
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	s := &Server{runner: runner, logger: logger, maxNodes: opts.MaxNodes}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/observers", s.handleObservers)
		r.Get("/config/default", s.handleDefaultConfig)
		r.Post("/runs", s.handleRun)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
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

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// instrument reports requests to the HTTP hooks, labelled by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleObservers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"types": s.runner.Registry.Kinds()})
}

func (s *Server) handleDefaultConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.Default())
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	if opts.Config.Size > s.maxNodes {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidConfig, "size %d exceeds the server limit of %d", opts.Config.Size, s.maxNodes))
		return
	}

	// Collapse identical requests. The shared execution must not die with
	// the first caller's connection.
	cfg := opts.Config
	cfg.ApplyDefaults()
	key, err := cache.HashJSON(pipeline.Options{Config: cfg, Refresh: opts.Refresh})
	if err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidConfig, err, "hash request"))
		return
	}
	v, err, shared := s.runs.Do(key, func() (any, error) {
		return s.runner.Execute(context.WithoutCancel(r.Context()), opts)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if shared {
		w.Header().Set("X-Hotnet-Shared", "true")
	}
	writeJSON(w, http.StatusOK, v.(*pipeline.Result))
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, route, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "route", route, "error", err)
	} else {
		s.logger.Debug("request rejected", "route", route, "error", err)
	}
	writeJSON(w, status, errorBody{Code: errors.GetCode(err), Error: errors.UserMessage(err)})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInput,
		errors.ErrCodeTooFewNodes, errors.ErrCodeInvalidNodeIndex:
		return http.StatusBadRequest
	case errors.ErrCodeUnreachableNode:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
