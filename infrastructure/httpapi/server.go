// Package httpapi serves the export table over JSON for inspection and
// manual invocation.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/0-don/monero-ts/internal/metrics"
	"github.com/0-don/monero-ts/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RegistrySource yields the export table once it is Ready.
type RegistrySource interface {
	Registry() (*hostfuncs.Registry, error)
}

// Server is the HTTP debug surface.
type Server struct {
	source         RegistrySource
	metrics        *metrics.Metrics
	logger         zerolog.Logger
	hostModule     string
	maxRequestSize int64
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics exposes m on /metrics and instruments every route.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger replaces the http component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithHostModule sets the module name reported in the manifest.
func WithHostModule(name string) Option {
	return func(s *Server) {
		s.hostModule = name
	}
}

// WithMaxRequestSize bounds invoke request bodies.
func WithMaxRequestSize(n int64) Option {
	return func(s *Server) {
		s.maxRequestSize = n
	}
}

// NewServer creates a Server reading exports from source.
func NewServer(source RegistrySource, opts ...Option) *Server {
	s := &Server{
		source:         source,
		logger:         log.HTTP,
		hostModule:     "monero",
		maxRequestSize: hostfuncs.DefaultMaxRequestSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	if s.metrics != nil {
		r.Use(s.metrics.InstrumentHandler)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/exports", func(r chi.Router) {
		r.Get("/", s.handleManifest)
		r.Get("/{name}", s.handleDescribe)
		r.Post("/{name}", s.handleInvoke)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	body := map[string]any{"status": "ok"}
	if _, err := s.source.Registry(); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "initializing"
	}
	writeJSON(w, status, body)
}

func (s *Server) handleManifest(w http.ResponseWriter, _ *http.Request) {
	reg, err := s.source.Registry()
	if err != nil {
		writeError(w, hostfuncs.ErrorResponseFrom(err))
		return
	}
	writeJSON(w, http.StatusOK, reg.Manifest(s.hostModule))
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	reg, err := s.source.Registry()
	if err != nil {
		writeError(w, hostfuncs.ErrorResponseFrom(err))
		return
	}
	exp, err := reg.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, hostfuncs.ErrorResponseFrom(err))
		return
	}
	writeJSON(w, http.StatusOK, hostfuncs.Describe(exp))
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	reg, err := s.source.Registry()
	if err != nil {
		writeError(w, hostfuncs.ErrorResponseFrom(err))
		return
	}
	exp, err := reg.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, hostfuncs.ErrorResponseFrom(err))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxRequestSize))
	if err != nil {
		writeError(w, hostfuncs.NewValidationError("request body too large or unreadable"))
		return
	}

	out, err := hostfuncs.NewJSONHandler(exp)(hostfuncs.WithCaller(r.Context(), "http"), body)
	if err != nil {
		resp := hostfuncs.ErrorResponseFrom(err)
		if resp.Code >= http.StatusInternalServerError {
			s.logger.Error().Err(err).Str("export", exp.Name).Msg("invoke failed")
		}
		writeError(w, resp)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, resp hostfuncs.ErrorResponse) {
	writeJSON(w, resp.Code, resp)
}
