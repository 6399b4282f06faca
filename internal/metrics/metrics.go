// Package metrics exposes Prometheus collectors for export calls and the
// HTTP debug surface.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "monero_bridge"

// Metrics holds the bridge's collectors, registered on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	exportCalls    *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
	httpInFlight   prometheus.Gauge
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates and registers the collectors. Process and Go runtime
// collectors are included.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		exportCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "exports",
				Name:      "calls_total",
				Help:      "Total number of export calls.",
			},
			[]string{"export", "status"},
		),
		exportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "exports",
				Name:      "call_duration_seconds",
				Help:      "Duration of export calls.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~1.6s
			},
			[]string{"export"},
		),
		httpInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "inflight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "path"},
		),
	}

	m.Registry.MustRegister(
		m.exportCalls,
		m.exportDuration,
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m
}

// TrackOpenWallets registers a gauge reporting count().
func (m *Metrics) TrackOpenWallets(count func() int) {
	m.Registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "wallets",
			Name:      "open",
			Help:      "Number of wallets currently held in the handle table.",
		},
		func() float64 { return float64(count()) },
	))
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Middleware counts export calls by name and outcome.
func (m *Metrics) Middleware() hostfuncs.Middleware {
	return func(next hostfuncs.Func) hostfuncs.Func {
		return func(ctx context.Context, args []hostfuncs.Value) (hostfuncs.Value, error) {
			name := "unknown"
			if hc, ok := ctx.(hostfuncs.HostContext); ok {
				name = hc.FunctionName()
			}

			start := time.Now()
			res, err := next(ctx, args)
			m.exportDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			m.exportCalls.WithLabelValues(name, status(err)).Inc()
			return res, err
		}
	}
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// InstrumentHandler wraps next with HTTP metrics collection.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// canonicalPath keeps label cardinality bounded: /exports/{name} collapses
// to /exports/:name.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if parts[0] == "exports" && len(parts) > 1 {
		return "/exports/:name"
	}
	return "/" + parts[0]
}
