// Package metrics exposes Prometheus collectors for builds and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
)

// Pre-defined histogram buckets in seconds.
var (
	BuildLatencyBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0}
	HTTPLatencyBuckets  = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0}
)

// Metrics holds the collectors of one process.
type Metrics struct {
	// BuildsTotal counts builds by content type and outcome kind.
	BuildsTotal *prometheus.CounterVec
	// BuildDuration tracks validate, format and encode latency.
	BuildDuration *prometheus.HistogramVec
	// CacheErrors counts tolerated image cache failures.
	CacheErrors *prometheus.CounterVec
	// HTTPRequestDuration tracks the full request cycle by route.
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New registers the collectors on a private registry together with the Go
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		BuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrform_builds_total",
				Help: "QR builds by content type and outcome",
			},
			[]string{"type", "outcome"},
		),
		BuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qrform_build_duration_seconds",
				Help:    "QR build latency in seconds",
				Buckets: BuildLatencyBuckets,
			},
			[]string{"type"},
		),
		CacheErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrform_cache_errors_total",
				Help: "Image cache failures by operation",
			},
			[]string{"op"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds (full request/response cycle)",
				Buckets: HTTPLatencyBuckets,
			},
			[]string{"method", "route", "status_code"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.BuildsTotal,
		m.BuildDuration,
		m.CacheErrors,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, id := range content.Types() {
		m.BuildDuration.WithLabelValues(id.String())
	}
	return m
}

// ObserveBuild implements dispatcher.Observer.
func (m *Metrics) ObserveBuild(id content.TypeID, kind dispatcher.Kind, elapsed time.Duration) {
	label := "unknown"
	if id.Valid() {
		label = id.String()
	}
	m.BuildsTotal.WithLabelValues(label, kind.String()).Inc()
	m.BuildDuration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// ObserveCacheError records a tolerated cache failure.
func (m *Metrics) ObserveCacheError(op string, _ error) {
	m.CacheErrors.WithLabelValues(op).Inc()
}

// Registry exposes the underlying registry for tests and custom handlers.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware tracks request duration labelled by the matched chi route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.HTTPRequestDuration.WithLabelValues(
			r.Method,
			route,
			strconv.Itoa(wrapped.statusCode),
		).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
