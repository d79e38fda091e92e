// Package metrics exposes Prometheus counters for the cipherlab server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cipherlab"

// Metrics holds the server's collectors on a private registry.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry    *prometheus.Registry
	issued      *prometheus.CounterVec
	checks      *prometheus.CounterVec
	errors      *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New registers a fresh set of collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		issued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_issued_total",
			Help:      "Artifacts handed out, by kind.",
		}, []string{"kind"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Guess checks, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed requests, by error class.",
		}, []string{"class"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter, by route.",
		}, []string{"route"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.issued,
		m.checks,
		m.errors,
		m.rateLimited,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Issued counts one artifact of kind ("key", "excerpt", "bundle").
func (m *Metrics) Issued(kind string) {
	if m == nil {
		return
	}
	m.issued.WithLabelValues(kind).Inc()
}

// Checked counts one guess check of kind ("excerpt", "password").
func (m *Metrics) Checked(kind string, matched bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if matched {
		outcome = "match"
	}
	m.checks.WithLabelValues(kind, outcome).Inc()
}

// Failed counts one failed request of class.
func (m *Metrics) Failed(class string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(class).Inc()
}

// RateLimited counts one throttled request on route.
func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}

// ObserveDuration records how long a request on route took.
func (m *Metrics) ObserveDuration(route string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(route).Observe(d.Seconds())
}

// Gatherer exposes the registry for tests and embedding.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
