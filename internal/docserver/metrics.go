package docserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics are the document server's Prometheus collectors. They live in a
// private registry so several servers can run in one process.
type Metrics struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	generation       prometheus.Histogram
	generationErrors prometheus.Counter
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, in a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "restoas",
			Subsystem: "docserver",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		generation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "restoas",
			Subsystem: "docserver",
			Name:      "generation_seconds",
			Help:      "Time spent generating the OpenAPI document.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		generationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "restoas",
			Subsystem: "docserver",
			Name:      "generation_errors_total",
			Help:      "Document generations that failed.",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.generation,
		m.generationErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry served on /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
