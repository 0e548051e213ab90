package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors, registered on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	ProjectionsTotal   *prometheus.CounterVec
	ProjectionDuration prometheus.Histogram
	CacheErrors        *prometheus.CounterVec
	ExportsTotal       *prometheus.CounterVec
	GenerationsTotal   *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		ProjectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizplan_projections_total",
				Help: "Projections served, by cache outcome",
			},
			[]string{"cache"},
		),
		ProjectionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bizplan_projection_duration_seconds",
				Help:    "Time spent computing a projection (cache misses only)",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		CacheErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizplan_cache_errors_total",
				Help: "Result cache failures, by operation",
			},
			[]string{"op"},
		),
		ExportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizplan_exports_total",
				Help: "Documents exported, by format",
			},
			[]string{"format"},
		),
		GenerationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizplan_assistant_generations_total",
				Help: "Narrative generations, by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizplan_http_requests_total",
				Help: "HTTP requests, by route and status code",
			},
			[]string{"route", "code"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
