package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for flightlens.
type MetricsRegistry struct {
	// HTTP metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Upstream provider metrics
	UpstreamRequestsTotal   prometheus.CounterVec
	UpstreamRequestDuration prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal     prometheus.CounterVec
	CacheMissesTotal   prometheus.CounterVec
	NegativeHitsTotal  prometheus.Counter

	// Business metrics
	LookupsTotal             prometheus.CounterVec
	RateLimitRejectionsTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all
// metrics registered on the default registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlens_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightlens_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightlens_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		UpstreamRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlens_upstream_requests_total",
				Help: "Total calls to the upstream flight data provider by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		UpstreamRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightlens_upstream_request_duration_seconds",
				Help:    "Upstream provider call latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 8, 10},
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlens_cache_hits_total",
				Help: "Total flight cache hits by cache name",
			},
			[]string{"cache_name"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlens_cache_misses_total",
				Help: "Total flight cache misses by cache name",
			},
			[]string{"cache_name"},
		),
		NegativeHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightlens_cache_negative_hits_total",
				Help: "Total lookups answered from the negative cache",
			},
		),

		LookupsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlens_lookups_total",
				Help: "Total flight lookups by outcome (summary, live, not_found, forbidden, error)",
			},
			[]string{"outcome"},
		),
		RateLimitRejectionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlens_rate_limit_rejections_total",
				Help: "Total requests rejected by the rate limiter by layer",
			},
			[]string{"scope"},
		),
	}
}
