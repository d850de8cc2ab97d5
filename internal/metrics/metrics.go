// Package metrics provides Prometheus metrics collection for the stacking service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// MatchRunsTotal counts matcher runs by strategy and outcome.
	MatchRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacking_match_runs_total",
			Help: "Total number of stacking match runs",
		},
		[]string{"strategy", "status"},
	)

	// MatchDuration tracks how long a match run takes.
	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stacking_match_duration_seconds",
			Help:    "Stacking match duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"strategy"},
	)

	// MatchBranches observes the number of search branches explored per run.
	MatchBranches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stacking_match_branches",
			Help:    "Search branches explored per match run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	// PackagesPerShipment observes the number of packages returned per simulation.
	PackagesPerShipment = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stacking_packages_per_shipment",
			Help:    "Packages produced per shipment simulation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CatalogGroups tracks the number of stacking groups in the last loaded catalog.
	CatalogGroups = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stacking_catalog_groups",
			Help: "Number of stacking groups in the loaded catalog",
		},
	)

	// RateLimitRejectionsTotal counts requests refused with 429.
	RateLimitRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)

	// CircuitBreakerState exposes breaker state (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordMatch records metrics for a matcher run.
func RecordMatch(strategy string, duration time.Duration, branches int, status string) {
	MatchDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	MatchRunsTotal.WithLabelValues(strategy, status).Inc()
	if branches > 0 {
		MatchBranches.Observe(float64(branches))
	}
}

// RecordShipment records the package count of a simulated shipment.
func RecordShipment(packages int) {
	PackagesPerShipment.Observe(float64(packages))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// SetCatalogSize updates the catalog group gauge.
func SetCatalogSize(groups int) {
	CatalogGroups.Set(float64(groups))
}

// SetCircuitBreakerState updates the breaker state gauge.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordRateLimited counts a rejected request for the given limiter scope.
func RecordRateLimited(scope string) {
	RateLimitRejectionsTotal.WithLabelValues(scope).Inc()
}
