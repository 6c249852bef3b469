// Package metrics exposes Prometheus instrumentation for the HTTP API and the
// content core.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SearchQueriesTotal counts search requests by outcome (ok, rejected, error).
	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_queries_total",
			Help: "Total number of content search queries",
		},
		[]string{"outcome"},
	)

	// SearchResults observes how many hits a search returned.
	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_results",
			Help:    "Number of hits returned per search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	// ListingQueriesTotal counts listing requests per content kind.
	ListingQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_queries_total",
			Help: "Total number of filtered content listings",
		},
		[]string{"kind"},
	)

	// RecipeScalesTotal counts recipe scaling requests.
	RecipeScalesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_scales_total",
			Help: "Total number of recipe scaling requests",
		},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

// RecordHTTPRequest records one finished request.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
