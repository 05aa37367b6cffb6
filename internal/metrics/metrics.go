// Package metrics exposes Prometheus collectors for outbound source calls
// and the result caches.
package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for SourceRequests.
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
)

var (
	sourceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipefinder_source_requests_total",
			Help: "Requests made to external recipe sources",
		},
		[]string{"source", "operation", "outcome"},
	)
	sourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipefinder_source_request_duration_seconds",
			Help:    "Latency of requests made to external recipe sources",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "operation"},
	)
	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipefinder_cache_lookups_total",
			Help: "Result cache lookups by cache and result",
		},
		[]string{"cache", "result"},
	)
	searchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipefinder_search_results",
			Help:    "Number of items returned by a search",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 80},
		},
	)
)

// ObserveSourceRequest records one outbound call.
func ObserveSourceRequest(source, operation, outcome string, elapsed time.Duration) {
	sourceRequests.WithLabelValues(source, operation, outcome).Inc()
	sourceDuration.WithLabelValues(source, operation).Observe(elapsed.Seconds())
}

// ObserveCacheLookup records a cache hit or miss.
func ObserveCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(cache, result).Inc()
}

// ObserveSearchResults records the size of a search result list.
func ObserveSearchResults(n int) {
	searchResults.Observe(float64(n))
}

// Handler serves the default Prometheus registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
