// Package metrics registers the service's Prometheus collectors on the
// default registry. They are exposed by promhttp on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diary_http_requests_total",
			Help: "HTTP requests by route template, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diary_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// AggregationDuration covers fetch plus aggregation of a stats use case.
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diary_aggregation_duration_seconds",
			Help:    "Duration of stats use cases in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	AggregatedRecords = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diary_aggregated_records",
			Help:    "Number of records folded by one aggregation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"operation"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diary_stats_cache_requests_total",
			Help: "Stats memo lookups by cache and result (hit or miss)",
		},
		[]string{"cache", "result"},
	)

	RecordsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diary_records_created_total",
			Help: "Diary records persisted, by kind",
		},
		[]string{"kind"},
	)

	SeasonsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diary_seasons_closed_total",
			Help: "Season summaries written, by scope (single owner or bulk)",
		},
		[]string{"scope"},
	)
)

// ObserveAggregation records the duration and input size of an operation.
func ObserveAggregation(operation string, start time.Time, records int) {
	AggregationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	AggregatedRecords.WithLabelValues(operation).Observe(float64(records))
}

// ObserveHTTP records a finished request.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// CacheResult counts a memo lookup.
func CacheResult(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequests.WithLabelValues(cache, result).Inc()
}
