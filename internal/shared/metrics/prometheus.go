package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Backend API metrics
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medrec_api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medrec_api_request_duration_seconds",
			Help:    "Backend API request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Read cache metrics
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medrec_cache_hits_total",
			Help: "Total number of read-cache hits",
		},
		[]string{"tag"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medrec_cache_misses_total",
			Help: "Total number of read-cache misses",
		},
		[]string{"tag"},
	)

	invalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medrec_cache_invalidations_total",
			Help: "Total number of tag invalidations published by mutations",
		},
		[]string{"tag"},
	)

	refetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medrec_subscription_refetches_total",
			Help: "Total number of subscription refetches triggered by invalidation",
		},
		[]string{"tag", "status"},
	)

	// Reports metrics
	reportBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medrec_report_batch_duration_seconds",
			Help:    "Duration of the combined reports fetch batch",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	reportBatchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medrec_report_batch_failures_total",
			Help: "Total number of report batches with at least one failed query",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest records one backend API call
func RecordAPIRequest(method, path string, status int, duration time.Duration) {
	p := normalizePath(path)
	apiRequestsTotal.WithLabelValues(method, p, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(method, p).Observe(duration.Seconds())
}

// RecordCacheHit records a read served from cache
func RecordCacheHit(tag string) {
	cacheHits.WithLabelValues(tag).Inc()
}

// RecordCacheMiss records a read that reached the backend
func RecordCacheMiss(tag string) {
	cacheMisses.WithLabelValues(tag).Inc()
}

// RecordInvalidation records an invalidation published for a tag
func RecordInvalidation(tag string) {
	invalidationsTotal.WithLabelValues(tag).Inc()
}

// RecordRefetch records a subscription refetch outcome
func RecordRefetch(tag string, ok bool) {
	status := "error"
	if ok {
		status = "ok"
	}
	refetchesTotal.WithLabelValues(tag, status).Inc()
}

// RecordReportBatch records a combined reports fetch
func RecordReportBatch(duration time.Duration, failed bool) {
	reportBatchDuration.Observe(duration.Seconds())
	if failed {
		reportBatchFailures.Inc()
	}
}

// normalizePath collapses identifier segments to keep label cardinality low
func normalizePath(path string) string {
	segments := strings.Split(path, "?")[0]
	parts := strings.Split(segments, "/")
	for i, p := range parts {
		if p != "" && isDigits(p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
