package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// RateLimitRejectedTotal counts requests refused with 429
	RateLimitRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limit_rejected_total",
			Help: "Total number of requests rejected by the per-client rate limiter",
		},
	)

	// ActiveConnections tracks in-flight HTTP requests
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Content metrics track the data-access core
var (
	// StoreQueryDuration measures metadata store queries by operation
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_store_query_duration_seconds",
			Help:    "Metadata store query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)

	// ListingRequestsTotal counts listings by filter shape
	ListingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_listing_requests_total",
			Help: "Total number of listing requests by filter shape",
		},
		[]string{"shape"},
	)

	// BlobFetchTotal counts blob fetches by result
	BlobFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_blob_fetch_total",
			Help: "Total number of content blob fetches",
		},
		[]string{"result"}, // result: hit, miss, error
	)

	// BlobFetchDuration measures blob fetch latency
	BlobFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_blob_fetch_duration_seconds",
			Help:    "Content blob fetch duration in seconds",
			Buckets: []float64{0.01, 0.02, 0.04, 0.08, 0.16, 0.32, 0.64, 1.28, 2.56},
		},
	)
)

// Database pool metrics
var (
	// DBConnectionsActive tracks in-use database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
