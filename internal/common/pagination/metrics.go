package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts listing requests.
	// Labels: status (HTTP status code), page_range (page bucket: 1-10, 11-50, etc.)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_pagination_requests_total",
			Help: "Total number of paginated listing requests",
		},
		[]string{"status", "page_range"},
	)

	// DurationSeconds tracks listing duration per layer.
	// Labels: operation (handler, service)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_pagination_duration_seconds",
			Help:    "Paginated listing duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// ErrorsTotal counts listing errors by type.
	// Labels: type (validation, store)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_pagination_errors_total",
			Help: "Total number of paginated listing errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a listing request metric.
func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(
		fmt.Sprintf("%d", statusCode),
		pageRangeBucket(page),
	).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordError records an error metric.
// errorType should be one of: "validation", "store"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

func pageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
