package metrics

import "time"

// Blob fetch results.
const (
	BlobHit   = "hit"
	BlobMiss  = "miss"
	BlobError = "error"
)

// ContentRecorder records content-core metrics into the global collectors.
// The zero value is ready to use.
type ContentRecorder struct{}

// ObserveQuery records the duration of a metadata store operation
// (e.g. "count_posts", "list_posts", "get_post", "list_tags").
func (ContentRecorder) ObserveQuery(operation string, d time.Duration) {
	StoreQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordListing counts one listing request by its filter shape.
func (ContentRecorder) RecordListing(shape string) {
	ListingRequestsTotal.WithLabelValues(shape).Inc()
}

// RecordBlobFetch counts one blob fetch. result is BlobHit, BlobMiss or BlobError.
func (ContentRecorder) RecordBlobFetch(result string, d time.Duration) {
	BlobFetchTotal.WithLabelValues(result).Inc()
	BlobFetchDuration.Observe(d.Seconds())
}
