package post

import "time"

// MetricsRecorder receives the service's measurements.
// metrics.ContentRecorder is the Prometheus implementation.
type MetricsRecorder interface {
	ObserveQuery(operation string, d time.Duration)
	RecordListing(shape string)
	RecordBlobFetch(result string, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObserveQuery(string, time.Duration)    {}
func (noopMetrics) RecordListing(string)                  {}
func (noopMetrics) RecordBlobFetch(string, time.Duration) {}

// Blob fetch results passed to RecordBlobFetch.
const (
	blobHit   = "hit"
	blobMiss  = "miss"
	blobError = "error"
)
