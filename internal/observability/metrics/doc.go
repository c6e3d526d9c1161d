// Package metrics provides the Prometheus collectors for the content API.
//
// Collectors are registered with the default registry through promauto and
// exposed on /metrics. Services do not touch the globals directly; they take a
// recorder, and ContentRecorder is the Prometheus-backed one.
//
//	svc := &post.Service{Metrics: metrics.ContentRecorder{}}
package metrics
