package worker

import (
	"github.com/prometheus/client_golang/prometheus"

	"content-api/internal/pkg/config"
)

// RefreshMetrics are the refresher's job and config metrics.
type RefreshMetrics struct {
	*config.ConfigMetrics

	JobRunsTotal            *prometheus.CounterVec
	JobDurationSeconds      prometheus.Histogram
	JobLastSuccessTimestamp prometheus.Gauge
	PublishedPosts          prometheus.Gauge
}

// NewRefreshMetrics creates the metrics and registers them with reg.
func NewRefreshMetrics(reg prometheus.Registerer) *RefreshMetrics {
	m := &RefreshMetrics{
		ConfigMetrics: config.NewConfigMetrics(reg, "stats_refresh"),
		JobRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stats_refresh_job_runs_total",
			Help: "Total number of stats refresh runs by status (success/failure)",
		}, []string{"status"}),
		JobDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stats_refresh_job_duration_seconds",
			Help:    "Duration of stats refresh runs in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 30},
		}),
		JobLastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stats_refresh_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful stats refresh",
		}),
		PublishedPosts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "content_published_posts",
			Help: "Number of posts visible through the public listing",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.JobRunsTotal, m.JobDurationSeconds, m.JobLastSuccessTimestamp, m.PublishedPosts)
	}
	return m
}

func (m *RefreshMetrics) RecordJobRun(status string) { m.JobRunsTotal.WithLabelValues(status).Inc() }

func (m *RefreshMetrics) RecordJobDuration(seconds float64) { m.JobDurationSeconds.Observe(seconds) }

func (m *RefreshMetrics) RecordSuccess(published int64) {
	m.PublishedPosts.Set(float64(published))
	m.JobLastSuccessTimestamp.SetToCurrentTime()
}
