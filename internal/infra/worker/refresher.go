// Package worker runs the scheduled statistics refresh alongside the API.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// PublishedCounter reports how many items are currently published.
type PublishedCounter interface {
	PublishedCount(ctx context.Context) (int64, error)
}

// Refresher periodically recomputes the published-post gauge.
type Refresher struct {
	Counter PublishedCounter
	Config  RefreshConfig
	Metrics *RefreshMetrics
	Logger  *slog.Logger

	cron *cron.Cron
}

// RunOnce performs a single refresh bounded by Config.Timeout.
func (r *Refresher) RunOnce(ctx context.Context) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.Config.Timeout)
	defer cancel()

	n, err := r.Counter.PublishedCount(ctx)
	r.Metrics.RecordJobDuration(time.Since(start).Seconds())
	if err != nil {
		r.Metrics.RecordJobRun("failure")
		r.Logger.Error("stats refresh failed", slog.Any("error", err))
		return fmt.Errorf("RunOnce: %w", err)
	}

	r.Metrics.RecordJobRun("success")
	r.Metrics.RecordSuccess(n)
	r.Logger.Debug("stats refreshed",
		slog.Int64("published_posts", n),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Start schedules RunOnce on Config.Schedule. The job runs with ctx, so cancelling
// ctx aborts an in-flight refresh; call Stop to halt scheduling.
func (r *Refresher) Start(ctx context.Context) error {
	loc, err := time.LoadLocation(r.Config.Timezone)
	if err != nil {
		r.Logger.Error("invalid timezone, using UTC",
			slog.String("timezone", r.Config.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(r.Config.Schedule, func() { _ = r.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("Start: AddFunc: %w", err)
	}
	r.cron = c
	c.Start()

	r.Logger.Info("stats refresher started",
		slog.String("schedule", r.Config.Schedule),
		slog.String("timezone", loc.String()))
	return nil
}

// Stop halts scheduling and waits for a running job to finish.
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}
