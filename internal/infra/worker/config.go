package worker

import (
	"fmt"
	"log/slog"
	"time"

	"content-api/internal/pkg/config"
)

// RefreshConfig controls the background job that refreshes catalog statistics.
//
// Environment variables:
//   - STATS_REFRESH_SCHEDULE: cron expression (default "*/15 * * * *")
//   - STATS_REFRESH_TIMEZONE: IANA timezone name (default "UTC")
//   - STATS_REFRESH_TIMEOUT: duration, 1s-5m (default 30s)
//   - STATS_REFRESH_ENABLED: boolean (default true)
type RefreshConfig struct {
	Schedule string
	Timezone string
	Timeout  time.Duration
	Enabled  bool
}

// DefaultConfig returns the refresh defaults.
func DefaultConfig() RefreshConfig {
	return RefreshConfig{
		Schedule: "*/15 * * * *",
		Timezone: "UTC",
		Timeout:  30 * time.Second,
		Enabled:  true,
	}
}

// Validate collects every invalid field into one error.
func (c *RefreshConfig) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.Timeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads RefreshConfig with per-field fallback to defaults.
// It never fails; each fallback is logged and counted on metrics.
func LoadConfigFromEnv(logger *slog.Logger, metrics *config.ConfigMetrics) RefreshConfig {
	cfg := DefaultConfig()
	fallbackApplied := false

	note := func(field string, warnings []string) {
		fallbackApplied = true
		if metrics != nil {
			metrics.RecordFallback(field)
		}
		for _, w := range warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", w))
		}
	}

	schedule := config.LoadEnvString("STATS_REFRESH_SCHEDULE", cfg.Schedule, config.ValidateCronSchedule)
	cfg.Schedule = schedule.Value
	if schedule.FallbackApplied {
		note("schedule", schedule.Warnings)
	}

	tz := config.LoadEnvString("STATS_REFRESH_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = tz.Value
	if tz.FallbackApplied {
		note("timezone", tz.Warnings)
	}

	timeout := config.LoadEnvDuration("STATS_REFRESH_TIMEOUT", cfg.Timeout, func(d time.Duration) error {
		return config.ValidateDuration(d, time.Second, 5*time.Minute)
	})
	cfg.Timeout = timeout.Value
	if timeout.FallbackApplied {
		note("timeout", timeout.Warnings)
	}

	enabled := config.LoadEnvBool("STATS_REFRESH_ENABLED", cfg.Enabled)
	cfg.Enabled = enabled.Value
	if enabled.FallbackApplied {
		note("enabled", enabled.Warnings)
	}

	if metrics != nil {
		metrics.SetFallbackActive(fallbackApplied)
		metrics.RecordLoadTimestamp()
	}
	return cfg
}
