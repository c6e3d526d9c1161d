package config

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ConfigMetrics tracks configuration fallbacks for one component.
// Metric names are prefixed with the component name, e.g. "refresher_config_fallbacks_total".
type ConfigMetrics struct {
	LoadTimestamp         prometheus.Gauge
	ValidationErrorsTotal *prometheus.CounterVec
	FallbacksTotal        *prometheus.CounterVec
	FallbackActive        prometheus.Gauge
}

// NewConfigMetrics creates the metrics and registers them with reg.
func NewConfigMetrics(reg prometheus.Registerer, componentName string) *ConfigMetrics {
	m := &ConfigMetrics{
		LoadTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", componentName),
			Help: fmt.Sprintf("Unix timestamp of last %s configuration load", componentName),
		}),
		ValidationErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_validation_errors_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration validation errors", componentName),
		}, []string{"field"}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", componentName),
			Help: fmt.Sprintf("Total number of %s configuration fallback operations", componentName),
		}, []string{"field"}),
		FallbackActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", componentName),
			Help: fmt.Sprintf("1 if any %s configuration fallback is active, 0 otherwise", componentName),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.LoadTimestamp, m.ValidationErrorsTotal, m.FallbacksTotal, m.FallbackActive)
	}
	return m
}

func (m *ConfigMetrics) RecordLoadTimestamp() { m.LoadTimestamp.SetToCurrentTime() }

func (m *ConfigMetrics) RecordFallback(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

func (m *ConfigMetrics) SetFallbackActive(active bool) {
	if active {
		m.FallbackActive.Set(1)
		return
	}
	m.FallbackActive.Set(0)
}
