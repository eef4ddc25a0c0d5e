package config

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics tracks configuration loading for one component.
// Metric names are prefixed with the component name, so each component
// must create its metrics exactly once.
type ConfigMetrics struct {
	LoadTimestamp         prometheus.Gauge
	ValidationErrorsTotal *prometheus.CounterVec
	FallbacksTotal        *prometheus.CounterVec
	FallbackActive        prometheus.Gauge

	component string
}

// NewConfigMetrics registers the configuration metrics of component.
func NewConfigMetrics(component string) *ConfigMetrics {
	return NewConfigMetricsWith(component, promauto.With(prometheus.DefaultRegisterer))
}

// NewConfigMetricsWith registers the metrics through f.
func NewConfigMetricsWith(component string, f promauto.Factory) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: component + "_config_load_timestamp",
			Help: "Unix timestamp of the last " + component + " configuration load",
		}),
		ValidationErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: component + "_config_validation_errors_total",
			Help: "Total number of " + component + " configuration validation errors",
		}, []string{"field"}),
		FallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: component + "_config_fallbacks_total",
			Help: "Total number of " + component + " configuration fallbacks",
		}, []string{"field"}),
		FallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: component + "_config_fallback_active",
			Help: "1 if any " + component + " configuration fallback is active, 0 otherwise",
		}),
		component: component,
	}
}

// Component returns the metric name prefix.
func (m *ConfigMetrics) Component() string { return m.component }

func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.SetToCurrentTime()
}

func (m *ConfigMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

func (m *ConfigMetrics) SetFallbackActive(active bool) {
	if active {
		m.FallbackActive.Set(1)
		return
	}
	m.FallbackActive.Set(0)
}

// Observe logs and counts a fallback in r, then returns r.Value.
// The returned bool reports whether a fallback happened. m may be nil.
func Observe[T any](m *ConfigMetrics, logger *slog.Logger, field string, r Result[T]) (T, bool) {
	if !r.FallbackApplied {
		return r.Value, false
	}
	if logger != nil {
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", r.Warning))
	}
	if m != nil {
		m.RecordValidationError(field)
		m.RecordFallback(field)
	}
	return r.Value, true
}
