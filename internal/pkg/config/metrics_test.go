package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics(t *testing.T) *ConfigMetrics {
	t.Helper()
	return NewConfigMetricsWith("test", promauto.With(prometheus.NewRegistry()))
}

func TestConfigMetrics_Record(t *testing.T) {
	t.Parallel()
	m := newTestMetrics(t)

	m.RecordLoadTimestamp()
	m.RecordValidationError("cron_schedule")
	m.RecordValidationError("cron_schedule")
	m.RecordFallback("timezone")
	m.SetFallbackActive(true)

	assert.Equal(t, "test", m.Component())
	assert.Greater(t, testutil.ToFloat64(m.LoadTimestamp), float64(0))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("timezone")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackActive))

	m.SetFallbackActive(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbackActive))
}

func TestObserve(t *testing.T) {
	t.Parallel()

	t.Run("no fallback", func(t *testing.T) {
		t.Parallel()
		m := newTestMetrics(t)
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		v, fell := Observe(m, logger, "health_port", Result[int]{Value: 9091})

		assert.Equal(t, 9091, v)
		assert.False(t, fell)
		assert.Empty(t, buf.String())
		assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("health_port")))
	})

	t.Run("fallback is logged and counted", func(t *testing.T) {
		t.Parallel()
		m := newTestMetrics(t)
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		v, fell := Observe(m, logger, "health_port", Result[int]{
			Value:           9091,
			Warning:         "invalid WORKER_HEALTH_PORT",
			FallbackApplied: true,
		})

		assert.Equal(t, 9091, v)
		assert.True(t, fell)
		assert.Contains(t, buf.String(), "configuration fallback applied")
		assert.Contains(t, buf.String(), "field=health_port")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("health_port")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("health_port")))
	})

	t.Run("nil metrics and logger", func(t *testing.T) {
		t.Parallel()
		v, fell := Observe[string](nil, nil, "x", Result[string]{Value: "d", FallbackApplied: true})
		assert.Equal(t, "d", v)
		assert.True(t, fell)
	})
}
