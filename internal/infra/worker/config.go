// Package worker holds the runtime pieces of the catalog republish worker:
// configuration, health endpoints and job metrics.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pycourse/internal/pkg/config"
	pkgconfig "pycourse/pkg/config"
)

// Config configures the republish worker.
type Config struct {
	// CronSchedule is a 5-field cron expression evaluated in Timezone.
	CronSchedule string

	// Timezone is an IANA location name.
	Timezone string

	// PublishTimeout bounds a single publish run.
	PublishTimeout time.Duration

	// HealthPort serves /health, /health/ready and /metrics.
	HealthPort int

	// RunOnStart publishes once before the first scheduled run.
	RunOnStart bool
}

// DefaultConfig returns the worker defaults: hourly at minute 5, UTC.
func DefaultConfig() Config {
	return Config{
		CronSchedule:   "5 * * * *",
		Timezone:       "UTC",
		PublishTimeout: 5 * time.Minute,
		HealthPort:     9091,
		RunOnStart:     true,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validatePublishTimeout(c.PublishTimeout); err != nil {
		errs = append(errs, fmt.Errorf("publish timeout: %w", err))
	}
	if err := validateHealthPort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	return errors.Join(errs...)
}

func validatePublishTimeout(d time.Duration) error {
	return pkgconfig.ValidateDurationRange(d, 10*time.Second, time.Hour)
}

func validateHealthPort(p int) error {
	if err := config.ValidatePort(p); err != nil {
		return err
	}
	if p < 1024 {
		return fmt.Errorf("invalid port: %d is privileged", p)
	}
	return nil
}

// LoadConfigFromEnv reads the worker configuration. Invalid values fall back
// to defaults with a warning and a metric instead of failing startup.
// metrics may be nil.
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) (*Config, error) {
	cfg := DefaultConfig()
	var cm *config.ConfigMetrics
	if metrics != nil {
		cm = metrics.ConfigMetrics
	}

	var fell, fallback bool
	cfg.CronSchedule, fell = config.Observe(cm, logger, "cron_schedule",
		config.LoadString("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule))
	fallback = fallback || fell
	cfg.Timezone, fell = config.Observe(cm, logger, "timezone",
		config.LoadString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone))
	fallback = fallback || fell
	cfg.PublishTimeout, fell = config.Observe(cm, logger, "publish_timeout",
		config.LoadDuration("PUBLISH_TIMEOUT", cfg.PublishTimeout, validatePublishTimeout))
	fallback = fallback || fell
	cfg.HealthPort, fell = config.Observe(cm, logger, "health_port",
		config.LoadInt("WORKER_HEALTH_PORT", cfg.HealthPort, validateHealthPort))
	fallback = fallback || fell
	cfg.RunOnStart = pkgconfig.GetEnvBool("WORKER_RUN_ON_START", cfg.RunOnStart)

	if cm != nil {
		cm.SetFallbackActive(fallback)
		cm.RecordLoadTimestamp()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
