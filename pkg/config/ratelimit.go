package config

import (
	"log/slog"
	"time"
)

// RateLimitConfig configures the per-client HTTP rate limiter.
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerSecond is the sustained token refill rate per client IP.
	RequestsPerSecond float64
	// Burst is the bucket size per client IP.
	Burst int
	// MaxClients caps how many client buckets are kept in memory.
	MaxClients int
	// IdleTTL drops a client bucket after this long without requests.
	IdleTTL time.Duration
	// TrustedProxies lists CIDRs whose X-Forwarded-For header is honoured.
	TrustedProxies []string
}

// DefaultRateLimitConfig returns the limiter settings used when nothing is configured.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 10,
		Burst:             20,
		MaxClients:        10000,
		IdleTTL:           10 * time.Minute,
	}
}

// LoadRateLimitConfig reads RATELIMIT_* variables. Invalid values fall back
// to defaults with a warning.
//
// Environment variables:
//   - RATELIMIT_ENABLED (default: true)
//   - RATELIMIT_RPS (default: 10)
//   - RATELIMIT_BURST (default: 20)
//   - RATELIMIT_MAX_CLIENTS (default: 10000)
//   - RATELIMIT_IDLE_TTL (default: 10m)
//   - TRUSTED_PROXIES: comma-separated CIDRs (default: none)
func LoadRateLimitConfig() RateLimitConfig {
	def := DefaultRateLimitConfig()
	cfg := RateLimitConfig{
		Enabled:           GetEnvBool("RATELIMIT_ENABLED", def.Enabled),
		RequestsPerSecond: GetEnvFloat("RATELIMIT_RPS", def.RequestsPerSecond),
		Burst:             GetEnvInt("RATELIMIT_BURST", def.Burst),
		MaxClients:        GetEnvInt("RATELIMIT_MAX_CLIENTS", def.MaxClients),
		IdleTTL:           GetEnvDuration("RATELIMIT_IDLE_TTL", def.IdleTTL),
		TrustedProxies:    GetEnvStringList("TRUSTED_PROXIES", nil),
	}

	if cfg.RequestsPerSecond <= 0 {
		slog.Warn("RATELIMIT_RPS must be positive, using default",
			slog.Float64("value", cfg.RequestsPerSecond))
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.Burst < 1 {
		slog.Warn("RATELIMIT_BURST must be at least 1, using default",
			slog.Int("value", cfg.Burst))
		cfg.Burst = def.Burst
	}
	if cfg.MaxClients < 1 {
		cfg.MaxClients = def.MaxClients
	}
	if err := ValidatePositiveDuration(cfg.IdleTTL); err != nil {
		slog.Warn("invalid RATELIMIT_IDLE_TTL, using default", slog.Any("error", err))
		cfg.IdleTTL = def.IdleTTL
	}
	return cfg
}
