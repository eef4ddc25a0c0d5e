// Package pagination provides offset pagination for list endpoints:
// query parsing, offset arithmetic and the response envelope.
package pagination

import (
	"log/slog"

	"pycourse/pkg/config"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage  int // Default page number (typically 1)
	DefaultLimit int // Default items per page
	MaxLimit     int // Maximum allowed items per page
}

// DefaultConfig returns page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads PAGINATION_DEFAULT_PAGE, PAGINATION_DEFAULT_LIMIT and
// PAGINATION_MAX_LIMIT. Inconsistent values fall back to DefaultConfig.
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultPage:  config.GetEnvInt("PAGINATION_DEFAULT_PAGE", def.DefaultPage),
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.DefaultPage < 1 || cfg.MaxLimit < 1 || cfg.DefaultLimit < 1 || cfg.DefaultLimit > cfg.MaxLimit {
		slog.Warn("invalid pagination configuration, using defaults",
			slog.Int("default_page", cfg.DefaultPage),
			slog.Int("default_limit", cfg.DefaultLimit),
			slog.Int("max_limit", cfg.MaxLimit))
		return def
	}
	return cfg
}
