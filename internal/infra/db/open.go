// Package db opens the lesson database and creates its schema.
// PostgreSQL (pgx) and SQLite (modernc.org/sqlite) are supported; the driver
// is chosen from the DATABASE_URL.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"pycourse/internal/resilience/retry"
	"pycourse/pkg/config"
)

// Dialect identifies the SQL flavour of a connection.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ErrNoDatabaseURL is returned by Open when DATABASE_URL is empty.
var ErrNoDatabaseURL = errors.New("DATABASE_URL not set")

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// ParseDSN maps a DATABASE_URL to a dialect, a database/sql driver name and
// the data source string handed to that driver.
//
//	postgres://... or postgresql://...  -> pgx
//	sqlite:<path>, file:<path>, <path>  -> sqlite
func ParseDSN(dsn string) (Dialect, string, string, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", "", "", ErrNoDatabaseURL
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return Postgres, "pgx", dsn, nil
	case strings.HasPrefix(dsn, "sqlite:"):
		path := strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite:"), "//")
		if path == "" {
			return "", "", "", fmt.Errorf("sqlite DATABASE_URL has no path: %q", dsn)
		}
		return SQLite, "sqlite", withBusyTimeout(path), nil
	case strings.HasPrefix(dsn, "file:"):
		return SQLite, "sqlite", withBusyTimeout(dsn), nil
	case strings.Contains(dsn, "://"):
		return "", "", "", fmt.Errorf("unsupported DATABASE_URL scheme: %q", dsn)
	default:
		return SQLite, "sqlite", withBusyTimeout(dsn), nil
	}
}

// withBusyTimeout makes SQLite wait for a held write lock instead of failing
// immediately with SQLITE_BUSY.
func withBusyTimeout(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "_pragma=busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=" + url.QueryEscape("busy_timeout(5000)")
}

// Open creates and configures a database connection pool for dsn and
// verifies it with a ping, retrying transient failures.
func Open(ctx context.Context, dsn string) (*sql.DB, Dialect, error) {
	dialect, driver, source, err := ParseDSN(dsn)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", dialect, err)
	}

	cfg := getConnectionConfigFromEnv()
	if dialect == SQLite {
		// SQLite allows a single writer.
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("dialect", string(dialect)),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	err = retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", dialect, err)
	}

	slog.Info("database connection established successfully",
		slog.String("dialect", string(dialect)))
	return db, dialect, nil
}

// getConnectionConfigFromEnv reads connection pool configuration from environment variables.
// Falls back to default values if not set or not positive.
func getConnectionConfigFromEnv() ConnectionConfig {
	def := DefaultConnectionConfig()
	cfg := ConnectionConfig{
		MaxOpenConns:    config.GetEnvInt("DB_MAX_OPEN_CONNS", def.MaxOpenConns),
		MaxIdleConns:    config.GetEnvInt("DB_MAX_IDLE_CONNS", def.MaxIdleConns),
		ConnMaxLifetime: config.GetEnvDuration("DB_CONN_MAX_LIFETIME", def.ConnMaxLifetime),
		ConnMaxIdleTime: config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", def.ConnMaxIdleTime),
	}

	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = def.MaxOpenConns
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = def.MaxIdleConns
	}
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = def.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime <= 0 {
		cfg.ConnMaxIdleTime = def.ConnMaxIdleTime
	}
	return cfg
}
