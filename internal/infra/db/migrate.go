package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the idempotent DDL for each dialect, in execution order.
var schema = map[Dialect][]string{
	Postgres: {
		`CREATE TABLE IF NOT EXISTS lessons (
    module_number INTEGER     NOT NULL CHECK (module_number > 0),
    lesson_number INTEGER     NOT NULL CHECK (lesson_number > 0),
    module_title  TEXT        NOT NULL,
    title         TEXT        NOT NULL,
    heading       TEXT        NOT NULL,
    body          TEXT        NOT NULL,
    checksum      CHAR(64)    NOT NULL,
    published_at  TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (module_number, lesson_number)
)`,
		`CREATE TABLE IF NOT EXISTS releases (
    id           TEXT        PRIMARY KEY,
    lesson_count INTEGER     NOT NULL,
    published_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		// pg_trgm拡張を有効化(ILIKE検索高速化用)
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_body_trgm ON lessons USING gin (body gin_trgm_ops)`,
	},
	SQLite: {
		`CREATE TABLE IF NOT EXISTS lessons (
    module_number INTEGER   NOT NULL CHECK (module_number > 0),
    lesson_number INTEGER   NOT NULL CHECK (lesson_number > 0),
    module_title  TEXT      NOT NULL,
    title         TEXT      NOT NULL,
    heading       TEXT      NOT NULL,
    body          TEXT      NOT NULL,
    checksum      TEXT      NOT NULL,
    published_at  TIMESTAMP NOT NULL,
    PRIMARY KEY (module_number, lesson_number)
) WITHOUT ROWID`,
		`CREATE TABLE IF NOT EXISTS releases (
    id           TEXT      PRIMARY KEY,
    lesson_count INTEGER   NOT NULL,
    published_at TIMESTAMP NOT NULL
)`,
	},
}

// MigrateUp creates the lessons and releases tables for dialect.
// Running it again is a no-op.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts, ok := schema[dialect]
	if !ok {
		return fmt.Errorf("migrate: unknown dialect %q", dialect)
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s step %d: %w", dialect, i+1, err)
		}
	}
	return nil
}

// migrateDown drops the lesson tables.
func migrateDown(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS releases`,
		`DROP TABLE IF EXISTS lessons`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	}
	return nil
}
