// Package persistence selects the lesson store implementation for a database.
package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"pycourse/internal/infra/adapter/persistence/postgres"
	"pycourse/internal/infra/adapter/persistence/sqlite"
	"pycourse/internal/infra/db"
	"pycourse/internal/repository"
)

// LessonStore is a database-backed catalog: readable and publishable.
type LessonStore interface {
	repository.LessonRepository
	repository.LessonPublisher
}

// NewLessonStore returns the store for dialect.
func NewLessonStore(database *sql.DB, dialect db.Dialect) (LessonStore, error) {
	switch dialect {
	case db.Postgres:
		return postgres.NewLessonRepo(database), nil
	case db.SQLite:
		return sqlite.NewLessonRepo(database), nil
	default:
		return nil, fmt.Errorf("no lesson store for dialect %q", dialect)
	}
}

// Open connects to dsn, applies the schema and returns the matching store.
// The caller closes the returned *sql.DB.
func Open(ctx context.Context, dsn string) (LessonStore, *sql.DB, error) {
	database, dialect, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := db.MigrateUp(ctx, database, dialect); err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	store, err := NewLessonStore(database, dialect)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	return store, database, nil
}
