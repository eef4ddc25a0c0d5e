package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUp_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS lessons").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS releases").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_lessons_body_trgm").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = MigrateUp(context.Background(), db, Postgres)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_StopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	boom := errors.New("permission denied")
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS lessons").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS releases").
		WillReturnError(boom)

	err = MigrateUp(context.Background(), db, Postgres)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	err = MigrateUp(context.Background(), db, Dialect("oracle"))
	assert.Error(t, err)
}

func TestMigrateUp_SQLite_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, dialect, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	require.Equal(t, SQLite, dialect)

	require.NoError(t, MigrateUp(ctx, db, dialect))
	require.NoError(t, MigrateUp(ctx, db, dialect))

	var n int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('lessons', 'releases')`,
	).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, migrateDown(ctx, db))
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'lessons'`,
	).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
