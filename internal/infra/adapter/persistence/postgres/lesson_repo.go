// Package postgres provides PostgreSQL implementations of the lesson repository ports.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pycourse/internal/domain/entity"
	"pycourse/internal/pkg/search"
)

const lessonColumns = `module_number, lesson_number, module_title, title, heading, body, checksum, published_at`

// LessonRepo implements repository.LessonRepository and
// repository.LessonPublisher on PostgreSQL.
type LessonRepo struct{ db *sql.DB }

// NewLessonRepo creates a new PostgreSQL-backed lesson repository.
func NewLessonRepo(db *sql.DB) *LessonRepo {
	return &LessonRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLesson(s scanner) (*entity.Lesson, error) {
	var l entity.Lesson
	err := s.Scan(&l.ModuleNumber, &l.LessonNumber, &l.ModuleTitle, &l.Title,
		&l.Heading, &l.Body, &l.Checksum, &l.PublishedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (repo *LessonRepo) Get(ctx context.Context, id entity.LessonID) (*entity.Lesson, error) {
	const query = `
SELECT ` + lessonColumns + `
FROM lessons
WHERE module_number = $1 AND lesson_number = $2
LIMIT 1`

	l, err := scanLesson(repo.db.QueryRowContext(ctx, query, id.Module, id.Lesson))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return l, nil
}

func (repo *LessonRepo) List(ctx context.Context, offset, limit int) ([]*entity.Lesson, error) {
	const query = `
SELECT ` + lessonColumns + `
FROM lessons
ORDER BY module_number, lesson_number
LIMIT $1 OFFSET $2`

	return repo.query(ctx, "List", query, limit, offset)
}

func (repo *LessonRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (repo *LessonRepo) ListModules(ctx context.Context) ([]entity.Module, error) {
	const query = `
SELECT module_number, MIN(module_title), COUNT(*)
FROM lessons
GROUP BY module_number
ORDER BY module_number`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListModules: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	modules := make([]entity.Module, 0, 8)
	for rows.Next() {
		var m entity.Module
		if err := rows.Scan(&m.Number, &m.Title, &m.LessonCount); err != nil {
			return nil, fmt.Errorf("ListModules: Scan: %w", err)
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListModules: rows.Err: %w", err)
	}
	return modules, nil
}

func (repo *LessonRepo) ListByModule(ctx context.Context, module int) ([]*entity.Lesson, error) {
	const query = `
SELECT ` + lessonColumns + `
FROM lessons
WHERE module_number = $1
ORDER BY lesson_number`

	return repo.query(ctx, "ListByModule", query, module)
}

func (repo *LessonRepo) Search(ctx context.Context, keywords []string) ([]*entity.Lesson, error) {
	where, args := buildSearchClause(keywords)
	query := `
SELECT ` + lessonColumns + `
FROM lessons` + where + `
ORDER BY module_number, lesson_number`

	return repo.query(ctx, "Search", query, args...)
}

// buildSearchClause ANDs one ILIKE condition per keyword; each keyword is
// bound once and referenced for both columns.
func buildSearchClause(keywords []string) (string, []any) {
	if len(keywords) == 0 {
		return "", nil
	}
	conditions := make([]string, 0, len(keywords))
	args := make([]any, 0, len(keywords))
	for i, kw := range keywords {
		n := i + 1
		conditions = append(conditions, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR body ILIKE $%d ESCAPE '\')`, n, n))
		args = append(args, search.EscapeLike(kw))
	}
	return "\nWHERE " + strings.Join(conditions, " AND "), args
}

func (repo *LessonRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.Lesson, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	lessons := make([]*entity.Lesson, 0, 16)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return lessons, nil
}

func (repo *LessonRepo) CurrentRelease(ctx context.Context) (string, error) {
	const query = `SELECT id FROM releases LIMIT 1`

	var id string
	err := repo.db.QueryRowContext(ctx, query).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("CurrentRelease: %w", err)
	}
	return id, nil
}

func (repo *LessonRepo) ReplaceRelease(ctx context.Context, release string, lessons []*entity.Lesson) (err error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceRelease: BeginTx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The releases table holds exactly one row.
	for _, table := range []string{"lessons", "releases"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("ReplaceRelease: delete %s: %w", table, err)
		}
	}

	const insert = `
INSERT INTO lessons (` + lessonColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("ReplaceRelease: PrepareContext: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, l := range lessons {
		if _, err = stmt.ExecContext(ctx,
			l.ModuleNumber, l.LessonNumber, l.ModuleTitle, l.Title,
			l.Heading, l.Body, l.Checksum, l.PublishedAt,
		); err != nil {
			return fmt.Errorf("ReplaceRelease: insert %s: %w", l.ID(), err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO releases (id, lesson_count, published_at) VALUES ($1, $2, $3)`,
		release, len(lessons), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("ReplaceRelease: insert release: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceRelease: Commit: %w", err)
	}
	return nil
}
