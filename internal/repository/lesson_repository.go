package repository

import (
	"context"

	"pycourse/internal/domain/entity"
)

// LessonRepository is the read side of the lesson catalog.
// Implementations return (nil, nil) from Get when the pair is not published.
type LessonRepository interface {
	Get(ctx context.Context, id entity.LessonID) (*entity.Lesson, error)
	// List returns lessons ordered by (module, lesson).
	// Parameters:
	//   - offset: Number of rows to skip (calculated from page number)
	//   - limit: Maximum number of rows to return
	List(ctx context.Context, offset, limit int) ([]*entity.Lesson, error)
	// Count returns the number of published lessons.
	Count(ctx context.Context) (int64, error)
	ListModules(ctx context.Context) ([]entity.Module, error)
	// ListByModule returns the lessons of one module in order.
	// Returns an empty slice (not nil) when the module has no published lessons.
	ListByModule(ctx context.Context, module int) ([]*entity.Lesson, error)
	// Search returns lessons whose title or body contains every keyword
	// (case-insensitive), ordered by (module, lesson).
	Search(ctx context.Context, keywords []string) ([]*entity.Lesson, error)
}

// LessonPublisher is the write side used to publish a catalog release.
type LessonPublisher interface {
	// CurrentRelease returns the release id of the published catalog, or "" if
	// nothing has been published yet.
	CurrentRelease(ctx context.Context) (string, error)
	// ReplaceRelease swaps the whole catalog for lessons in a single transaction.
	// Lessons are never updated in place.
	ReplaceRelease(ctx context.Context, release string, lessons []*entity.Lesson) error
}
