// Package bundle serves lessons straight from the content bundle compiled
// into the binary.
package bundle

import (
	"context"

	"pycourse/internal/content"
	"pycourse/internal/domain/entity"
	"pycourse/internal/pkg/search"
	"pycourse/internal/repository"
)

// LessonRepo is a read-only LessonRepository over a content.Bundle.
// The bundle never changes, so no locking is needed.
type LessonRepo struct {
	bundle  *content.Bundle
	lessons []*entity.Lesson
	modules []entity.Module
}

// NewLessonRepo creates a repository backed by b.
func NewLessonRepo(b *content.Bundle) repository.LessonRepository {
	return &LessonRepo{
		bundle:  b,
		lessons: b.Lessons(),
		modules: b.Modules(),
	}
}

func (repo *LessonRepo) Get(ctx context.Context, id entity.LessonID) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l, ok := repo.bundle.Lookup(id)
	if !ok {
		return nil, nil
	}
	return l, nil
}

func (repo *LessonRepo) List(ctx context.Context, offset, limit int) ([]*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(repo.lessons) || limit <= 0 {
		return []*entity.Lesson{}, nil
	}
	end := offset + limit
	if end > len(repo.lessons) {
		end = len(repo.lessons)
	}
	return cloneAll(repo.lessons[offset:end]), nil
}

func (repo *LessonRepo) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(repo.lessons)), nil
}

func (repo *LessonRepo) ListModules(ctx context.Context) ([]entity.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]entity.Module, len(repo.modules))
	copy(out, repo.modules)
	return out, nil
}

func (repo *LessonRepo) ListByModule(ctx context.Context, module int) ([]*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*entity.Lesson, 0, 8)
	for _, l := range repo.lessons {
		if l.ModuleNumber == module {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (repo *LessonRepo) Search(ctx context.Context, keywords []string) ([]*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*entity.Lesson, 0, 8)
	for _, l := range repo.lessons {
		if search.MatchAll(keywords, l.Title, l.Body) {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func cloneAll(in []*entity.Lesson) []*entity.Lesson {
	out := make([]*entity.Lesson, len(in))
	for i, l := range in {
		c := *l
		out[i] = &c
	}
	return out
}
