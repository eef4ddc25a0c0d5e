package circuitbreaker

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	"pycourse/internal/domain/entity"
	"pycourse/internal/repository"
)

// LessonRepo decorates a LessonRepository with circuit breaker protection.
// While the circuit is open every call fails with repository.ErrUnavailable
// without touching the store.
type LessonRepo struct {
	cb   *CircuitBreaker
	next repository.LessonRepository
}

// NewLessonRepo wraps next using DBConfig.
func NewLessonRepo(next repository.LessonRepository) *LessonRepo {
	return NewLessonRepoWithConfig(next, DBConfig())
}

// NewLessonRepoWithConfig wraps next using cfg.
func NewLessonRepoWithConfig(next repository.LessonRepository, cfg Config) *LessonRepo {
	return &LessonRepo{cb: New(cfg), next: next}
}

// Breaker exposes the underlying circuit breaker for health reporting.
func (r *LessonRepo) Breaker() *CircuitBreaker { return r.cb }

func (r *LessonRepo) Get(ctx context.Context, id entity.LessonID) (*entity.Lesson, error) {
	return call(r.cb, func() (*entity.Lesson, error) { return r.next.Get(ctx, id) })
}

func (r *LessonRepo) List(ctx context.Context, offset, limit int) ([]*entity.Lesson, error) {
	return call(r.cb, func() ([]*entity.Lesson, error) { return r.next.List(ctx, offset, limit) })
}

func (r *LessonRepo) Count(ctx context.Context) (int64, error) {
	return call(r.cb, func() (int64, error) { return r.next.Count(ctx) })
}

func (r *LessonRepo) ListModules(ctx context.Context) ([]entity.Module, error) {
	return call(r.cb, func() ([]entity.Module, error) { return r.next.ListModules(ctx) })
}

func (r *LessonRepo) ListByModule(ctx context.Context, module int) ([]*entity.Lesson, error) {
	return call(r.cb, func() ([]*entity.Lesson, error) { return r.next.ListByModule(ctx, module) })
}

func (r *LessonRepo) Search(ctx context.Context, keywords []string) ([]*entity.Lesson, error) {
	return call(r.cb, func() ([]*entity.Lesson, error) { return r.next.Search(ctx, keywords) })
}

func call[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %s: %v", repository.ErrUnavailable, cb.Name(), err)
		}
		return zero, err
	}
	return res.(T), nil
}
