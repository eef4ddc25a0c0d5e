package lesson

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"pycourse/internal/common/pagination"
	"pycourse/internal/domain/entity"
	"pycourse/internal/infra/cache"
	"pycourse/internal/observability/metrics"
	"pycourse/internal/observability/tracing"
	"pycourse/internal/pkg/search"
	"pycourse/internal/repository"
)

// Renderer converts lesson markdown to another representation.
type Renderer interface {
	Render(src []byte) ([]byte, error)
}

// Service provides the lesson read use cases.
// Renderer is only needed for RenderHTML; Cache is optional.
type Service struct {
	Repo     repository.LessonRepository
	Renderer Renderer
	Cache    cache.RenderCache

	renders singleflight.Group
}

// PaginatedResult represents the result of a paginated query.
type PaginatedResult struct {
	Data       []*entity.Lesson
	Pagination pagination.Metadata
}

// Get retrieves a published lesson by its identifier pair.
// Returns ErrInvalidLessonID if either number is not positive.
// Returns ErrLessonNotFound if the pair is not published.
func (s *Service) Get(ctx context.Context, id entity.LessonID) (*entity.Lesson, error) {
	if err := id.Validate(); err != nil {
		metrics.RecordLessonLookup(metrics.LookupInvalid)
		return nil, ErrInvalidLessonID
	}

	l, err := s.Repo.Get(ctx, id)
	if err != nil {
		metrics.RecordLessonLookup(metrics.LookupError)
		return nil, fmt.Errorf("get lesson %s: %w", id, err)
	}
	if l == nil {
		metrics.RecordLessonLookup(metrics.LookupNotFound)
		return nil, ErrLessonNotFound
	}
	metrics.RecordLessonLookup(metrics.LookupFound)
	return l, nil
}

// Body returns the markdown text of lesson (module, lesson).
func (s *Service) Body(ctx context.Context, module, lesson int) (string, error) {
	l, err := s.Get(ctx, entity.LessonID{Module: module, Lesson: lesson})
	if err != nil {
		return "", err
	}
	return l.Body, nil
}

// List returns one page of lessons in (module, lesson) order.
func (s *Service) List(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count lessons: %w", err)
	}

	lessons, err := s.Repo.List(ctx, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	return &PaginatedResult{
		Data: lessons,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// Modules returns the module summaries of the catalog.
func (s *Service) Modules(ctx context.Context) ([]entity.Module, error) {
	modules, err := s.Repo.ListModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// ModuleLessons returns the lessons of one module in order.
// Returns ErrModuleNotFound if the module has no published lessons.
func (s *Service) ModuleLessons(ctx context.Context, module int) ([]*entity.Lesson, error) {
	if module <= 0 {
		return nil, ErrInvalidLessonID
	}
	lessons, err := s.Repo.ListByModule(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("list module %d: %w", module, err)
	}
	if len(lessons) == 0 {
		return nil, ErrModuleNotFound
	}
	return lessons, nil
}

// Search finds lessons whose title or body contains every whitespace
// separated keyword of query, ignoring case.
// Returns ErrEmptyQuery if query has no keyword.
func (s *Service) Search(ctx context.Context, query string) ([]*entity.Lesson, error) {
	keywords := search.ParseKeywords(query)
	if len(keywords) == 0 {
		return nil, ErrEmptyQuery
	}
	metrics.RecordLessonSearch()

	lessons, err := s.Repo.Search(ctx, keywords)
	if err != nil {
		return nil, fmt.Errorf("search lessons: %w", err)
	}
	return lessons, nil
}

// RenderHTML returns the lesson rendered to HTML together with the lesson.
// Output is cached by body checksum; cache failures are logged and treated
// as misses. Concurrent renders of the same checksum are collapsed into one.
func (s *Service) RenderHTML(ctx context.Context, id entity.LessonID) ([]byte, *entity.Lesson, error) {
	ctx, span := tracing.Tracer().Start(ctx, "lesson.RenderHTML",
		trace.WithAttributes(attribute.String("lesson.id", id.String())))
	defer span.End()

	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.Renderer == nil {
		return nil, nil, fmt.Errorf("render lesson %s: no renderer configured", id)
	}

	key := "html:" + l.Checksum
	if out, ok := s.cacheGet(ctx, key); ok {
		span.SetAttributes(attribute.Bool("render.cache_hit", true))
		return out, l, nil
	}

	v, err, _ := s.renders.Do(key, func() (interface{}, error) {
		start := time.Now()
		out, err := s.Renderer.Render([]byte(l.Body))
		if err != nil {
			return nil, err
		}
		metrics.RecordRenderDuration(time.Since(start))
		s.cacheSet(ctx, key, out)
		return out, nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, fmt.Errorf("render lesson %s: %w", id, err)
	}
	return v.([]byte), l, nil
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.Cache == nil {
		return nil, false
	}
	out, ok, err := s.Cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordRenderCache("error")
		slog.WarnContext(ctx, "render cache get failed",
			slog.String("key", key),
			slog.Any("error", err))
		return nil, false
	case !ok:
		metrics.RecordRenderCache("miss")
		return nil, false
	default:
		metrics.RecordRenderCache("hit")
		return out, true
	}
}

func (s *Service) cacheSet(ctx context.Context, key string, val []byte) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, key, val); err != nil {
		metrics.RecordRenderCache("error")
		slog.WarnContext(ctx, "render cache set failed",
			slog.String("key", key),
			slog.Any("error", err))
	}
}
