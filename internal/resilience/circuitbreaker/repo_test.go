package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"pycourse/internal/domain/entity"
	"pycourse/internal/repository"
)

type stubLessonRepo struct {
	err   error
	calls int
}

func (s *stubLessonRepo) Get(_ context.Context, id entity.LessonID) (*entity.Lesson, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if id.Module != 1 {
		return nil, nil
	}
	return &entity.Lesson{ModuleNumber: id.Module, LessonNumber: id.Lesson}, nil
}

func (s *stubLessonRepo) List(context.Context, int, int) ([]*entity.Lesson, error) {
	s.calls++
	return nil, s.err
}

func (s *stubLessonRepo) Count(context.Context) (int64, error) {
	s.calls++
	return 3, s.err
}

func (s *stubLessonRepo) ListModules(context.Context) ([]entity.Module, error) {
	s.calls++
	return nil, s.err
}

func (s *stubLessonRepo) ListByModule(context.Context, int) ([]*entity.Lesson, error) {
	s.calls++
	return nil, s.err
}

func (s *stubLessonRepo) Search(context.Context, []string) ([]*entity.Lesson, error) {
	s.calls++
	return nil, s.err
}

func testRepoConfig() Config {
	return Config{
		Name:             "test-store",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
}

func TestLessonRepo_PassThrough(t *testing.T) {
	stub := &stubLessonRepo{}
	repo := NewLessonRepoWithConfig(stub, testRepoConfig())
	ctx := context.Background()

	l, err := repo.Get(ctx, entity.LessonID{Module: 1, Lesson: 2})
	if err != nil || l == nil || l.LessonNumber != 2 {
		t.Fatalf("Get = %v, %v", l, err)
	}

	missing, err := repo.Get(ctx, entity.LessonID{Module: 5, Lesson: 1})
	if err != nil || missing != nil {
		t.Fatalf("Get(missing) = %v, %v; want nil, nil", missing, err)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestLessonRepo_OpensAndReturnsUnavailable(t *testing.T) {
	dbErr := errors.New("connection refused")
	stub := &stubLessonRepo{err: dbErr}
	repo := NewLessonRepoWithConfig(stub, testRepoConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.List(ctx, 0, 10)
		if !errors.Is(err, dbErr) {
			t.Fatalf("attempt %d: err=%v, want %v", i+1, err, dbErr)
		}
	}
	if !repo.Breaker().IsOpen() {
		t.Fatalf("expected circuit open, got %v", repo.Breaker().State())
	}

	_, err := repo.Search(ctx, []string{"python"})
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("err=%v, want ErrUnavailable", err)
	}
	if stub.calls != 3 {
		t.Errorf("store called %d times, want 3", stub.calls)
	}
}

func TestLessonRepo_RecoversAfterTimeout(t *testing.T) {
	stub := &stubLessonRepo{err: errors.New("connection refused")}
	repo := NewLessonRepoWithConfig(stub, testRepoConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = repo.ListModules(ctx)
	}
	if !repo.Breaker().IsOpen() {
		t.Fatal("expected circuit open")
	}

	time.Sleep(80 * time.Millisecond)
	stub.err = nil

	if _, err := repo.ListByModule(ctx, 1); err != nil {
		t.Fatalf("half-open call failed: %v", err)
	}
	if repo.Breaker().IsOpen() {
		t.Errorf("expected circuit to close after success, got %v", repo.Breaker().State())
	}
}
