package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pycourse/internal/content"
	"pycourse/internal/observability/metrics"
	"pycourse/internal/repository"
	"pycourse/internal/resilience/retry"
)

// Service publishes content bundles.
// Retry defaults to retry.PublishConfig when zero.
type Service struct {
	Publisher repository.LessonPublisher
	Retry     retry.Config
}

// Report describes one publish run.
type Report struct {
	RunID    string
	Release  string
	Previous string
	Lessons  int
	Warnings []Problem
	Skipped  bool
	Duration time.Duration
}

// Publish makes b the current catalog release.
// Publishing the release that is already current is a no-op with
// Report.Skipped set. The catalog is replaced as a whole, never patched.
func (s *Service) Publish(ctx context.Context, b *content.Bundle) (Report, error) {
	start := time.Now()
	report := Report{
		RunID:   uuid.NewString(),
		Release: b.Release(),
		Lessons: b.Len(),
	}
	logger := slog.Default().With(
		slog.String("run_id", report.RunID),
		slog.String("release", report.Release))

	if s.Publisher == nil {
		return report, ErrNoPublisher
	}

	problems := Verify(b)
	if HasErrors(problems) {
		for _, p := range problems {
			logger.Error("bundle problem", slog.String("problem", p.String()))
		}
		metrics.RecordPublish(metrics.PublishFailed, 0, time.Since(start))
		return report, fmt.Errorf("publish %s: %w", report.Release, ErrInvalidBundle)
	}
	report.Warnings = problems

	cfg := s.Retry
	if cfg.MaxAttempts == 0 {
		cfg = retry.PublishConfig()
	}

	err := retry.WithBackoff(ctx, cfg, func() error {
		var err error
		report.Previous, err = s.Publisher.CurrentRelease(ctx)
		return err
	})
	if err != nil {
		metrics.RecordPublish(metrics.PublishFailed, 0, time.Since(start))
		return report, fmt.Errorf("read current release: %w", err)
	}

	if report.Previous == report.Release {
		report.Skipped = true
		report.Duration = time.Since(start)
		metrics.RecordPublish(metrics.PublishUnchanged, report.Lessons, report.Duration)
		logger.Info("catalog unchanged, skipping publish",
			slog.Int("lessons", report.Lessons))
		return report, nil
	}

	lessons := b.Lessons()
	err = retry.WithBackoff(ctx, cfg, func() error {
		return s.Publisher.ReplaceRelease(ctx, report.Release, lessons)
	})
	report.Duration = time.Since(start)
	if err != nil {
		metrics.RecordPublish(metrics.PublishFailed, 0, report.Duration)
		return report, fmt.Errorf("replace release: %w", err)
	}

	metrics.RecordPublish(metrics.PublishPublished, report.Lessons, report.Duration)
	logger.Info("catalog published",
		slog.String("previous", report.Previous),
		slog.Int("lessons", report.Lessons),
		slog.Int("warnings", len(report.Warnings)),
		slog.Duration("duration", report.Duration))
	return report, nil
}
