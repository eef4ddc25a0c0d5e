package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pycourse/internal/content"
	"pycourse/internal/handler/http/respond"
	workerPkg "pycourse/internal/infra/worker"
	"pycourse/internal/observability/tracing"
	"pycourse/internal/usecase/publish"
)

type publisher interface {
	Publish(ctx context.Context, b *content.Bundle) (publish.Report, error)
}

// publishJob republishes the embedded bundle. A run whose release is already
// current is a success that writes nothing.
type publishJob struct {
	svc     publisher
	bundle  *content.Bundle
	timeout time.Duration
	metrics *workerPkg.Metrics
	logger  *slog.Logger
}

func (j *publishJob) Run(ctx context.Context) error {
	start := time.Now()
	j.metrics.RecordJobRun(workerPkg.StatusStarted)
	j.logger.Info("publish started", slog.String("release", j.bundle.Release()))

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	ctx, span := tracing.Tracer().Start(ctx, "worker.publish")
	defer span.End()

	report, err := j.svc.Publish(ctx, j.bundle)
	j.metrics.RecordJobDuration(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		j.logger.Error("publish failed", slog.String("error", respond.SanitizeError(err)))
		j.metrics.RecordJobRun(workerPkg.StatusFailure)
		return err
	}

	span.SetAttributes(
		attribute.String("catalog.release", report.Release),
		attribute.Bool("catalog.skipped", report.Skipped))
	j.metrics.RecordJobRun(workerPkg.StatusSuccess)
	j.metrics.RecordLastSuccess()
	if !report.Skipped {
		j.metrics.RecordLessonsWritten(report.Lessons)
	}

	j.logger.Info("publish completed",
		slog.String("run_id", report.RunID),
		slog.String("release", report.Release),
		slog.String("previous", report.Previous),
		slog.Int("lessons", report.Lessons),
		slog.Bool("skipped", report.Skipped),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// newScheduler schedules job on cfg.CronSchedule in cfg.Timezone. Runs that
// would overlap a still-running one are skipped.
func newScheduler(ctx context.Context, cfg *workerPkg.Config, job *publishJob, logger *slog.Logger) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC",
			slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	cl := workerPkg.CronLogger(logger)
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(cfg.CronSchedule, func() { _ = job.Run(ctx) }); err != nil {
		return nil, err
	}
	return c, nil
}

// runScheduler runs c until ctx is cancelled, then waits up to grace for a
// running job to finish.
func runScheduler(ctx context.Context, c *cron.Cron, health *workerPkg.HealthServer, grace time.Duration, logger *slog.Logger) error {
	c.Start()
	health.SetReady(true)
	for _, e := range c.Entries() {
		logger.Info("next publish scheduled", slog.Time("at", e.Next))
	}

	<-ctx.Done()
	health.SetReady(false)

	stopped := c.Stop()
	select {
	case <-stopped.Done():
		logger.Info("scheduler stopped")
	case <-time.After(grace):
		logger.Warn("scheduler stop timed out, abandoning running job")
	}
	return nil
}
