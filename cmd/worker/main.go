// Command worker keeps the database catalog in step with the lesson bundle
// compiled into the binary, republishing it on a cron schedule.
//
// Environment:
//
//	DATABASE_URL         postgres://... or sqlite:<path> (required)
//	CRON_SCHEDULE        5-field cron expression (default "5 * * * *")
//	WORKER_TIMEZONE      IANA zone for the schedule (default UTC)
//	PUBLISH_TIMEOUT      bound for one run (default 5m)
//	WORKER_HEALTH_PORT   /health, /health/ready, /metrics (default 9091)
//	WORKER_RUN_ON_START  publish once at startup (default true)
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"pycourse/internal/content"
	"pycourse/internal/infra/adapter/persistence"
	workerPkg "pycourse/internal/infra/worker"
	"pycourse/internal/observability/logging"
	"pycourse/internal/observability/tracing"
	"pycourse/internal/usecase/publish"
	"pycourse/pkg/config"
)

const stopGrace = 30 * time.Second

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("worker failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func run(ctx context.Context, logger *slog.Logger) error {
	metrics := workerPkg.NewMetrics()
	cfg, err := workerPkg.LoadConfigFromEnv(logger, metrics)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	version := config.GetEnvString("VERSION", "dev")
	shutdownTracing, err := tracing.Init(ctx, tracing.LoadConfig("pycourse-worker", version))
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	bundle, err := content.Default()
	if err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}

	store, database, err := persistence.Open(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	job := &publishJob{
		svc:     &publish.Service{Publisher: store},
		bundle:  bundle,
		timeout: cfg.PublishTimeout,
		metrics: metrics,
		logger:  logger,
	}

	if cfg.RunOnStart {
		// A failed first run is retried on schedule.
		_ = job.Run(ctx)
	}

	scheduler, err := newScheduler(ctx, cfg, job, logger)
	if err != nil {
		return fmt.Errorf("schedule %q: %w", cfg.CronSchedule, err)
	}

	health := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)

	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.String("release", bundle.Release()),
		slog.Int("lessons", bundle.Len()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return health.Start(gctx) })
	g.Go(func() error { return runScheduler(gctx, scheduler, health, stopGrace, logger) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
