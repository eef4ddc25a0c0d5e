// Command api serves the Python course catalog over HTTP.
//
// Lessons come from the bundle compiled into the binary (LESSON_STORE=bundle,
// the default) or from a published database catalog (LESSON_STORE=database,
// DATABASE_URL required).
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pycourse/internal/observability/logging"
	"pycourse/internal/observability/tracing"
	"pycourse/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	version := getVersion()
	startCtx, cancelStart := context.WithTimeout(context.Background(), time.Minute)
	shutdownTracing := initTracing(startCtx, logger, version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	store, err := initStore(startCtx, logger)
	if err != nil {
		cancelStart()
		logger.Error("failed to initialise lesson store", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close(logger)

	renderCache := initRenderCache(startCtx, logger)
	defer renderCache.Close(logger)
	cancelStart()

	components, err := setupServer(logger, store, renderCache, version)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, components, version)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return config.GetEnvString("VERSION", "dev")
}

func initTracing(ctx context.Context, logger *slog.Logger, version string) func(context.Context) error {
	cfg := tracing.LoadConfig("pycourse-api", version)
	shutdown, err := tracing.Init(ctx, cfg)
	if err != nil {
		logger.Error("tracing disabled", slog.Any("error", err))
		return func(context.Context) error { return nil }
	}
	logger.Info("tracing configured",
		slog.String("exporter", cfg.Exporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return shutdown
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	// Context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if components.Limiter != nil {
		go components.Limiter.Run(ctx, time.Minute)
	}

	addr := config.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
