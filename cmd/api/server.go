package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"pycourse/internal/common/pagination"
	"pycourse/internal/content"
	hhttp "pycourse/internal/handler/http"
	"pycourse/internal/handler/http/lesson"
	"pycourse/internal/handler/http/middleware"
	"pycourse/internal/handler/http/requestid"
	"pycourse/internal/infra/adapter/persistence"
	"pycourse/internal/infra/adapter/persistence/bundle"
	"pycourse/internal/infra/cache"
	"pycourse/internal/infra/renderer"
	"pycourse/internal/observability/tracing"
	"pycourse/internal/repository"
	"pycourse/internal/resilience/circuitbreaker"
	lessonUC "pycourse/internal/usecase/lesson"
	"pycourse/internal/usecase/publish"
	"pycourse/pkg/config"
	"pycourse/pkg/security/csp"
)

const maxRequestBody = 1 << 20

// Store modes selected by LESSON_STORE.
const (
	storeBundle   = "bundle"
	storeDatabase = "database"
)

// ServerComponents holds the built handler and the pieces that need
// background work.
type ServerComponents struct {
	Handler http.Handler
	Limiter *middleware.IPRateLimiter
}

// lessonStore is the read side the server runs on. DB and Breaker are nil
// in bundle mode.
type lessonStore struct {
	Repo    repository.LessonRepository
	DB      *sql.DB
	Breaker hhttp.Breaker
}

func (s *lessonStore) Close(logger *slog.Logger) {
	if s.DB == nil {
		return
	}
	if err := s.DB.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}

// initStore builds the lesson store selected by LESSON_STORE.
func initStore(ctx context.Context, logger *slog.Logger) (*lessonStore, error) {
	b, err := content.Default()
	if err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}

	mode := strings.ToLower(config.GetEnvString("LESSON_STORE", storeBundle))
	switch mode {
	case storeBundle:
		logger.Info("serving embedded lesson bundle",
			slog.String("release", b.Release()),
			slog.Int("lessons", b.Len()))
		return &lessonStore{Repo: bundle.NewLessonRepo(b)}, nil

	case storeDatabase:
		store, database, err := persistence.Open(ctx, os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, err
		}
		if config.GetEnvBool("PUBLISH_ON_START", true) {
			svc := &publish.Service{Publisher: store}
			if _, err := svc.Publish(ctx, b); err != nil {
				// The previous release keeps serving.
				logger.Error("startup publish failed", slog.Any("error", err))
			}
		}
		guarded := circuitbreaker.NewLessonRepo(store)
		return &lessonStore{Repo: guarded, DB: database, Breaker: guarded.Breaker()}, nil

	default:
		return nil, fmt.Errorf("unknown LESSON_STORE %q (want %s or %s)", mode, storeBundle, storeDatabase)
	}
}

// renderCache is the rendered-HTML cache plus its health probe.
// Pinger is nil for the in-memory cache.
type renderCache struct {
	cache.RenderCache
	Pinger hhttp.Pinger
	closer func() error
}

func (c *renderCache) Close(logger *slog.Logger) {
	if c.closer == nil {
		return
	}
	if err := c.closer(); err != nil {
		logger.Error("failed to close render cache", slog.Any("error", err))
	}
}

// initRenderCache uses Redis when REDIS_ADDR is set and reachable, and an
// in-memory cache otherwise.
func initRenderCache(ctx context.Context, logger *slog.Logger) *renderCache {
	addr := config.GetEnvString("REDIS_ADDR", "")
	if addr == "" {
		return &renderCache{RenderCache: cache.NewMemory(cache.DefaultMemoryEntries)}
	}

	rc, err := cache.NewRedis(ctx, cache.RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       config.GetEnvInt("REDIS_DB", 0),
		TTL:      config.GetEnvDuration("RENDER_CACHE_TTL", cache.DefaultTTL),
	})
	if err != nil {
		logger.Warn("redis unavailable, using in-memory render cache", slog.Any("error", err))
		return &renderCache{RenderCache: cache.NewMemory(cache.DefaultMemoryEntries)}
	}
	logger.Info("redis render cache enabled", slog.String("addr", addr))
	return &renderCache{RenderCache: rc, Pinger: rc, closer: rc.Close}
}

// setupServer wires routes and middleware.
func setupServer(logger *slog.Logger, store *lessonStore, rc *renderCache, version string) (*ServerComponents, error) {
	svc := &lessonUC.Service{
		Repo:     store.Repo,
		Renderer: renderer.NewHTML(),
		Cache:    rc.RenderCache,
	}

	mux := http.NewServeMux()
	lesson.Register(mux, svc, pagination.LoadFromEnv(), logger)
	hhttp.RegisterProbes(mux, &hhttp.HealthHandler{
		Store:   store.Repo,
		DB:      store.DB,
		Cache:   rc.Pinger,
		Breaker: store.Breaker,
		Version: version,
	})

	rlCfg := config.LoadRateLimitConfig()
	limiter, err := middleware.NewIPRateLimiter(rlCfg)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	logger.Info("rate limiting configured",
		slog.Bool("enabled", rlCfg.Enabled),
		slog.Float64("rps", rlCfg.RequestsPerSecond),
		slog.Int("burst", rlCfg.Burst),
		slog.Int("trusted_proxies", len(rlCfg.TrustedProxies)))

	return &ServerComponents{
		Handler: applyMiddleware(logger, mux, limiter),
		Limiter: limiter,
	}, nil
}

// applyMiddleware wraps handler, outermost first: request id, IP rate limit,
// recovery, logging, body limit, CSP, tracing, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler, limiter *middleware.IPRateLimiter) http.Handler {
	policy := csp.APIPolicy().ReportOnly(config.GetEnvBool("CSP_REPORT_ONLY", false))
	return hhttp.Chain(handler,
		requestid.Middleware,
		limiter.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(maxRequestBody),
		csp.Middleware(policy),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
	)
}
