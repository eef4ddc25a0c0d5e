package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pycourse/internal/domain/entity"
	"pycourse/internal/handler/http/requestid"
	"pycourse/internal/infra/cache"
	"pycourse/pkg/security/csp"
)

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func newBundleServer(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("LESSON_STORE", "bundle")
	store, err := initStore(context.Background(), discardLogger())
	require.NoError(t, err)

	components, err := setupServer(discardLogger(), store,
		&renderCache{RenderCache: cache.NewMemory(8)}, "test")
	require.NoError(t, err)
	return components.Handler
}

func TestSetupServer_ServesLesson(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "false")
	h := newBundleServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/modules/1/lessons/1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestid.RequestIDHeader))
	assert.Equal(t, csp.APIPolicy().Build(), rec.Header().Get(csp.HeaderEnforce))

	var body struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Body, "# Module 1: Introduction to Python - Lesson 1: What is Python?")
}

func TestSetupServer_NotFoundAndProbes(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "false")
	h := newBundleServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/modules/9/lessons/9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"lesson not found"}`, rec.Body.String())

	for _, path := range []string{"/health", "/ready", "/live", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestSetupServer_RateLimited(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "true")
	t.Setenv("RATELIMIT_RPS", "0.001")
	t.Setenv("RATELIMIT_BURST", "2")
	h := newBundleServer(t)

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/modules", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestInitStore_Database(t *testing.T) {
	t.Setenv("LESSON_STORE", "database")
	t.Setenv("DATABASE_URL", "sqlite:"+filepath.Join(t.TempDir(), "api.db"))
	t.Setenv("PUBLISH_ON_START", "true")

	store, err := initStore(context.Background(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(discardLogger()) })

	require.NotNil(t, store.DB)
	require.NotNil(t, store.Breaker)
	assert.False(t, store.Breaker.IsOpen())

	l, err := store.Repo.Get(context.Background(), entity.LessonID{Module: 1, Lesson: 1})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Contains(t, l.Body, "Guido van Rossum")
}

func TestInitStore_UnknownMode(t *testing.T) {
	t.Setenv("LESSON_STORE", "s3")
	_, err := initStore(context.Background(), discardLogger())
	assert.ErrorContains(t, err, `unknown LESSON_STORE "s3"`)
}

func TestInitRenderCache_FallsBackToMemory(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	rc := initRenderCache(context.Background(), discardLogger())
	assert.IsType(t, &cache.Memory{}, rc.RenderCache)
	assert.Nil(t, rc.Pinger)
	rc.Close(discardLogger())
}
