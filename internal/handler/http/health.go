// Package http wires the lesson API onto net/http: health probes, request
// metrics and the middleware shared by every route. Lesson endpoints live in
// the lesson subpackage.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"pycourse/internal/repository"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Pinger is satisfied by the Redis render cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Breaker reports the state of the store circuit breaker.
type Breaker interface {
	Name() string
	IsOpen() bool
}

// HealthHandler reports the state of the lesson store and its optional
// dependencies. Only the store and the database can make the service
// unhealthy; cache and breaker problems are reported as degraded.
type HealthHandler struct {
	Store   repository.LessonRepository
	DB      *sql.DB
	Cache   Pinger
	Breaker Breaker
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"lessons": h.checkLessons(ctx),
	}
	if h.DB != nil {
		checks["database"] = h.checkDatabase(ctx)
	}
	if h.Cache != nil {
		checks["cache"] = h.checkCache(ctx)
	}
	if h.Breaker != nil {
		checks["circuit_breaker"] = h.checkBreaker()
	}

	status := statusHealthy
	for _, c := range checks {
		if c.Status == statusUnhealthy {
			status = statusUnhealthy
			break
		}
		if c.Status == statusDegraded {
			status = statusDegraded
		}
	}
	code := http.StatusOK
	if status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	writeNoCacheJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkLessons(ctx context.Context) CheckStatus {
	if h.Store == nil {
		return CheckStatus{Status: statusUnhealthy, Message: "not configured"}
	}
	n, err := h.Store.Count(ctx)
	if err != nil {
		slog.Warn("health: lesson count failed", slog.Any("error", err))
		return CheckStatus{Status: statusUnhealthy, Message: "lesson store unavailable"}
	}
	if n == 0 {
		return CheckStatus{Status: statusUnhealthy, Message: "no lessons published"}
	}
	return CheckStatus{Status: statusHealthy, Details: map[string]any{"published": n}}
}

// checkDatabase pings the database and reports pool statistics.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		slog.Warn("health: database ping failed", slog.Any("error", err))
		return CheckStatus{Status: statusUnhealthy, Message: "database unreachable"}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: statusHealthy, Details: details}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

func (h *HealthHandler) checkCache(ctx context.Context) CheckStatus {
	if err := h.Cache.Ping(ctx); err != nil {
		slog.Warn("health: render cache ping failed", slog.Any("error", err))
		return CheckStatus{Status: statusDegraded, Message: "render cache unreachable"}
	}
	return CheckStatus{Status: statusHealthy}
}

func (h *HealthHandler) checkBreaker() CheckStatus {
	details := map[string]any{"name": h.Breaker.Name()}
	if h.Breaker.IsOpen() {
		return CheckStatus{Status: statusDegraded, Message: "circuit open", Details: details}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

// ReadyHandler answers readiness probes: ready once at least one lesson is
// served by the store.
type ReadyHandler struct {
	Store repository.LessonRepository
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		http.Error(w, "lesson store not configured", http.StatusServiceUnavailable)
		return
	}
	n, err := h.Store.Count(ctx)
	if err != nil {
		http.Error(w, "lesson store not ready", http.StatusServiceUnavailable)
		return
	}
	if n == 0 {
		http.Error(w, "no lessons published", http.StatusServiceUnavailable)
		return
	}
	writePlain(w, "ready")
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writePlain(w, "alive")
}

func writePlain(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Warn("probe: failed to write response", slog.Any("error", err))
	}
}

func writeNoCacheJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}
