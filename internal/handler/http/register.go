package http

import (
	"net/http"
)

// RegisterProbes mounts /health, /ready, /live and /metrics on mux.
func RegisterProbes(mux *http.ServeMux, health *HealthHandler) {
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &ReadyHandler{Store: health.Store})
	mux.Handle("GET /live", LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
}
