// Package respond writes JSON and text responses and keeps internal error
// details out of response bodies.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already out
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Text writes body with an explicit content type, e.g. text/markdown.
func Text(w http.ResponseWriter, code int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		slog.Default().Warn("failed to write response body",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes {"error": err.Error()} without any filtering.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// safeFragments mark messages that are written for clients, such as
// "lesson not found" or "invalid lesson id".
var safeFragments = []string{
	"invalid",
	"not found",
	"required",
	"must be",
	"is empty",
	"too long",
	"rate limit",
}

// SafeError returns client-facing messages as-is for 4xx statuses. Anything
// else, and every 5xx, is logged with secrets masked and answered with a
// generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isSafe(msg) {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))

	public := "internal server error"
	if code == http.StatusServiceUnavailable {
		public = "service unavailable"
	}
	JSON(w, code, map[string]string{"error": public})
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, frag := range safeFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
