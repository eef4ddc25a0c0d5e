package lesson

import (
	"net/http"
	"strings"
)

// cacheControl lets clients reuse a lesson briefly and revalidate with the ETag.
const cacheControl = "public, max-age=60"

// setValidators writes ETag and Cache-Control and reports whether the request's
// If-None-Match already names etag, in which case 304 has been written.
func setValidators(w http.ResponseWriter, r *http.Request, etag string) bool {
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", cacheControl)
	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// matchesETag implements the weak comparison of If-None-Match.
func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	etag = strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return `"` + s + `"`
}
