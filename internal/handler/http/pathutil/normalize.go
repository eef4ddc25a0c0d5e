package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a concrete request path onto a route template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns is ordered from most to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/modules/[^/]+/lessons/[^/]+/raw$`), Template: "/modules/:module/lessons/:lesson/raw"},
	{Pattern: regexp.MustCompile(`^/modules/[^/]+/lessons/[^/]+/html$`), Template: "/modules/:module/lessons/:lesson/html"},
	{Pattern: regexp.MustCompile(`^/modules/[^/]+/lessons/[^/]+$`), Template: "/modules/:module/lessons/:lesson"},
	{Pattern: regexp.MustCompile(`^/modules/[^/]+/lessons$`), Template: "/modules/:module/lessons"},
}

// NormalizePath turns lesson paths into route templates so metrics and span
// names keep a bounded label set. Query strings and a trailing slash are
// dropped; paths that match no route are returned unchanged.
//
//	NormalizePath("/modules/1/lessons/2")      // "/modules/:module/lessons/:lesson"
//	NormalizePath("/modules/1/lessons/2/raw")  // "/modules/:module/lessons/:lesson/raw"
//	NormalizePath("/lessons/search?q=loop")    // "/lessons/search"
//	NormalizePath("/health")                   // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
