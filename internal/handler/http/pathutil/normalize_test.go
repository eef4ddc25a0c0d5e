package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"lesson", "/modules/1/lessons/2", "/modules/:module/lessons/:lesson"},
		{"lesson raw", "/modules/1/lessons/2/raw", "/modules/:module/lessons/:lesson/raw"},
		{"lesson html", "/modules/10/lessons/20/html", "/modules/:module/lessons/:lesson/html"},
		{"module lessons", "/modules/3/lessons", "/modules/:module/lessons"},
		{"non numeric ids", "/modules/abc/lessons/xyz", "/modules/:module/lessons/:lesson"},
		{"trailing slash", "/modules/1/lessons/2/", "/modules/:module/lessons/:lesson"},
		{"query string", "/modules/1/lessons/2?x=1", "/modules/:module/lessons/:lesson"},
		{"modules", "/modules", "/modules"},
		{"search", "/lessons/search?q=loop", "/lessons/search"},
		{"health", "/health", "/health"},
		{"root", "/", "/"},
		{"unknown", "/unknown/path/123", "/unknown/path/123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func BenchmarkNormalizePath(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NormalizePath("/modules/12/lessons/34/html")
	}
}
