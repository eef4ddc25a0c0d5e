// Package csp builds Content-Security-Policy headers.
package csp

import (
	"net/http"
	"strings"
)

const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the serialisation order so equal policies produce
// byte-identical headers.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// Policy is a Content-Security-Policy under construction.
// It is not safe for concurrent mutation; build it once at startup.
//
//	p := csp.New().DefaultSrc("'none'").StyleSrc("'self'")
//	p.Build() // "default-src 'none'; style-src 'self'"
type Policy struct {
	directives map[string][]string
	reportOnly bool
}

func New() *Policy {
	return &Policy{directives: make(map[string][]string)}
}

// Set replaces the sources of directive. Unknown directives are ignored by Build.
func (p *Policy) Set(directive string, sources ...string) *Policy {
	p.directives[directive] = sources
	return p
}

func (p *Policy) DefaultSrc(sources ...string) *Policy { return p.Set("default-src", sources...) }
func (p *Policy) ScriptSrc(sources ...string) *Policy  { return p.Set("script-src", sources...) }
func (p *Policy) StyleSrc(sources ...string) *Policy   { return p.Set("style-src", sources...) }
func (p *Policy) ImgSrc(sources ...string) *Policy     { return p.Set("img-src", sources...) }
func (p *Policy) FontSrc(sources ...string) *Policy    { return p.Set("font-src", sources...) }
func (p *Policy) ConnectSrc(sources ...string) *Policy { return p.Set("connect-src", sources...) }
func (p *Policy) FrameAncestors(sources ...string) *Policy {
	return p.Set("frame-ancestors", sources...)
}
func (p *Policy) FormAction(sources ...string) *Policy { return p.Set("form-action", sources...) }
func (p *Policy) BaseURI(sources ...string) *Policy    { return p.Set("base-uri", sources...) }
func (p *Policy) ObjectSrc(sources ...string) *Policy  { return p.Set("object-src", sources...) }

// ReportURI sets where violations are reported. An empty uri removes it.
func (p *Policy) ReportURI(uri string) *Policy {
	if uri == "" {
		delete(p.directives, "report-uri")
		return p
	}
	return p.Set("report-uri", uri)
}

// ReportOnly switches the policy to the report-only header.
func (p *Policy) ReportOnly(enabled bool) *Policy {
	p.reportOnly = enabled
	return p
}

// Build serialises the policy.
func (p *Policy) Build() string {
	parts := make([]string, 0, len(p.directives))
	for _, d := range directiveOrder {
		if sources := p.directives[d]; len(sources) > 0 {
			parts = append(parts, d+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the enforcing or report-only header name.
func (p *Policy) HeaderName() string {
	if p.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// Apply sets the policy on w, replacing any policy set earlier.
func (p *Policy) Apply(w http.ResponseWriter) {
	h := w.Header()
	h.Del(HeaderEnforce)
	h.Del(HeaderReportOnly)
	if v := p.Build(); v != "" {
		h.Set(p.HeaderName(), v)
	}
}

// Middleware applies p to every response. Handlers may call Apply with a
// different policy before writing.
func Middleware(p *Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p.Apply(w)
			next.ServeHTTP(w, r)
		})
	}
}

// APIPolicy suits JSON and plain-text responses: nothing may load.
func APIPolicy() *Policy {
	return New().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}

// LessonHTMLPolicy suits rendered lesson pages: same-origin styles and
// images only, no scripts, no framing.
func LessonHTMLPolicy() *Policy {
	return New().
		DefaultSrc("'none'").
		StyleSrc("'self'").
		ImgSrc("'self'", "data:").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'").
		ObjectSrc("'none'")
}
