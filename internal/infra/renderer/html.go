// Package renderer turns lesson markdown into HTML for the API and into
// styled ANSI text for the terminal.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// HTML renders markdown with GitHub Flavored Markdown extensions.
// Raw HTML embedded in a lesson is not passed through.
type HTML struct {
	md goldmark.Markdown
}

// NewHTML creates an HTML renderer.
func NewHTML() *HTML {
	return &HTML{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render converts src to an HTML fragment.
func (r *HTML) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(src) * 2)
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
