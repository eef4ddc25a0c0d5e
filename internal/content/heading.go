package content

import (
	"bytes"
	"errors"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var errNoHeading = errors.New("document does not open with a level-1 heading")

var parser = goldmark.New().Parser()

// extractHeading returns the text of the level-1 heading that opens a
// markdown document.
func extractHeading(src []byte) (string, error) {
	doc := parser.Parse(text.NewReader(src))

	first := doc.FirstChild()
	h, ok := first.(*ast.Heading)
	if !ok || h.Level != 1 {
		return "", errNoHeading
	}

	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return string(bytes.TrimSpace(buf.Bytes())), nil
}
