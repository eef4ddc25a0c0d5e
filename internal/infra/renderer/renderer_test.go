package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "# Module 1: Introduction to Python - Lesson 1: What is Python?\n\n" +
	"Python was created by **Guido van Rossum**.\n\n" +
	"```python\nprint(\"Hello\")\n```\n\n" +
	"| Type | Example |\n|------|---------|\n| int  | 42      |\n\n" +
	"<script>alert(1)</script>\n"

func TestHTML_Render(t *testing.T) {
	out, err := NewHTML().Render([]byte(sample))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h1 id=")
	assert.Contains(t, html, "What is Python?</h1>")
	assert.Contains(t, html, "<strong>Guido van Rossum</strong>")
	assert.Contains(t, html, `<code class="language-python">`)
	assert.Contains(t, html, "<table>")
	assert.NotContains(t, html, "<script>")
}

func TestHTML_RenderIsDeterministic(t *testing.T) {
	r := NewHTML()
	first, err := r.Render([]byte(sample))
	require.NoError(t, err)
	second, err := r.Render([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTerminal_Render(t *testing.T) {
	term, err := NewTerminal(StyleNoTTY, 120)
	require.NoError(t, err)

	out, err := term.Render(sample)
	require.NoError(t, err)
	assert.Contains(t, out, "What is Python?")
	assert.Contains(t, out, "Guido van Rossum")
}

func TestNewTerminal_UnknownStyle(t *testing.T) {
	_, err := NewTerminal("neon", 80)
	assert.Error(t, err)
}
