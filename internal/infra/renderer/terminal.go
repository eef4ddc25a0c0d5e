package renderer

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Terminal styles accepted by NewTerminal. "auto" picks dark or light from
// the terminal background; "notty" emits plain text.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// DefaultWordWrap is the column width used when none is given.
const DefaultWordWrap = 80

// Terminal renders markdown for display in a terminal.
type Terminal struct {
	r *glamour.TermRenderer
}

// NewTerminal creates a terminal renderer with the given style and wrap width.
func NewTerminal(style string, wordWrap int) (*Terminal, error) {
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}

	styleOpt := glamour.WithStandardStyle(style)
	switch style {
	case "", StyleAuto:
		styleOpt = glamour.WithAutoStyle()
	case StyleDark, StyleLight, StyleNoTTY:
	default:
		return nil, fmt.Errorf("unknown terminal style %q", style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wordWrap))
	if err != nil {
		return nil, fmt.Errorf("create terminal renderer: %w", err)
	}
	return &Terminal{r: r}, nil
}

// Render converts markdown to styled terminal text.
func (t *Terminal) Render(markdown string) (string, error) {
	out, err := t.r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render terminal: %w", err)
	}
	return out, nil
}
