package text_test

import (
	"testing"

	"pycourse/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "ASCII", input: "hello world", want: 11},
		{name: "Japanese", input: "こんにちは", want: 5},
		{name: "emoji", input: "🐍 python", want: 8},
		{name: "empty", input: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.want {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "plain", input: "Python is a language", want: 4},
		{name: "heading marker", input: "# Module 1: Introduction", want: 3},
		{name: "list markers", input: "- one\n- two\n* three", want: 3},
		{name: "code fence", input: "```python\nprint('hi')\n```", want: 2},
		{name: "whitespace only", input: " \n\t ", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountWords(tt.input); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		words, want int
	}{
		{0, 0},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		if got := text.ReadingMinutes(tt.words); got != tt.want {
			t.Errorf("ReadingMinutes(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}
