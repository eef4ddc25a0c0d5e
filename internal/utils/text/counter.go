// Package text provides small measurements over lesson text.
package text

import (
	"strings"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed used by ReadingMinutes.
const WordsPerMinute = 200

// CountRunes returns the number of characters (not bytes) in s.
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// CountWords returns the number of whitespace-separated words in s.
// Markdown markers such as "#" or "-" standing alone are not counted.
func CountWords(s string) int {
	n := 0
	for _, f := range strings.Fields(s) {
		if strings.Trim(f, "#*-_>`|") != "" {
			n++
		}
	}
	return n
}

// ReadingMinutes estimates reading time for words, rounded up.
// Any non-empty text takes at least one minute.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
