// Package search parses free-text queries into keywords and provides the
// matching helpers shared by the lesson repositories.
package search

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxKeywords caps how many keywords a single query may carry.
	MaxKeywords = 10
	// MaxKeywordLength is the longest accepted keyword, in runes.
	MaxKeywordLength = 100
)

// ParseKeywords splits a query on whitespace, drops duplicates
// (case-insensitively) and truncates to MaxKeywords.
// Over-long keywords are cut to MaxKeywordLength runes.
func ParseKeywords(query string) []string {
	fields := strings.Fields(query)
	keywords := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))

	for _, f := range fields {
		if utf8.RuneCountInString(f) > MaxKeywordLength {
			f = string([]rune(f)[:MaxKeywordLength])
		}
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		keywords = append(keywords, f)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE wildcards in keyword and wraps it in %...%.
// Queries must declare ESCAPE '\'.
func EscapeLike(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// MatchAll reports whether every keyword occurs, case-insensitively, in at
// least one of fields.
func MatchAll(keywords []string, fields ...string) bool {
	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
	}
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		found := false
		for _, f := range lowered {
			if strings.Contains(f, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
