// Package stringutil provides common string manipulation utilities.
package stringutil

import (
	"strings"
	"unicode"
)

// NormalizeSpace collapses runs of whitespace to single spaces and trims
// leading/trailing whitespace.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldKey lowercases s and collapses whitespace. Used as a
// case/whitespace-insensitive map key (e.g. professor names).
func FoldKey(s string) string {
	return strings.ToLower(NormalizeSpace(s))
}

// ContainsWord reports whether text contains word as a whole
// whitespace/punctuation-delimited token, case-insensitively.
//
// Example:
//
//	ContainsWord("who is prof. chen teaching", "chen") returns true
//	ContainsWord("chenoweth hall", "chen") returns false
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}
	word = strings.ToLower(word)
	for _, tok := range Tokens(text) {
		if tok == word {
			return true
		}
	}
	return false
}

// Tokens splits text into lowercased tokens on any non-letter, non-digit
// rune. Apostrophes are kept so "don't" stays one token.
func Tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// Truncate shortens s to at most limit runes, appending an ellipsis marker
// when truncation occurred. Limit applies to the content, not the marker.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

// IsCapitalizedWord reports whether s starts with an uppercase letter
// followed only by letters (or letters with internal apostrophe/hyphen).
// Used by the web-fallback name heuristics.
func IsCapitalizedWord(s string) bool {
	if s == "" {
		return false
	}
	runes := []rune(s)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}
