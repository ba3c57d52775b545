package common

import (
	"strings"
	"unicode/utf8"
)

// NormalizeText lower-cases and trims a surface form for use as a merge key.
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Truncate cuts text to at most max bytes without splitting a UTF-8 sequence.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
