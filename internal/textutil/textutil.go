// Package textutil holds the plain-text normalization helpers shared by the
// fetchers, the curation engine, and the enrichment fallback.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeWhitespace collapses runs of whitespace into single spaces and
// trims the result.
func NormalizeWhitespace(value string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(value, " "))
}

// StripHTML removes markup tags, decodes entities, and normalizes
// whitespace. Feed summaries routinely arrive as HTML fragments.
func StripHTML(value string) string {
	text := tagPattern.ReplaceAllString(value, " ")
	text = html.UnescapeString(text)
	return NormalizeWhitespace(text)
}

// SafeSentence caps text at maxChars characters, preferring to cut at a
// sentence boundary when one exists reasonably deep into the text. The
// cut counts runes, never splitting a multibyte character.
func SafeSentence(text string, maxChars int) string {
	cleaned := NormalizeWhitespace(text)
	runes := []rune(cleaned)
	if len(runes) <= maxChars {
		return cleaned
	}
	truncated := string(runes[:maxChars-1])
	if idx := strings.LastIndex(truncated, "."); idx > 80 {
		return truncated[:idx+1]
	}
	return truncated + "..."
}
