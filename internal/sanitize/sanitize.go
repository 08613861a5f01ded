// Package sanitize cleans user-supplied text before it is persisted.
package sanitize

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
	md           = goldmark.New()
)

// Strict strips all markup. Use for titles, names, emails and other plain
// fields. Passwords must never be sanitized.
func Strict(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// UGC keeps the markup bluemonday considers safe for user generated content.
// Use for post and comment bodies where markdown is allowed.
func UGC(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}

// Excerpt derives a plain-text excerpt from markdown content: markdown is
// converted, every tag stripped, whitespace collapsed, and the result
// truncated to maxLen runes on a word boundary.
func Excerpt(markdown string, maxLen int) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		// Fall back to the raw text when the markdown is unconvertible
		buf.Reset()
		buf.WriteString(markdown)
	}
	text := strictPolicy.Sanitize(buf.String())
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := maxLen
	for cut > 0 && !unicode.IsSpace(runes[cut-1]) {
		cut--
	}
	if cut == 0 {
		cut = maxLen
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}
