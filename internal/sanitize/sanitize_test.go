package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrict(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text untouched", "Hello World", "Hello World"},
		{"script stripped", `Hello <script>alert("x")</script>World`, "HelloWorld"},
		{"tags stripped", "<b>bold</b> title", "bold title"},
		{"whitespace trimmed", "  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Strict(tt.input))
		})
	}
}

func TestUGCKeepsSafeMarkup(t *testing.T) {
	out := UGC(`<em>fine</em> <script>alert("x")</script>`)
	assert.Contains(t, out, "<em>fine</em>")
	assert.NotContains(t, out, "script")
}

func TestExcerpt(t *testing.T) {
	t.Run("short content returned whole", func(t *testing.T) {
		assert.Equal(t, "A short post.", Excerpt("A short post.", 100))
	})

	t.Run("markdown stripped", func(t *testing.T) {
		out := Excerpt("# Heading\n\nSome **bold** text.", 100)
		assert.NotContains(t, out, "#")
		assert.NotContains(t, out, "**")
		assert.Contains(t, out, "Heading")
		assert.Contains(t, out, "bold")
	})

	t.Run("truncates on word boundary", func(t *testing.T) {
		out := Excerpt(strings.Repeat("word ", 100), 30)
		assert.LessOrEqual(t, len([]rune(out)), 31) // +1 for ellipsis
		assert.True(t, strings.HasSuffix(out, "…"))
		assert.NotContains(t, strings.TrimSuffix(out, "…"), "wor ")
	})
}
