package slug

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation stripped", "Hello, World! 2026", "hello-world-2026"},
		{"already lowercase", "my-slug", "my-slug"},
		{"leading and trailing spaces", "  Padded Title  ", "padded-title"},
		{"consecutive separators", "A  --  B", "a-b"},
		{"all punctuation", "!!!???", ""},
		{"empty", "", ""},
		{"unicode stripped", "Café au Lait", "caf-au-lait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	assert.Equal(t, Generate("Some Title Here"), Generate("Some Title Here"))
}

func TestNewArticleSlug(t *testing.T) {
	slugPattern := regexp.MustCompile(`^[a-z0-9-]+$`)

	t.Run("derives base from title", func(t *testing.T) {
		s := NewArticleSlug("My First Post")
		assert.True(t, strings.HasPrefix(s, "my-first-post-"))
		assert.Regexp(t, slugPattern, s)
	})

	t.Run("distinct for identical titles", func(t *testing.T) {
		a := NewArticleSlug("Same Title")
		b := NewArticleSlug("Same Title")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty title falls back", func(t *testing.T) {
		s := NewArticleSlug("")
		assert.True(t, strings.HasPrefix(s, "article-"))
		assert.Regexp(t, slugPattern, s)
	})

	t.Run("all punctuation falls back", func(t *testing.T) {
		s := NewArticleSlug("???!!!")
		assert.True(t, strings.HasPrefix(s, "article-"))
	})
}
