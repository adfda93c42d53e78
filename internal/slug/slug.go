// Package slug provides URL-friendly slug generation for article titles.
package slug

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace collapses runs of whitespace into one separator.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

const suffixLen = 8

// Generate creates a URL-friendly token from the given string.
// Example: "Hello, World! 2026" -> "hello-world-2026".
// The normalization is deterministic; an input with no usable characters
// yields an empty string.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// NewArticleSlug derives a slug from title and appends a short random
// suffix so collisions are practically impossible without a uniqueness
// round-trip to storage. Titles that normalize to nothing (empty or all
// punctuation) fall back to a generated token; the result is always
// non-empty, lowercase, and URL-safe.
func NewArticleSlug(title string) string {
	base := Generate(title)
	if base == "" {
		base = "article"
	}
	return base + "-" + randomSuffix()
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
}
