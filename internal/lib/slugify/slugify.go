// Package slugify derives URL-safe slugs from event titles.
package slugify

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Make lowercases the title, strips everything but letters, digits,
// whitespace and hyphens, then collapses separators into single hyphens.
// The result never starts or ends with a hyphen. Make is idempotent.
func Make(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
