// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"regexp"
	"strings"
)

// maxLength bounds derived slugs so they stay usable in URLs.
const maxLength = 50

var (
	invalidChars   = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-{2,}`)
)

// Derive maps a title to a URL-safe slug: lower-cased, stripped of anything
// outside [a-z0-9\s-], whitespace and hyphen runs collapsed to single
// hyphens, trimmed, and truncated to 50 characters. Pure and deterministic;
// an empty or fully-invalid title yields an empty slug, which callers must
// treat as "no slug available" rather than an error.
func Derive(title string) string {
	s := strings.ToLower(title)
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxLength {
		s = s[:maxLength]
		s = strings.TrimRight(s, "-")
	}

	return s
}
