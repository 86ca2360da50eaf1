package domain

import (
	"regexp"
	"strings"
)

// spaceClass matches the same whitespace as an ECMAScript \s, including
// no-break and ideographic spaces.
const spaceClass = `\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}`

var (
	nonSlugChars   = regexp.MustCompile(`[^a-zA-Z0-9` + spaceClass + `]`)
	whitespaceRuns = regexp.MustCompile(`[` + spaceClass + `]+`)
)

// CreateSlug drops everything but ASCII letters, digits and Unicode whitespace,
// lower-cases the rest and turns each whitespace run into one hyphen.
// Leading and trailing runs become hyphens too; the result is not unique.
func CreateSlug(title string) string {
	clean := strings.ToLower(nonSlugChars.ReplaceAllString(title, ""))
	return whitespaceRuns.ReplaceAllString(clean, "-")
}
