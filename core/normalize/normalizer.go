// Package normalize canonicalizes text for heading comparison.
// Curly single quotes become straight apostrophes, then the text is
// trimmed and lower-cased. The same quote replacement is the last pass
// over every formatted document.
package normalize

import "strings"

var quoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
)

// Text returns the comparison key for a piece of heading text.
func Text(s string) string {
	return strings.ToLower(strings.TrimSpace(StraightenQuotes(s)))
}

// StraightenQuotes replaces curly single quotes with the straight apostrophe.
func StraightenQuotes(s string) string {
	return quoteReplacer.Replace(s)
}
