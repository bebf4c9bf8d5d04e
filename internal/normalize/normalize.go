// Package normalize turns raw question text into the form used for duplicate detection.
package normalize

import (
	"regexp"
	"strings"
)

// İ lower-cases to i, so Key would turn "varİante" into a marker that
// (?i) alone does not catch.
const markerWord = `var[iİ]ante`

var (
	// (Variante), (variante 2), ( Variante 12 )
	parenVariant = regexp.MustCompile(`(?i)\(\s*` + markerWord + `\s*\d*\s*\)`)
	// "Variante 1: ", "variante-", "VARIANTE 3." at the very start only
	leadingVariant = regexp.MustCompile(`(?i)^\s*` + markerWord + `\s*\d*\s*[:.\-]?\s*`)
	// anything left over mid-sentence
	bareVariant = regexp.MustCompile(`(?i)` + markerWord + `\s*\d*`)
)

// Normalize strips variant markers and whitespace noise from raw.
// The steps run in a fixed order; changing it can leave "Variante" fragments
// or doubled spaces behind. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := parenVariant.ReplaceAllString(raw, "")
	s = leadingVariant.ReplaceAllString(s, "")
	// removing one marker can join its neighbours into a new one
	for bareVariant.MatchString(s) {
		s = bareVariant.ReplaceAllString(s, "")
	}
	return strings.Join(strings.Fields(s), " ")
}

// Key returns the canonical, case-folded comparison key for raw.
func Key(raw string) string {
	return strings.ToLower(Normalize(raw))
}
