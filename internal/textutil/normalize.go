package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize trims surrounding whitespace and case-folds the value so that
// name, seller, and bundle comparisons behave the same across storefront
// locales. Folding (rather than lowercasing) keeps comparisons stable for
// non-Latin catalog entries.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	// cases.Caser carries internal state and is not safe for reuse across
	// goroutines; construct one per call.
	return cases.Fold().String(value)
}

// NormalizeAll normalizes every value and drops entries that normalize to
// the empty string, preserving the original order of the rest.
func NormalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := Normalize(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// NonEmpty returns the first value whose trimmed form is non-empty.
func NonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
