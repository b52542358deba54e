// Package scoring compares submitted answers to canonical answers.
package scoring

import "strings"

// Normalize trims surrounding whitespace and lowercases the answer.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Check reports whether a submitted answer matches the canonical
// answer after normalization. Exact match only, no partial credit.
func Check(submitted, canonical string) bool {
	return Normalize(submitted) == Normalize(canonical)
}
