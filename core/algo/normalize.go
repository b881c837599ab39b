// Package algo holds the pure logbook algorithms: registration keys,
// duplicate detection, registration insight and statistics.
//
// Every function takes a caller-owned snapshot of entries and never
// mutates it.
package algo

import (
	"strings"
	"unicode"
)

// NormalizeRegistration turns free-text registration input into its
// comparison key: surrounding and interior whitespace is removed and
// letters are upper-cased. It is total and idempotent.
func NormalizeRegistration(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// SameRegistration reports whether a and b name the same aircraft.
func SameRegistration(a, b string) bool {
	return NormalizeRegistration(a) == NormalizeRegistration(b)
}
