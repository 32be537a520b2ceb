package geocode

import "strings"

// Normalize collapses whitespace so equivalent addresses share cache keys.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
