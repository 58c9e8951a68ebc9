// Package slug derives filesystem-safe names for exported items.
package slug

import (
	"strings"
	"unicode"
)

const maxLen = 60

// Make lowercases s, replaces runs of non-alphanumeric characters with a
// single dash, and bounds the result. Empty input yields "item".
func Make(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > maxLen {
		out = strings.Trim(out[:maxLen], "-")
	}
	if out == "" {
		return "item"
	}
	return out
}
