package util

import (
	"strings"
	"unicode"
)

// SanitizeString cleans free-text input such as a catalog search term:
// control characters are dropped and surrounding space trimmed.
func SanitizeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SanitizeEnvValue strips one pair of matching single or double quotes,
// as written in .env files, and surrounding space.
func SanitizeEnvValue(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []string{`"`, `'`} {
		if len(s) >= 2 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
