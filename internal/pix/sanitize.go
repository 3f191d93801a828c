package pix

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Protocol limits for the free-text merchant fields.
const (
	MaxMerchantNameLen  = 25
	MaxMerchantCityLen  = 15
	MaxTransactionIDLen = 25
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Sanitize reduces free text to an uppercase ASCII token suitable for a
// fixed-width payload field: accented characters are decomposed and their
// marks dropped, everything outside [A-Za-z0-9 ] is removed, and the result
// is trimmed and truncated to maxLen. An all-filtered input yields "".
func Sanitize(text string, maxLen int) string {
	decomposed, _, err := transform.String(stripMarks, text)
	if err != nil {
		decomposed = text
	}
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if maxLen >= 0 && len(out) > maxLen {
		out = strings.TrimSpace(out[:maxLen])
	}
	return out
}
