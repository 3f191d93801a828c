package pix

import "strings"

// Confidence reports how much guessing went into a normalization result.
type Confidence string

const (
	// ConfidenceExact means the input mapped onto E.164 without guessing.
	ConfidenceExact Confidence = "EXACT"
	// ConfidenceGuessed means a default area code or mobile digit was
	// assumed; callers may want to surface a warning.
	ConfidenceGuessed Confidence = "GUESSED"
	// ConfidenceNotPhone means the value was left untouched.
	ConfidenceNotPhone Confidence = "NOT_PHONE"
)

const (
	countryCodeBrazil = "55"
	defaultAreaCode   = "11"
)

// NormalizePhone converts assorted Brazilian phone spellings into a canonical
// E.164 digit string (country code + area code + subscriber, no separators,
// no leading plus). The returned confidence is ConfidenceGuessed whenever a
// missing area code or mobile "9" had to be assumed. Inputs with no digits
// normalize to "".
func NormalizePhone(raw string) (string, Confidence) {
	digits := digitsOnly(raw)
	if digits == "" {
		return "", ConfidenceNotPhone
	}
	digits = strings.TrimPrefix(digits, "0")
	if strings.HasPrefix(digits, countryCodeBrazil) {
		// 55 + area + 7-digit subscriber: the mobile "9" is missing.
		if len(digits) == 11 {
			return digits[:4] + "9" + digits[4:], ConfidenceGuessed
		}
		return digits, ConfidenceExact
	}
	switch {
	case len(digits) == 10 || len(digits) == 11:
		return countryCodeBrazil + digits, ConfidenceExact
	case len(digits) >= 8 && len(digits) <= 9:
		return countryCodeBrazil + defaultAreaCode + digits, ConfidenceGuessed
	default:
		return countryCodeBrazil + digits, ConfidenceGuessed
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
