package pix

import "strings"

// KeyType enumerates the key kinds accepted by the PIX registry. The type is
// informational: encoding is identical for all kinds except phone, which is
// normalized to its +-prefixed E.164 registry form.
type KeyType string

const (
	KeyTypeCPF    KeyType = "cpf"
	KeyTypeCNPJ   KeyType = "cnpj"
	KeyTypeEmail  KeyType = "email"
	KeyTypePhone  KeyType = "phone"
	KeyTypeRandom KeyType = "random"
)

// Key is a raw PIX key with an optional declared type hint. The hint is not
// trusted: NormalizeKey re-derives phone-likeness from the value itself.
type Key struct {
	Type  KeyType
	Value string
}

// NormalizeKey trims the raw key and, when it plausibly denotes a phone
// number, rewrites it to the +-prefixed E.164 form the key registry expects.
// Emails, CPF/CNPJ documents and random keys pass through trimmed, tagged
// ConfidenceNotPhone.
func NormalizeKey(raw string) (string, Confidence) {
	trimmed := strings.TrimSpace(raw)
	if !looksLikePhone(trimmed) {
		return trimmed, ConfidenceNotPhone
	}
	normalized, conf := NormalizePhone(strings.TrimPrefix(trimmed, "+"))
	if normalized == "" {
		return trimmed, ConfidenceNotPhone
	}
	return "+" + normalized, conf
}

// looksLikePhone is a heuristic, not a validator: the value must be built
// from phone characters only, and either carry phone formatting, a leading
// plus, or a digit count in the E.164 ballpark. An unformatted 11-digit
// account key can still slip through; callers get the confidence tag to
// decide whether to warn.
func looksLikePhone(s string) bool {
	if s == "" {
		return false
	}
	formatted := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '(' || r == ')' || r == '-' || r == ' ':
			formatted = true
		case r == '+':
		default:
			return false
		}
	}
	if formatted || strings.HasPrefix(s, "+") {
		return true
	}
	n := len(digitsOnly(s))
	return n >= 10 && n <= 14
}
