package pix

import "fmt"

// maxFieldLen is the largest value an EMV-MPM 2-digit length prefix can
// describe.
const maxFieldLen = 99

// EncodeField renders a single EMV-MPM data object: the 2-digit id, the
// value length zero-padded to 2 digits, then the value itself. Values longer
// than 99 characters cannot be framed and are rejected rather than truncated.
func EncodeField(id, value string) (string, error) {
	if len(id) != 2 || !isDigits(id) {
		return "", fmt.Errorf("field id %q: must be exactly 2 digits", id)
	}
	if len(value) > maxFieldLen {
		return "", fmt.Errorf("field %s: value length %d exceeds %d", id, len(value), maxFieldLen)
	}
	return fmt.Sprintf("%s%02d%s", id, len(value), value), nil
}

// EncodeTemplate wraps already-encoded sub-fields in an outer data object.
// The outer length counts the encoded inner content, never the number of
// logical sub-fields.
func EncodeTemplate(id string, subfields ...string) (string, error) {
	var inner string
	for _, sf := range subfields {
		inner += sf
	}
	return EncodeField(id, inner)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
