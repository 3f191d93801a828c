package pix

import (
	"errors"
	"fmt"
)

// Field is one decoded top-level data object of a BR Code payload.
type Field struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// ErrChecksumMismatch is returned when the CRC trailer does not match the
// payload it terminates.
var ErrChecksumMismatch = errors.New("crc16 mismatch")

// ParsePayload walks the TLV stream and returns the top-level fields. The
// frames must cover the input exactly: a truncated value, a non-numeric id
// or length, or trailing garbage all fail with a positioned error.
func ParsePayload(code string) ([]Field, error) {
	var fields []Field
	for i := 0; i < len(code); {
		if len(code)-i < 4 {
			return nil, fmt.Errorf("truncated field header at offset %d", i)
		}
		id := code[i : i+2]
		if !isDigits(id) {
			return nil, fmt.Errorf("malformed field id %q at offset %d", id, i)
		}
		// The prefix must be two bare digits; strconv would also accept
		// signed forms like "-1" or "+1".
		lengthDigits := code[i+2 : i+4]
		if !isDigits(lengthDigits) {
			return nil, fmt.Errorf("malformed length %q for field %s at offset %d", lengthDigits, id, i)
		}
		length := int(lengthDigits[0]-'0')*10 + int(lengthDigits[1]-'0')
		if i+4+length > len(code) {
			return nil, fmt.Errorf("field %s at offset %d: value truncated", id, i)
		}
		fields = append(fields, Field{ID: id, Value: code[i+4 : i+4+length]})
		i += 4 + length
	}
	if len(fields) == 0 {
		return nil, errors.New("empty payload")
	}
	return fields, nil
}

// VerifyPayload checks structural integrity and the CRC trailer of a BR Code
// string. It returns nil only when the payload parses cleanly, ends with a
// 4-character field 63, and the recomputed checksum matches.
func VerifyPayload(code string) error {
	fields, err := ParsePayload(code)
	if err != nil {
		return err
	}
	last := fields[len(fields)-1]
	if last.ID != idCRC {
		return fmt.Errorf("payload does not end with field %s", idCRC)
	}
	if len(last.Value) != 4 {
		return fmt.Errorf("field %s: want 4 hex digits, got %d characters", idCRC, len(last.Value))
	}
	if ChecksumHex(code[:len(code)-4]) != last.Value {
		return ErrChecksumMismatch
	}
	return nil
}
