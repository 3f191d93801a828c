package report

import (
	"errors"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the pixel width used when the caller does not choose one.
const DefaultQRSize = 256

// PayloadToQR renders a BR Code payload string into a QR PNG. The payload is
// embedded verbatim; readers recover the exact string, CRC trailer included.
func PayloadToQR(code string, size int) ([]byte, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("payload is empty")
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(code, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
