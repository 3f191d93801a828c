package pix

import "fmt"

// Checksum calculates the CRC16-CCITT-FALSE variant the BR Code trailer
// requires: polynomial 0x1021, initial value 0xFFFF, MSB first, no final
// XOR.
type Checksum struct {
	value uint16
}

// NewChecksum returns an initialized calculator.
func NewChecksum() *Checksum {
	return &Checksum{value: 0xFFFF}
}

// WriteString folds the bytes of s into the running checksum.
func (c *Checksum) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		c.value ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if c.value&0x8000 != 0 {
				c.value = (c.value << 1) ^ 0x1021
			} else {
				c.value <<= 1
			}
			c.value &= 0xFFFF
		}
	}
}

// Sum16 returns the current checksum value.
func (c *Checksum) Sum16() uint16 {
	if c == nil {
		return 0
	}
	return c.value & 0xFFFF
}

// ChecksumHex computes the checksum of s and renders it as the 4 uppercase
// hex digits that terminate a BR Code payload.
func ChecksumHex(s string) string {
	c := NewChecksum()
	c.WriteString(s)
	return fmt.Sprintf("%04X", c.Sum16())
}
