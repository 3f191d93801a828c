package pix

import "testing"

func TestChecksumKnownValue(t *testing.T) {
	// Standard CRC16-CCITT-FALSE check value.
	if got := ChecksumHex("123456789"); got != "29B1" {
		t.Fatalf("ChecksumHex(123456789) = %q, want 29B1", got)
	}
}

func TestChecksumEmptyInput(t *testing.T) {
	if got := ChecksumHex(""); got != "FFFF" {
		t.Fatalf("ChecksumHex(empty) = %q, want FFFF", got)
	}
}

func TestChecksumIncrementalWrites(t *testing.T) {
	c := NewChecksum()
	c.WriteString("1234")
	c.WriteString("56789")
	if got := c.Sum16(); got != 0x29B1 {
		t.Fatalf("incremental Sum16 = %04X, want 29B1", got)
	}
}

func TestChecksumNilReceiver(t *testing.T) {
	var c *Checksum
	if got := c.Sum16(); got != 0 {
		t.Fatalf("nil Sum16 = %04X, want 0", got)
	}
}
