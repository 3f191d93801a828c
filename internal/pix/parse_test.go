package pix

import (
	"errors"
	"testing"
)

func buildTestPayload(t *testing.T) Payload {
	t.Helper()
	p, err := Build(Request{
		Key:      Key{Value: "random@key.com"},
		Merchant: Merchant{Name: "Cantina", City: "Recife"},
		Amount:   10,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func TestParsePayloadFieldOrder(t *testing.T) {
	p := buildTestPayload(t)
	fields, err := ParsePayload(p.Code)
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	wantOrder := []string{"00", "01", "26", "52", "53", "54", "58", "59", "60", "62", "63"}
	if len(fields) != len(wantOrder) {
		t.Fatalf("got %d fields, want %d", len(fields), len(wantOrder))
	}
	for i, id := range wantOrder {
		if fields[i].ID != id {
			t.Fatalf("field %d: id %s, want %s", i, fields[i].ID, id)
		}
	}
}

func TestParsePayloadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "empty", code: ""},
		{name: "short header", code: "000"},
		{name: "alpha id", code: "ab0201"},
		{name: "alpha length", code: "00xx01"},
		{name: "signed length", code: "00-1"},
		{name: "plus length", code: "00+1xx"},
		{name: "truncated value", code: "000501"},
		{name: "trailing garbage", code: "000201x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePayload(tt.code); err == nil {
				t.Fatalf("ParsePayload(%q) accepted malformed input", tt.code)
			}
		})
	}
}

func TestVerifyPayload(t *testing.T) {
	p := buildTestPayload(t)
	if err := VerifyPayload(p.Code); err != nil {
		t.Fatalf("VerifyPayload: %v", err)
	}
}

func TestVerifyPayloadDetectsCorruption(t *testing.T) {
	p := buildTestPayload(t)
	// Flip one character inside the merchant name.
	corrupted := []byte(p.Code)
	i := len(corrupted) / 2
	if corrupted[i] == 'A' {
		corrupted[i] = 'B'
	} else {
		corrupted[i] = 'A'
	}
	err := VerifyPayload(string(corrupted))
	if err == nil {
		t.Fatalf("VerifyPayload accepted corrupted payload")
	}
}

func TestVerifyPayloadChecksumMismatch(t *testing.T) {
	p := buildTestPayload(t)
	tampered := p.Code[:len(p.Code)-4] + "0000"
	if !errors.Is(VerifyPayload(tampered), ErrChecksumMismatch) {
		t.Fatalf("want ErrChecksumMismatch for tampered trailer")
	}
}

func TestVerifyPayloadMissingTrailer(t *testing.T) {
	code := "000201010211"
	if err := VerifyPayload(code); err == nil {
		t.Fatalf("VerifyPayload accepted payload without field 63")
	}
}
