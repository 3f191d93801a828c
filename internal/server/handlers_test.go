package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"example.com/pixgate/internal/pix"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	s, err := NewServer(Options{
		Merchant: MerchantOptions{Name: "Cantina da Praca", City: "Sao Paulo"},
		Key:      "random@key.com",
		KeyType:  "email",
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return NewRouter(s)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleChargeUsesConfiguredDefaults(t *testing.T) {
	h := newTestServer(t)
	rec := postJSON(t, h, "/charge", map[string]any{"amount": 12.5})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var ch pix.Charge
	if err := json.Unmarshal(rec.Body.Bytes(), &ch); err != nil {
		t.Fatalf("decode charge: %v", err)
	}
	if ch.Key != "random@key.com" {
		t.Fatalf("charge key = %q", ch.Key)
	}
	if ch.MerchantName != "CANTINA DA PRACA" {
		t.Fatalf("merchant name = %q", ch.MerchantName)
	}
	if err := pix.VerifyPayload(ch.Code); err != nil {
		t.Fatalf("generated payload invalid: %v", err)
	}
}

func TestHandleChargeOverridesAndConfidence(t *testing.T) {
	h := newTestServer(t)
	rec := postJSON(t, h, "/charge", map[string]any{
		"key":     "9999-9999",
		"keyType": "phone",
		"amount":  1.0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var ch pix.Charge
	if err := json.Unmarshal(rec.Body.Bytes(), &ch); err != nil {
		t.Fatalf("decode charge: %v", err)
	}
	if ch.Key != "+551199999999" {
		t.Fatalf("charge key = %q", ch.Key)
	}
	if !ch.Guessed() {
		t.Fatalf("expected guessed confidence, got %s", ch.KeyConfidence)
	}
}

func TestHandleChargeValidation(t *testing.T) {
	h := newTestServer(t)
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing amount", body: map[string]any{"key": "random@key.com"}},
		{name: "negative amount", body: map[string]any{"amount": -5.0}},
		{name: "unknown key type", body: map[string]any{"key": "x", "keyType": "iban", "amount": 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/charge", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleChargeEmptyKeyNoDefault(t *testing.T) {
	s, err := NewServer(Options{})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	rec := postJSON(t, NewRouter(s), "/charge", map[string]any{"amount": 1.0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "pix key required") {
		t.Fatalf("body %q", rec.Body.String())
	}
}

func TestHandleChargeMethodNotAllowed(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/charge", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d, want 405", rec.Code)
	}
}

func TestHandleQR(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/qr?amount=10.00&size=128", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("response is not a PNG")
	}
}

func TestHandleQRBadAmount(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/qr?amount=abc", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestHandleValidate(t *testing.T) {
	h := newTestServer(t)
	charge := postJSON(t, h, "/charge", map[string]any{"amount": 3.0})
	var ch pix.Charge
	if err := json.Unmarshal(charge.Body.Bytes(), &ch); err != nil {
		t.Fatalf("decode charge: %v", err)
	}

	rec := postJSON(t, h, "/validate", map[string]string{"code": ch.Code})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp validateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Valid {
		t.Fatalf("expected valid payload, got error %q", resp.Error)
	}
	if len(resp.Fields) == 0 || resp.Fields[0].ID != "00" {
		t.Fatalf("unexpected fields: %+v", resp.Fields)
	}

	tampered := ch.Code[:len(ch.Code)-4] + "0000"
	rec = postJSON(t, h, "/validate", map[string]string{"code": tampered})
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Valid || resp.Error == "" {
		t.Fatalf("tampered payload reported valid: %+v", resp)
	}
}

func TestHandleValidateMalformedPayload(t *testing.T) {
	h := newTestServer(t)
	// Signed length prefixes must come back as a verdict, not a panic.
	for _, code := range []string{"00-1", "00+1", "000501", "xx0201"} {
		rec := postJSON(t, h, "/validate", map[string]string{"code": code})
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d for %q, body %s", rec.Code, code, rec.Body.String())
		}
		var resp validateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Valid || resp.Error == "" {
			t.Fatalf("malformed payload %q reported valid: %+v", code, resp)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}
