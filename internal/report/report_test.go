package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"example.com/pixgate/internal/pix"
)

func testCharge(t *testing.T) pix.Charge {
	t.Helper()
	ch, err := pix.NewCharge(pix.Request{
		Key:           pix.Key{Type: pix.KeyTypePhone, Value: "(61) 99913-3181"},
		Merchant:      pix.Merchant{Name: "Hamburgueria Ñ", City: "Brasília"},
		Amount:        42.9,
		TransactionID: "PEDIDO42",
	})
	if err != nil {
		t.Fatalf("NewCharge: %v", err)
	}
	return ch
}

func TestPayloadToQR(t *testing.T) {
	ch := testCharge(t)
	png, err := PayloadToQR(ch.Code, 0)
	if err != nil {
		t.Fatalf("PayloadToQR: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("PayloadToQR did not produce a PNG (first bytes %x)", png[:8])
	}
}

func TestPayloadToQREmpty(t *testing.T) {
	if _, err := PayloadToQR("   ", 128); err == nil {
		t.Fatalf("PayloadToQR accepted empty payload")
	}
}

func TestChargeJSONRoundTrip(t *testing.T) {
	ch := testCharge(t)
	out := filepath.Join(t.TempDir(), "charge.json")
	if err := SaveChargeJSON(ch, out); err != nil {
		t.Fatalf("SaveChargeJSON: %v", err)
	}
	loaded, err := LoadChargeJSON(out)
	if err != nil {
		t.Fatalf("LoadChargeJSON: %v", err)
	}
	if loaded.Code != ch.Code || loaded.Key != ch.Key || loaded.MerchantName != ch.MerchantName {
		t.Fatalf("round trip mismatch: %+v vs %+v", loaded, ch)
	}
	if err := pix.VerifyPayload(loaded.Code); err != nil {
		t.Fatalf("loaded payload fails verification: %v", err)
	}
}

func TestSaveChargePDF(t *testing.T) {
	ch := testCharge(t)
	out := filepath.Join(t.TempDir(), "receipt.pdf")
	if err := SaveChargePDF(ch, LangPortuguese, out); err != nil {
		t.Fatalf("SaveChargePDF: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat receipt: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("receipt PDF is empty")
	}
}

func TestTranslatorFallback(t *testing.T) {
	tr := NewTranslator(LangPortuguese)
	if got := tr.T("receipt.title"); got != "Recibo de Cobranca PIX" {
		t.Fatalf("pt title = %q", got)
	}
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key = %q", got)
	}
}

func TestParseLanguage(t *testing.T) {
	if lang, err := ParseLanguage("pt-BR"); err != nil || lang != LangPortuguese {
		t.Fatalf("ParseLanguage(pt-BR) = %s, %v", lang, err)
	}
	if lang, err := ParseLanguage(""); err != nil || lang != LangEnglish {
		t.Fatalf("ParseLanguage(empty) = %s, %v", lang, err)
	}
	if _, err := ParseLanguage("klingon"); err == nil {
		t.Fatalf("ParseLanguage accepted unknown language")
	}
}
