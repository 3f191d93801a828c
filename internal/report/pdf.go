package report

import (
	"bytes"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"example.com/pixgate/internal/pix"
)

// SaveChargePDF renders the charge into a printable A4 receipt: a summary
// table, the scannable QR code, and the copy-and-paste payload string.
func SaveChargePDF(ch pix.Charge, lang Language, out string) error {
	png, err := PayloadToQR(ch.Code, DefaultQRSize)
	if err != nil {
		return err
	}
	tr := NewTranslator(lang)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(tr.T("receipt.title"), false)
	pdf.SetAuthor("pixctl", false)
	pdf.SetCreator("pixctl", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, tr.T("receipt.title"))
	addDetailsSection(pdf, tr, ch)
	addQRSection(pdf, tr, png)
	addCodeSection(pdf, tr, ch.Code)
	if ch.Guessed() {
		addGuessedNote(pdf, tr)
	}

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addDetailsSection(pdf *gofpdf.Fpdf, tr Translator, ch pix.Charge) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr.T("receipt.details"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{label: tr.T("receipt.merchant"), value: ch.MerchantName},
		{label: tr.T("receipt.city"), value: ch.MerchantCity},
		{label: tr.T("receipt.key"), value: ch.Key},
		{label: tr.T("receipt.keyType"), value: keyTypeLabel(ch.KeyType)},
		{label: tr.T("receipt.amount"), value: tr.Format("receipt.amountValue", strconv.FormatFloat(ch.Amount, 'f', 2, 64))},
		{label: tr.T("receipt.reference"), value: ch.TransactionID},
		{label: tr.T("receipt.created"), value: createdLabel(ch.CreatedAt)},
	}
	for _, item := range items {
		if item.value == "" {
			continue
		}
		pdf.CellFormat(50, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addQRSection(pdf *gofpdf.Fpdf, tr Translator, png []byte) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr.T("receipt.scan"))
	pdf.Ln(10)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("charge-qr", opts, bytes.NewReader(png))
	pageWidth, _ := pdf.GetPageSize()
	side := 70.0
	pdf.ImageOptions("charge-qr", (pageWidth-side)/2, pdf.GetY(), side, side, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + side + 6)
}

func addCodeSection(pdf *gofpdf.Fpdf, tr Translator, code string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr.T("receipt.copyPaste"))
	pdf.Ln(9)

	pdf.SetFont("Courier", "", 9)
	pdf.MultiCell(0, 5, code, "1", "L", false)
	pdf.Ln(4)
}

func addGuessedNote(pdf *gofpdf.Fpdf, tr Translator) {
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr.T("receipt.guessedNote"), "", "L", false)
}

func keyTypeLabel(kt pix.KeyType) string {
	if kt == "" {
		return ""
	}
	return string(kt)
}

func createdLabel(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(time.RFC3339)
}
