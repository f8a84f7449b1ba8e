package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Page layout in millimetres.
const (
	pdfMargin     = 15.0
	pdfLineHeight = 8.0
	pdfLabelWidth = 60.0
	pdfTitleSize  = 18.0
	pdfBodySize   = 12.0
	pdfMetaSize   = 9.0
)

// writePDF renders r as a single A4 page with the core Helvetica font.
// Text is translated to cp1252 so "m²" and "kWh/m²·year" render correctly.
func writePDF(w io.Writer, r Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(r.Title, true)
	pdf.SetCreator("energylabel", true)
	if r.Author != "" {
		pdf.SetAuthor(r.Author, true)
	}
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.SetModificationDate(r.GeneratedAt)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	lines := r.Lines()
	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	pdf.CellFormat(0, pdfLineHeight*1.5, tr(lines[0].Value), "B", 1, "L", false, 0, "")
	pdf.Ln(pdfLineHeight / 2)

	for _, line := range lines[1:] {
		pdf.SetFont("Helvetica", "B", pdfBodySize)
		pdf.CellFormat(pdfLabelWidth, pdfLineHeight, tr(line.Label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", pdfBodySize)
		pdf.CellFormat(0, pdfLineHeight, tr(line.Value), "", 1, "L", false, 0, "")
	}

	pdf.Ln(pdfLineHeight)
	pdf.SetFont("Helvetica", "I", pdfMetaSize)
	pdf.SetTextColor(100, 100, 100)
	for _, line := range r.Metadata() {
		pdf.CellFormat(0, pdfLineHeight*0.75, tr(line.String()), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
