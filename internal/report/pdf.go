package report

import (
    "fmt"

    "github.com/jung-kurt/gofpdf"
)

// WritePDF renders a one-page report with the source and its score table.
func WritePDF(outPath string, r Result) error {
    pdf := gofpdf.New("P", "mm", "A4", "")
    pdf.SetTitle("Sentiment analysis", true)
    pdf.AddPage()

    pdf.SetFont("Helvetica", "B", 14)
    pdf.CellFormat(0, 8, "Sentiment analysis", "", 1, "L", false, 0, "")
    pdf.Ln(2)

    pdf.SetFont("Helvetica", "", 10)
    // Core fonts are cp1252; translate so non-ASCII paths render.
    tr := pdf.UnicodeTranslatorFromDescriptor("")
    pdf.MultiCell(0, 5, "Source: "+tr(r.Source), "", "L", false)
    pdf.Ln(4)

    headers := []string{"pos", "neg", "neu", "compound"}
    values := []float64{r.Scores.Pos, r.Scores.Neg, r.Scores.Neu, r.Scores.Compound}
    const colWidth = 35.0
    pdf.SetFont("Helvetica", "B", 11)
    for _, h := range headers {
        pdf.CellFormat(colWidth, 7, h, "1", 0, "C", false, 0, "")
    }
    pdf.Ln(-1)
    pdf.SetFont("Helvetica", "", 11)
    for _, v := range values {
        pdf.CellFormat(colWidth, 7, fmt.Sprintf("%.4f", v), "1", 0, "R", false, 0, "")
    }
    pdf.Ln(-1)

    return pdf.OutputFileAndClose(outPath)
}
