package render

import (
	"bytes"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/jean1991/creditcarbon/internal/domain/models"
)

const (
	pdfLogoWidth      = 50.0  // mm, max width bound; height follows aspect ratio
	pdfChartWidth     = 160.0 // mm
	pdfChartHeight    = 96.0  // mm, matches the 10:6 chart aspect ratio
	pdfSignatureWidth = 50.0  // mm
)

func (r *Renderer) renderPDF(report *models.Report, charts []models.RenderedChart, opts models.ExportOptions) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(report.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	if opts.IncludeLogo {
		if kind := imageType(r.branding.Logo); kind != "" {
			iopt := fpdf.ImageOptions{ImageType: kind, ReadDpi: true}
			pdf.RegisterImageOptionsReader("ministry-logo", iopt, bytes.NewReader(r.branding.Logo))
			pdf.ImageOptions("ministry-logo", (pageW-pdfLogoWidth)/2, 12, pdfLogoWidth, 0, false, iopt, 0, "")
			pdf.SetY(42)
		} else {
			r.logger.Warn("pdf rendered without ministry logo")
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "[ ministry logo unavailable ]", "", 1, "C", false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(headerCountry), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(headerMinistry), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(report.Title), "", "C", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range metadataRows(report) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 7, tr(row.Key), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 7, tr(row.Value), "1", "L", false)
	}
	pdf.Ln(8)

	for _, table := range dataTables(report, report.Charts) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(table.Title), "", 1, "L", false, 0, "")

		colW := (pageW - 20) / float64(len(table.Header))
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(220, 220, 220)
		for _, h := range table.Header {
			pdf.CellFormat(colW, 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		for _, row := range table.Rows {
			for _, cell := range row {
				pdf.CellFormat(colW, 7, tr(cell), "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	for i, chart := range charts {
		if pdf.GetY()+pdfChartHeight+10 > pageH-15 {
			pdf.AddPage()
		}
		iopt := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		name := fmt.Sprintf("chart-%d", i)
		pdf.RegisterImageOptionsReader(name, iopt, bytes.NewReader(chart.ImageBytes))
		pdf.ImageOptions(name, (pageW-pdfChartWidth)/2, pdf.GetY(), pdfChartWidth, pdfChartHeight, true, iopt, 0, "")
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 7, tr(chart.Spec.Title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	if opts.IncludeSignature {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, "Authorization", "", 1, "L", false, 0, "")
		pdf.Ln(8)

		if kind := imageType(r.branding.Signature); kind != "" {
			iopt := fpdf.ImageOptions{ImageType: kind, ReadDpi: true}
			pdf.RegisterImageOptionsReader("ministry-signature", iopt, bytes.NewReader(r.branding.Signature))
			pdf.ImageOptions("ministry-signature", 10, pdf.GetY(), pdfSignatureWidth, 0, true, iopt, 0, "")
		} else {
			r.logger.Warn("pdf rendered without signature image")
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "[ signature unavailable ]", "", 1, "L", false, 0, "")
		}

		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, "______________________________", "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, signatureCaption, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", time.Now().UTC().Format("2006-01-02")), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}
	return buf.Bytes(), nil
}
