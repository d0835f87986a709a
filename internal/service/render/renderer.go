package render

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jean1991/creditcarbon/internal/config"
	"github.com/jean1991/creditcarbon/internal/domain/models"
)

// Ministry branding text placed above every document title.
const (
	headerCountry  = "Democratic Republic of Congo"
	headerMinistry = "Ministry of Environment and Sustainable Development"

	signatureCaption = "Authorized Ministry Official"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")
var jpegMagic = []byte{0xFF, 0xD8, 0xFF}

// Branding holds the ministry image assets embedded in exported documents.
// Empty or unreadable assets degrade to text placeholders; they never abort
// a render, since the report content is the primary value.
type Branding struct {
	Logo      []byte
	Signature []byte
}

// LoadBranding reads the branding assets from disk. Missing files are
// logged and left empty.
func LoadBranding(cfg config.ExportConfig, logger *zap.Logger) Branding {
	if logger == nil {
		logger = zap.NewNop()
	}

	var b Branding
	var err error

	if b.Logo, err = os.ReadFile(cfg.LogoPath); err != nil {
		logger.Warn("ministry logo unavailable, exports will carry a placeholder",
			zap.String("path", cfg.LogoPath), zap.Error(err))
		b.Logo = nil
	}
	if b.Signature, err = os.ReadFile(cfg.SignaturePath); err != nil {
		logger.Warn("signature image unavailable, exports will carry a placeholder",
			zap.String("path", cfg.SignaturePath), zap.Error(err))
		b.Signature = nil
	}

	return b
}

// Renderer composes report metadata, data tables, rendered charts and
// branding assets into a final document byte stream.
type Renderer struct {
	branding Branding
	logger   *zap.Logger
}

// NewRenderer wires a document renderer with the given branding assets.
func NewRenderer(branding Branding, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{branding: branding, logger: logger}
}

// Render produces the document bytes for the requested format. The layout
// contract is identical across formats: logo, ministry header and title,
// metadata table, data tables, charts in config order, signature block.
// Malformed chart image bytes fail the whole render with
// ErrCorruptChartData: charts are generated in-process, so that signals a
// bug, not a user error.
func (r *Renderer) Render(report *models.Report, charts []models.RenderedChart, format models.ExportFormat, opts models.ExportOptions) ([]byte, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	for i, chart := range charts {
		if !bytes.HasPrefix(chart.ImageBytes, pngMagic) {
			return nil, fmt.Errorf("%w: chart %d (%s) is not a valid PNG", models.ErrCorruptChartData, i, chart.Spec.Title)
		}
	}

	if !opts.IncludeCharts {
		charts = nil
	}

	switch format {
	case models.FormatPDF:
		return r.renderPDF(report, charts, opts)
	case models.FormatDOCX:
		return r.renderDOCX(report, charts, opts)
	default:
		return r.renderXLSX(report, charts)
	}
}

// imageType sniffs the asset format the way the PDF backend needs it named.
func imageType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return "PNG"
	case bytes.HasPrefix(data, jpegMagic):
		return "JPG"
	default:
		return ""
	}
}

type metadataRow struct {
	Key, Value string
}

func metadataRows(report *models.Report) []metadataRow {
	provinceName := "N/A"
	if report.Province != nil {
		provinceName = report.Province.Name
	}

	period := "N/A"
	if !report.PeriodStart.IsZero() && !report.PeriodEnd.IsZero() {
		period = fmt.Sprintf("%s to %s",
			report.PeriodStart.Format("2006-01-02"),
			report.PeriodEnd.Format("2006-01-02"))
	}

	return []metadataRow{
		{Key: "Title", Value: report.Title},
		{Key: "Description", Value: report.Description},
		{Key: "Report Type", Value: string(report.Type)},
		{Key: "Province", Value: provinceName},
		{Key: "Reporting Period", Value: period},
		{Key: "Generated On", Value: time.Now().UTC().Format("2006-01-02 15:04 MST")},
		{Key: "Status", Value: string(report.Status)},
	}
}

type dataTable struct {
	Title  string
	Header []string
	Rows   [][]string
}

// dataTables renders the raw values behind the report so the document is
// self-auditable without the chart images: the satellite series with its
// aggregates, then one table per configured chart.
func dataTables(report *models.Report, charts []models.ChartSpec) []dataTable {
	var tables []dataTable

	if series := report.Data.Series; series != nil && len(series.Points) > 0 {
		t := dataTable{
			Title:  fmt.Sprintf("Forest Loss Analysis — %s (%s)", series.Province.Name, series.Source),
			Header: []string{"Year", "Forest Loss (hectares)"},
		}
		for _, p := range series.Points {
			t.Rows = append(t.Rows, []string{fmt.Sprintf("%d", p.Year), fmt.Sprintf("%.2f", p.HectaresLost)})
		}
		t.Rows = append(t.Rows,
			[]string{"Total", fmt.Sprintf("%.2f", report.Data.TotalLoss)},
			[]string{"Annual Mean", fmt.Sprintf("%.2f", report.Data.AnnualMean)},
			[]string{"Peak Year", fmt.Sprintf("%d", report.Data.PeakYear)})
		tables = append(tables, t)
	}

	for _, spec := range charts {
		t := dataTable{
			Title:  spec.Title,
			Header: append([]string{"Series"}, spec.XAxisLabels...),
		}

		labels := make([]string, 0, len(spec.Series))
		for label := range spec.Series {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		for _, label := range labels {
			row := []string{label}
			for _, v := range spec.Series[label] {
				row = append(row, fmt.Sprintf("%.2f", v))
			}
			t.Rows = append(t.Rows, row)
		}
		tables = append(tables, t)
	}

	return tables
}
