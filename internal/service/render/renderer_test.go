package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jean1991/creditcarbon/internal/config"
	"github.com/jean1991/creditcarbon/internal/domain/models"
	"github.com/jean1991/creditcarbon/internal/service/charts"
)

var zipMagic = []byte("PK\x03\x04")

func testReport() *models.Report {
	province := models.Province{Name: "Équateur", AdminCode: "CD-EQ", GFWAdminID: "CD.4"}
	report := &models.Report{
		ID:          "report-1",
		Title:       "Équateur Forest Loss 2020-2022",
		Description: "Annual tree cover loss assessment",
		Type:        models.ReportForestLoss,
		Province:    &province,
		PeriodStart: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      models.StatusFinalized,
		Charts: []models.ChartSpec{{
			Kind:        models.ChartLine,
			Title:       "Forest Loss Trend",
			Series:      map[string][]float64{"Équateur": {1200, 980, 1430}},
			XAxisLabels: []string{"2020", "2021", "2022"},
		}},
	}
	report.Data.Series = &models.ForestLossSeries{
		Province: province,
		Range:    models.YearRange{Start: 2020, End: 2022},
		Points: []models.ForestLossPoint{
			{Year: 2020, HectaresLost: 1200},
			{Year: 2021, HectaresLost: 980},
			{Year: 2022, HectaresLost: 1430},
		},
		Source: models.SourceGFW,
	}
	report.Data.Recompute()
	return report
}

func testCharts(t *testing.T, report *models.Report) []models.RenderedChart {
	t.Helper()
	rendered, err := charts.NewBuilder(nil).Build(report.Charts)
	require.NoError(t, err)
	return rendered
}

// tinyPNG produces a real decodable PNG for branding asset tests.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.Set(0, 0, color.RGBA{R: 0x22, G: 0x8B, B: 0x22, A: 0xFF})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRender_Formats(t *testing.T) {
	report := testReport()
	rendered := testCharts(t, report)
	renderer := NewRenderer(Branding{}, nil)
	opts := models.DefaultExportOptions()

	t.Run("pdf", func(t *testing.T) {
		out, err := renderer.Render(report, rendered, models.FormatPDF, opts)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	})

	t.Run("docx", func(t *testing.T) {
		out, err := renderer.Render(report, rendered, models.FormatDOCX, opts)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, zipMagic))
	})

	t.Run("xlsx", func(t *testing.T) {
		out, err := renderer.Render(report, rendered, models.FormatXLSX, opts)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, zipMagic))
	})
}

func TestRender_WithBrandingAssets(t *testing.T) {
	report := testReport()
	rendered := testCharts(t, report)
	asset := tinyPNG(t)
	renderer := NewRenderer(Branding{Logo: asset, Signature: asset}, nil)

	for _, format := range []models.ExportFormat{models.FormatPDF, models.FormatDOCX, models.FormatXLSX} {
		out, err := renderer.Render(report, rendered, format, models.DefaultExportOptions())
		require.NoError(t, err, "format %s", format)
		assert.NotEmpty(t, out)
	}
}

func TestRender_WithoutCharts(t *testing.T) {
	report := testReport()
	renderer := NewRenderer(Branding{}, nil)

	opts := models.DefaultExportOptions()
	opts.IncludeCharts = false

	out, err := renderer.Render(report, nil, models.FormatPDF, opts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_UnscopedReport(t *testing.T) {
	report := &models.Report{
		ID:     "report-2",
		Title:  "National Emission Inventory",
		Type:   models.ReportEmissionInventory,
		Status: models.StatusDraft,
	}
	renderer := NewRenderer(Branding{}, nil)

	out, err := renderer.Render(report, nil, models.FormatPDF, models.DefaultExportOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRender_RejectsCorruptChartBytes(t *testing.T) {
	report := testReport()
	renderer := NewRenderer(Branding{}, nil)

	corrupt := []models.RenderedChart{{
		Spec:       report.Charts[0],
		ImageBytes: []byte("not a png at all"),
	}}

	_, err := renderer.Render(report, corrupt, models.FormatPDF, models.DefaultExportOptions())
	assert.ErrorIs(t, err, models.ErrCorruptChartData)
}

func TestRender_RejectsUnknownFormat(t *testing.T) {
	renderer := NewRenderer(Branding{}, nil)
	_, err := renderer.Render(testReport(), nil, models.ExportFormat("odt"), models.DefaultExportOptions())
	assert.Error(t, err)
}

func TestLoadBranding(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(logoPath, []byte("png bytes"), 0o644))

	b := LoadBranding(config.ExportConfig{
		LogoPath:      logoPath,
		SignaturePath: filepath.Join(dir, "missing.png"),
	}, nil)

	assert.Equal(t, []byte("png bytes"), b.Logo)
	assert.Nil(t, b.Signature, "missing assets degrade to placeholders")
}

func TestDataTables(t *testing.T) {
	report := testReport()
	tables := dataTables(report, report.Charts)
	require.Len(t, tables, 2)

	series := tables[0]
	assert.Contains(t, series.Title, "Équateur")
	assert.Contains(t, series.Title, models.SourceGFW)
	require.Len(t, series.Rows, 6) // three years plus three aggregate rows
	assert.Equal(t, []string{"2020", "1200.00"}, series.Rows[0])
	assert.Equal(t, []string{"Total", "3610.00"}, series.Rows[3])
	assert.Equal(t, []string{"Peak Year", "2022"}, series.Rows[5])

	chart := tables[1]
	assert.Equal(t, "Forest Loss Trend", chart.Title)
	assert.Equal(t, []string{"Series", "2020", "2021", "2022"}, chart.Header)
}
