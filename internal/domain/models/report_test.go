package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportDataRecompute(t *testing.T) {
	data := ReportData{
		Series: &ForestLossSeries{
			Source: SourceGFW,
			Points: []ForestLossPoint{
				{Year: 2020, HectaresLost: 1000},
				{Year: 2021, HectaresLost: 3000},
				{Year: 2022, HectaresLost: 2000},
			},
		},
	}
	data.Recompute()

	assert.InDelta(t, 6000.0, data.TotalLoss, 1e-9)
	assert.InDelta(t, 2000.0, data.AnnualMean, 1e-9)
	assert.Equal(t, 2021, data.PeakYear)
	assert.Equal(t, SourceGFW, data.Source)
}

func TestReportDataRecompute_EmptySeries(t *testing.T) {
	data := ReportData{TotalLoss: 99, AnnualMean: 33, PeakYear: 2019, Source: SourceMock}
	data.Recompute()

	assert.Zero(t, data.TotalLoss)
	assert.Zero(t, data.AnnualMean)
	assert.Zero(t, data.PeakYear)
	assert.Empty(t, data.Source)
}

func TestReportMutable(t *testing.T) {
	assert.True(t, (&Report{Status: StatusDraft}).Mutable())
	assert.True(t, (&Report{Status: StatusFinalized}).Mutable())
	assert.False(t, (&Report{Status: StatusExported}).Mutable())
}

func TestReportPeriod(t *testing.T) {
	report := &Report{
		PeriodStart: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, YearRange{Start: 2020, End: 2023}, report.Period())

	// Unset bounds must not decay to the zero time's year 1.
	assert.False(t, (&Report{}).Period().Valid())
	assert.False(t, (&Report{PeriodStart: report.PeriodStart}).Period().Valid())
	assert.False(t, (&Report{PeriodEnd: report.PeriodEnd}).Period().Valid())
}

func TestExportFormatValid(t *testing.T) {
	assert.True(t, FormatPDF.Valid())
	assert.True(t, FormatDOCX.Valid())
	assert.True(t, FormatXLSX.Valid())
	assert.False(t, ExportFormat("csv").Valid())
	assert.False(t, ExportFormat("").Valid())
}

func TestDefaultExportOptions(t *testing.T) {
	opts := DefaultExportOptions()
	assert.True(t, opts.IncludeCharts)
	assert.True(t, opts.IncludeLogo)
	assert.True(t, opts.IncludeSignature)
}
