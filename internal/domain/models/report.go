package models

import "time"

// ReportType categorizes climate action reports.
type ReportType string

const (
	ReportForestLoss        ReportType = "forest_loss"
	ReportEmissionInventory ReportType = "emission_inventory"
	ReportCarbonCredit      ReportType = "carbon_credit"
	ReportGeneral           ReportType = "general"
)

// ReportStatus is the report lifecycle state. Reports are created as
// drafts; finalization is an explicit operation, and a successful export
// promotes a finalized report to exported. Export never regresses status
// and never implicitly finalizes a draft.
type ReportStatus string

const (
	StatusDraft     ReportStatus = "draft"
	StatusFinalized ReportStatus = "finalized"
	StatusExported  ReportStatus = "exported"
)

// ReportData is the structured payload attached to a report: the satellite
// series plus aggregates derived from it when the series is refreshed.
type ReportData struct {
	Series     *ForestLossSeries `json:"series,omitempty" bson:"series,omitempty"`
	TotalLoss  float64           `json:"total_loss_ha" bson:"total_loss_ha"`
	AnnualMean float64           `json:"annual_mean_ha" bson:"annual_mean_ha"`
	PeakYear   int               `json:"peak_year" bson:"peak_year"`
	Source     string            `json:"source" bson:"source"`
}

// Recompute refreshes the derived aggregates from the attached series.
func (d *ReportData) Recompute() {
	d.TotalLoss, d.AnnualMean, d.PeakYear, d.Source = 0, 0, 0, ""
	if d.Series == nil || len(d.Series.Points) == 0 {
		return
	}
	var peak float64
	for _, p := range d.Series.Points {
		d.TotalLoss += p.HectaresLost
		if p.HectaresLost >= peak {
			peak = p.HectaresLost
			d.PeakYear = p.Year
		}
	}
	d.AnnualMean = d.TotalLoss / float64(len(d.Series.Points))
	d.Source = d.Series.Source
}

// Report is a user-authored document shell combining metadata, aggregated
// satellite data and chart configuration.
type Report struct {
	ID          string       `json:"id" bson:"_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Type        ReportType   `json:"report_type" bson:"report_type"`
	Province    *Province    `json:"province,omitempty" bson:"province,omitempty"`
	PeriodStart time.Time    `json:"period_start" bson:"period_start"`
	PeriodEnd   time.Time    `json:"period_end" bson:"period_end"`
	Status      ReportStatus `json:"status" bson:"status"`
	Data        ReportData   `json:"data" bson:"data"`
	Charts      []ChartSpec  `json:"charts_config" bson:"charts_config"`
	OwnerID     string       `json:"owner_id" bson:"owner_id"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

// Mutable reports whether title/description/data mutations are allowed in
// the current state. Exported reports are frozen.
func (r *Report) Mutable() bool {
	return r.Status == StatusDraft || r.Status == StatusFinalized
}

// Period returns the reporting period as a year range. A report missing
// either period bound has no period; the returned range is invalid rather
// than the year-1 range the zero time would yield.
func (r *Report) Period() YearRange {
	if r.PeriodStart.IsZero() || r.PeriodEnd.IsZero() {
		return YearRange{}
	}
	return YearRange{Start: r.PeriodStart.Year(), End: r.PeriodEnd.Year()}
}

// ExportFormat identifies a rendered artifact format.
type ExportFormat string

const (
	FormatPDF  ExportFormat = "pdf"
	FormatDOCX ExportFormat = "docx"
	FormatXLSX ExportFormat = "xlsx"
)

// Valid reports whether the format is one the renderer understands.
func (f ExportFormat) Valid() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatXLSX:
		return true
	}
	return false
}

// ExportOptions controls which optional sections a rendered document
// carries. The zero value is not useful; use DefaultExportOptions.
type ExportOptions struct {
	IncludeCharts    bool `json:"include_charts" bson:"include_charts"`
	IncludeLogo      bool `json:"include_logo" bson:"include_logo"`
	IncludeSignature bool `json:"include_signature" bson:"include_signature"`
}

// DefaultExportOptions enables every section.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{IncludeCharts: true, IncludeLogo: true, IncludeSignature: true}
}

// Export records one rendered artifact produced from a report. Exports are
// an append-only audit log: re-exporting creates a new record, and records
// are never mutated after creation. ReportID is a weak reference; an export
// does not own its report's lifetime.
type Export struct {
	ID                string       `json:"id" bson:"_id"`
	ReportID          string       `json:"report_id" bson:"report_id"`
	Format            ExportFormat `json:"format" bson:"format"`
	FilePath          string       `json:"file_path" bson:"file_path"`
	FileSizeBytes     int64        `json:"file_size_bytes" bson:"file_size_bytes"`
	IncludesCharts    bool         `json:"includes_charts" bson:"includes_charts"`
	IncludesLogo      bool         `json:"includes_logo" bson:"includes_logo"`
	IncludesSignature bool         `json:"includes_signature" bson:"includes_signature"`
	CreatedAt         time.Time    `json:"created_at" bson:"created_at"`
}
