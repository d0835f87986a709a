package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jean1991/creditcarbon/internal/domain/models"
	"github.com/jean1991/creditcarbon/internal/repository"
	"github.com/jean1991/creditcarbon/internal/service/charts"
	"github.com/jean1991/creditcarbon/internal/service/render"
	"github.com/jean1991/creditcarbon/pkg/clients/gfw"
)

// Service drives a report export end to end: resolve the report, refresh
// its satellite series when stale, build the charts, render the document,
// persist the artifact and record the export.
type Service struct {
	store     repository.Store
	satellite gfw.Client
	charts    *charts.Builder
	renderer  *render.Renderer
	exportDir string
	logger    *zap.Logger
}

// NewService wires a new export service instance.
func NewService(store repository.Store, satellite gfw.Client, chartBuilder *charts.Builder, renderer *render.Renderer, exportDir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		satellite: satellite,
		charts:    chartBuilder,
		renderer:  renderer,
		exportDir: exportDir,
		logger:    logger,
	}
}

// Result pairs the export record with the rendered bytes so callers can
// stream the document without re-reading the artifact file.
type Result struct {
	Export *models.Export
	Bytes  []byte
}

// ExportReport renders a report into the requested format and records the
// export. Every call appends a fresh Export record with its own artifact
// file: exports are an audit log, not a cache. A finalized report is
// promoted to exported; a draft stays a draft. The Export record is created
// only after the artifact is fully written, so an aborted call never leaves
// a record pointing at a partial file.
func (s *Service) ExportReport(ctx context.Context, reportID string, format models.ExportFormat, opts models.ExportOptions) (*Result, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if err := s.refreshSatelliteData(ctx, report); err != nil {
		return nil, err
	}

	var rendered []models.RenderedChart
	if opts.IncludeCharts {
		if rendered, err = s.charts.Build(report.Charts); err != nil {
			return nil, err
		}
	} else {
		// Specs still gate the export even when images are skipped.
		for i, spec := range report.Charts {
			if err := spec.Validate(); err != nil {
				return nil, fmt.Errorf("chart %d: %w", i, err)
			}
		}
	}

	docBytes, err := s.renderer.Render(report, rendered, format, opts)
	if err != nil {
		return nil, err
	}

	// The artifact name derives from a fresh id, never from user-supplied
	// titles, so paths cannot collide or traverse.
	exportID := uuid.NewString()
	filePath := filepath.Join(s.exportDir, fmt.Sprintf("%s.%s", exportID, format))

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(filePath, docBytes, 0o644); err != nil {
		return nil, fmt.Errorf("write export artifact: %w", err)
	}

	export, err := s.store.CreateExport(ctx, &models.Export{
		ID:                exportID,
		ReportID:          report.ID,
		Format:            format,
		FilePath:          filePath,
		FileSizeBytes:     int64(len(docBytes)),
		IncludesCharts:    opts.IncludeCharts,
		IncludesLogo:      opts.IncludeLogo,
		IncludesSignature: opts.IncludeSignature,
	})
	if err != nil {
		// Don't leave an orphan artifact behind a failed record.
		_ = os.Remove(filePath)
		return nil, fmt.Errorf("record export: %w", err)
	}

	if report.Status == models.StatusFinalized {
		report.Status = models.StatusExported
		report.UpdatedAt = time.Now().UTC()
		if err := s.store.SaveReport(ctx, report); err != nil {
			return nil, fmt.Errorf("promote report status: %w", err)
		}
	}

	s.logger.Info("report exported",
		zap.String("report_id", report.ID),
		zap.String("export_id", export.ID),
		zap.String("format", string(format)),
		zap.Int64("bytes", export.FileSizeBytes))

	return &Result{Export: export, Bytes: docBytes}, nil
}

// refreshSatelliteData fetches the forest-loss series for the report's
// province when the stored series does not cover the reporting period.
// Exported reports are frozen and keep whatever data they were exported
// with.
func (s *Service) refreshSatelliteData(ctx context.Context, report *models.Report) error {
	if report.Province == nil || !report.Mutable() {
		return nil
	}

	period := report.Period()
	if !period.Valid() || report.Data.Series.Covers(period) {
		return nil
	}

	series, err := s.satellite.Fetch(ctx, *report.Province, period)
	if err != nil {
		return fmt.Errorf("refresh satellite data: %w", err)
	}

	report.Data.Series = series
	report.Data.Recompute()
	report.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveReport(ctx, report); err != nil {
		return fmt.Errorf("persist refreshed data: %w", err)
	}

	s.logger.Debug("satellite series refreshed",
		zap.String("report_id", report.ID),
		zap.String("source", series.Source),
		zap.Int("points", len(series.Points)))

	return nil
}
