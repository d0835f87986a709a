package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jean1991/creditcarbon/internal/domain/models"
	"github.com/jean1991/creditcarbon/internal/repository"
)

// Service manages the report lifecycle: creation, metadata updates and
// finalization. Exporting is the export service's concern.
type Service struct {
	store  repository.Store
	logger *zap.Logger
}

// NewService wires a new report service instance.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// CreateInput carries the caller-supplied fields for a new report.
type CreateInput struct {
	Title       string
	Description string
	Type        models.ReportType
	Province    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Charts      []models.ChartSpec
	OwnerID     string
}

// Create registers a new draft report. An empty province leaves the report
// unscoped; a non-empty one must name a registered DRC province.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Report, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("report title must not be empty")
	}

	var province *models.Province
	if in.Province != "" {
		p, err := models.LookupProvince(in.Province)
		if err != nil {
			return nil, err
		}
		province = &p
	}

	for i, spec := range in.Charts {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("chart %d: %w", i, err)
		}
	}

	now := time.Now().UTC()
	report := &models.Report{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Province:    province,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		Status:      models.StatusDraft,
		Charts:      in.Charts,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("report created",
		zap.String("report_id", report.ID),
		zap.String("title", report.Title),
		zap.String("type", string(report.Type)))

	return report, nil
}

// Get loads a report by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Report, error) {
	return s.store.GetReport(ctx, id)
}

// List returns reports, optionally filtered by owner.
func (s *Service) List(ctx context.Context, ownerID string) ([]models.Report, error) {
	return s.store.ListReports(ctx, ownerID)
}

// UpdateInput carries the mutable report fields. Nil pointers leave the
// corresponding field untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Charts      []models.ChartSpec
}

// Update mutates report metadata. Only draft and finalized reports accept
// mutations; exported reports are frozen.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*models.Report, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	if !report.Mutable() {
		return nil, fmt.Errorf("%w: report %s is %s", models.ErrInvalidTransition, id, report.Status)
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("report title must not be empty")
		}
		report.Title = *in.Title
	}
	if in.Description != nil {
		report.Description = *in.Description
	}
	if in.Charts != nil {
		for i, spec := range in.Charts {
			if err := spec.Validate(); err != nil {
				return nil, fmt.Errorf("chart %d: %w", i, err)
			}
		}
		report.Charts = in.Charts
	}

	report.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Finalize performs the explicit draft -> finalized transition. Export
// never finalizes implicitly.
func (s *Service) Finalize(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	if report.Status != models.StatusDraft {
		return nil, fmt.Errorf("%w: cannot finalize report in status %s", models.ErrInvalidTransition, report.Status)
	}

	report.Status = models.StatusFinalized
	report.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveReport(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("report finalized", zap.String("report_id", report.ID))
	return report, nil
}

// Exports lists the export history for a report.
func (s *Service) Exports(ctx context.Context, reportID string) ([]models.Export, error) {
	if _, err := s.store.GetReport(ctx, reportID); err != nil {
		return nil, err
	}
	return s.store.ListExports(ctx, reportID)
}
