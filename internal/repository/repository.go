package repository

import (
	"context"

	"github.com/jean1991/creditcarbon/internal/domain/models"
)

// Store defines the persistence operations the engine needs over report and
// export records. GetReport fails with models.ErrReportNotFound for unknown
// ids; SaveReport has full-replace semantics; CreateExport assigns the
// record timestamp (and an id when the caller supplied none) and returns the
// stored record.
type Store interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context, ownerID string) ([]models.Report, error)
	SaveReport(ctx context.Context, report *models.Report) error

	CreateExport(ctx context.Context, export *models.Export) (*models.Export, error)
	ListExports(ctx context.Context, reportID string) ([]models.Export, error)
}
