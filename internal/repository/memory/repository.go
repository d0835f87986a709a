package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jean1991/creditcarbon/internal/domain/models"
)

// Repository is an in-memory repository.Store used by tests and local runs
// without a MongoDB instance. Safe for concurrent use.
type Repository struct {
	mu      sync.RWMutex
	reports map[string]models.Report
	exports map[string]models.Export
}

// NewRepository creates an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		reports: make(map[string]models.Report),
		exports: make(map[string]models.Export),
	}
}

func (r *Repository) CreateReport(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[report.ID]; exists {
		return fmt.Errorf("report %s already exists", report.ID)
	}
	r.reports[report.ID] = *report
	return nil
}

func (r *Repository) GetReport(_ context.Context, id string) (*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrReportNotFound, id)
	}
	return &report, nil
}

func (r *Repository) ListReports(_ context.Context, ownerID string) ([]models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Report
	for _, report := range r.reports {
		if ownerID == "" || report.OwnerID == ownerID {
			out = append(out, report)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repository) SaveReport(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reports[report.ID]; !ok {
		return fmt.Errorf("%w: %s", models.ErrReportNotFound, report.ID)
	}
	r.reports[report.ID] = *report
	return nil
}

func (r *Repository) CreateExport(_ context.Context, export *models.Export) (*models.Export, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *export
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now().UTC()
	r.exports[stored.ID] = stored
	return &stored, nil
}

func (r *Repository) ListExports(_ context.Context, reportID string) ([]models.Export, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Export
	for _, export := range r.exports {
		if export.ReportID == reportID {
			out = append(out, export)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
