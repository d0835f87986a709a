package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jean1991/creditcarbon/internal/domain/models"
)

func TestReportRoundTrip(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	report := &models.Report{ID: "r1", Title: "first", OwnerID: "u1", Status: models.StatusDraft}
	require.NoError(t, repo.CreateReport(ctx, report))

	assert.Error(t, repo.CreateReport(ctx, report), "duplicate ids are rejected")

	got, err := repo.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	// The store hands out copies, not aliases.
	got.Title = "mutated"
	again, err := repo.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "first", again.Title)

	report.Title = "updated"
	require.NoError(t, repo.SaveReport(ctx, report))
	saved, err := repo.GetReport(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "updated", saved.Title)
}

func TestReportNotFound(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.GetReport(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrReportNotFound)

	err = repo.SaveReport(ctx, &models.Report{ID: "missing"})
	assert.ErrorIs(t, err, models.ErrReportNotFound)
}

func TestListReports(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.CreateReport(ctx, &models.Report{ID: "old", OwnerID: "u1", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, repo.CreateReport(ctx, &models.Report{ID: "new", OwnerID: "u2", CreatedAt: now}))

	all, err := repo.ListReports(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].ID, "newest first")

	owned, err := repo.ListReports(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "old", owned[0].ID)
}

func TestExports(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	stored, err := repo.CreateExport(ctx, &models.Export{ReportID: "r1", Format: models.FormatPDF})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID, "missing ids are assigned")
	assert.False(t, stored.CreatedAt.IsZero())

	_, err = repo.CreateExport(ctx, &models.Export{ID: "e2", ReportID: "r2", Format: models.FormatDOCX})
	require.NoError(t, err)

	exports, err := repo.ListExports(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, stored.ID, exports[0].ID)

	none, err := repo.ListExports(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}
