package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jean1991/creditcarbon/internal/domain/models"
	exportsvc "github.com/jean1991/creditcarbon/internal/service/export"
	reportsvc "github.com/jean1991/creditcarbon/internal/service/reports"
)

// ReportHandler handles report lifecycle and export HTTP operations.
type ReportHandler struct {
	reports *reportsvc.Service
	exports *exportsvc.Service
	logger  *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(reports *reportsvc.Service, exports *exportsvc.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, exports: exports, logger: logger}
}

type createReportRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	ReportType  models.ReportType  `json:"report_type"`
	Province    string             `json:"province"`
	PeriodStart time.Time          `json:"period_start"`
	PeriodEnd   time.Time          `json:"period_end"`
	Charts      []models.ChartSpec `json:"charts_config"`
	OwnerID     string             `json:"owner_id"`
}

// Create registers a new draft report.
func (h *ReportHandler) Create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.ReportType == "" {
		req.ReportType = models.ReportGeneral
	}

	report, err := h.reports.Create(c.Request.Context(), reportsvc.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.ReportType,
		Province:    req.Province,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Charts:      req.Charts,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// List returns reports, optionally filtered by owner id.
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context(), c.Query("owner_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Get returns one report by id.
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reports.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type updateReportRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Charts      []models.ChartSpec `json:"charts_config"`
}

// Update mutates report metadata while the lifecycle allows it.
func (h *ReportHandler) Update(c *gin.Context) {
	var req updateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.reports.Update(c.Request.Context(), c.Param("id"), reportsvc.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Charts:      req.Charts,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Finalize performs the explicit draft -> finalized transition.
func (h *ReportHandler) Finalize(c *gin.Context) {
	report, err := h.reports.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type exportReportRequest struct {
	Format           models.ExportFormat `json:"format"`
	IncludeCharts    *bool               `json:"include_charts"`
	IncludeLogo      *bool               `json:"include_logo"`
	IncludeSignature *bool               `json:"include_signature"`
}

var formatContentTypes = map[models.ExportFormat]string{
	models.FormatPDF:  "application/pdf",
	models.FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	models.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Export renders the report and records the export. With ?download=true the
// response body is the document itself instead of the export record.
func (h *ReportHandler) Export(c *gin.Context) {
	req := exportReportRequest{Format: models.FormatPDF}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	if !req.Format.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported export format"})
		return
	}

	opts := models.DefaultExportOptions()
	if req.IncludeCharts != nil {
		opts.IncludeCharts = *req.IncludeCharts
	}
	if req.IncludeLogo != nil {
		opts.IncludeLogo = *req.IncludeLogo
	}
	if req.IncludeSignature != nil {
		opts.IncludeSignature = *req.IncludeSignature
	}

	result, err := h.exports.ExportReport(c.Request.Context(), c.Param("id"), req.Format, opts)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment; filename="+result.Export.ID+"."+string(req.Format))
		c.Data(http.StatusOK, formatContentTypes[req.Format], result.Bytes)
		return
	}

	c.JSON(http.StatusCreated, result.Export)
}

// ListExports returns a report's export history.
func (h *ReportHandler) ListExports(c *gin.Context) {
	exports, err := h.reports.Exports(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exports": exports})
}

// respondError maps the domain error taxonomy onto HTTP statuses. Internal
// invariant violations stay distinguishable from caller errors in both the
// status and the log line.
func (h *ReportHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrReportNotFound), errors.Is(err, models.ErrUnknownProvince):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidChartSpec):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrCorruptChartData):
		h.logger.Error("chart data invariant violated", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal chart rendering failure"})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
