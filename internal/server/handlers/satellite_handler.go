package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jean1991/creditcarbon/internal/domain/models"
	"github.com/jean1991/creditcarbon/pkg/clients/gfw"
)

// Default reporting window when the caller does not narrow it.
const (
	defaultStartYear = 2020
	defaultEndYear   = 2023
)

// SatelliteHandler serves the province registry and forest-loss data
// endpoints.
type SatelliteHandler struct {
	satellite gfw.Client
	logger    *zap.Logger
}

// NewSatelliteHandler constructs the HTTP handler adapter.
func NewSatelliteHandler(satellite gfw.Client, logger *zap.Logger) *SatelliteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SatelliteHandler{satellite: satellite, logger: logger}
}

// ListProvinces returns the full DRC province registry.
func (h *SatelliteHandler) ListProvinces(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"provinces": models.Provinces()})
}

// GetForestLoss returns the forest-loss series for one province.
func (h *SatelliteHandler) GetForestLoss(c *gin.Context) {
	province, err := models.LookupProvince(c.Param("province"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	span := models.YearRange{Start: defaultStartYear, End: defaultEndYear}
	if v := c.Query("start_year"); v != "" {
		if span.Start, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_year must be an integer"})
			return
		}
	}
	if v := c.Query("end_year"); v != "" {
		if span.End, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_year must be an integer"})
			return
		}
	}
	if !span.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year range"})
		return
	}

	series, err := h.satellite.Fetch(c.Request.Context(), province, span)
	if err != nil {
		if errors.Is(err, models.ErrUnknownProvince) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed fetching forest loss data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch satellite data"})
		return
	}

	c.JSON(http.StatusOK, series)
}
