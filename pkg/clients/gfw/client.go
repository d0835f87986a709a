package gfw

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/jean1991/creditcarbon/internal/config"
	"github.com/jean1991/creditcarbon/internal/domain/models"
)

const lossQueryTemplate = `SELECT year, SUM(area__ha) AS loss_area_ha FROM data ` +
	`WHERE iso = 'COD' AND adm1 = '%s' AND year >= %d AND year <= %d ` +
	`GROUP BY year ORDER BY year`

// Client exposes the satellite data operations used by the application.
type Client interface {
	Fetch(ctx context.Context, province models.Province, span models.YearRange) (*models.ForestLossSeries, error)
}

// APIClient is a resty-backed Global Forest Watch client. Provider outages,
// malformed responses and rate limits are all recovered locally with a
// deterministic simulated series; only bad input reaches the caller as an
// error. Successful real fetches are cached for the process lifetime.
type APIClient struct {
	httpClient *resty.Client
	cache      *seriesCache
	logger     *zap.Logger
}

// NewClient builds a GFW API client using the provided configuration values.
func NewClient(cfg config.GFWConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	if cfg.APIKey != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey))
	}

	return &APIClient{
		httpClient: restyClient,
		cache:      newSeriesCache(),
		logger:     logger,
	}
}

// lossResponse mirrors the GFW data API query result.
type lossResponse struct {
	Data []struct {
		Year       int     `json:"year"`
		LossAreaHa float64 `json:"loss_area_ha"`
	} `json:"data"`
}

// Fetch returns the yearly tree-cover loss series for a province over the
// closed year interval. The returned points are sorted by strictly
// increasing year with no duplicates and carry non-negative values.
func (c *APIClient) Fetch(ctx context.Context, province models.Province, span models.YearRange) (*models.ForestLossSeries, error) {
	if province.GFWAdminID == "" || province.AdminCode == "" {
		return nil, fmt.Errorf("%w: province %q carries no admin codes", models.ErrUnknownProvince, province.Name)
	}
	if !span.Valid() {
		return nil, fmt.Errorf("invalid year range [%d, %d]", span.Start, span.End)
	}

	if series, ok := c.cache.get(province.AdminCode, span); ok {
		return series, nil
	}

	points, err := c.queryProvider(ctx, province, span)
	if err != nil {
		// Retry exactly once to bound latency, then fall back.
		points, err = c.queryProvider(ctx, province, span)
	}
	if err != nil {
		c.logger.Warn("provider unavailable, serving simulated series",
			zap.String("province", province.Name),
			zap.Int("start_year", span.Start),
			zap.Int("end_year", span.End),
			zap.Error(err))
		return simulatedSeries(province, span), nil
	}

	series := &models.ForestLossSeries{
		Province: province,
		Range:    span,
		Points:   points,
		Source:   models.SourceGFW,
	}
	c.cache.put(province.AdminCode, span, series)

	c.logger.Debug("forest loss series fetched",
		zap.String("province", province.Name),
		zap.Int("points", len(points)))

	return series, nil
}

func (c *APIClient) queryProvider(ctx context.Context, province models.Province, span models.YearRange) ([]models.ForestLossPoint, error) {
	result := new(lossResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("sql", fmt.Sprintf(lossQueryTemplate, province.GFWAdminID, span.Start, span.End)).
		SetResult(result).
		// Decode the body as JSON even when the provider omits the
		// Content-Type header; otherwise zero rows would masquerade as an
		// empty result and trigger the mock fallback.
		ForceContentType("application/json").
		Get("/dataset/umd_tree_cover_loss/latest/query")
	if err != nil {
		return nil, fmt.Errorf("query forest loss: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("gfw api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}

	// Aggregate duplicate years and drop negatives so the series invariants
	// hold regardless of what the provider returned.
	byYear := make(map[int]float64, len(result.Data))
	for _, row := range result.Data {
		if row.Year < span.Start || row.Year > span.End || row.LossAreaHa < 0 {
			continue
		}
		byYear[row.Year] += row.LossAreaHa
	}
	if len(byYear) == 0 {
		return nil, fmt.Errorf("gfw api returned no rows for %s", province.GFWAdminID)
	}

	points := make([]models.ForestLossPoint, 0, len(byYear))
	for year, loss := range byYear {
		points = append(points, models.ForestLossPoint{Year: year, HectaresLost: loss})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	return points, nil
}

// simulatedSeries synthesizes a reproducible forest-loss series. Values are
// seeded from (adminCode, year) so repeated fallback calls return identical
// data, and stay within [0, 50000) hectares.
func simulatedSeries(province models.Province, span models.YearRange) *models.ForestLossSeries {
	years := span.Years()
	points := make([]models.ForestLossPoint, 0, len(years))
	for _, year := range years {
		points = append(points, models.ForestLossPoint{
			Year:         year,
			HectaresLost: simulatedLoss(province.AdminCode, year),
		})
	}
	return &models.ForestLossSeries{
		Province: province,
		Range:    span,
		Points:   points,
		Source:   models.SourceMock,
	}
}

func simulatedLoss(adminCode string, year int) float64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d", adminCode, year)
	base := float64(h.Sum64() % 45000)
	// A small year-dependent drift keeps the curve plausible without making
	// it strictly monotonic. base + drift stays below 50000.
	drift := float64(year%7) * 500
	return base + drift
}
