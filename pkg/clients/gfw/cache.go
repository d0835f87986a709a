package gfw

import (
	"sync"

	"github.com/jean1991/creditcarbon/internal/domain/models"
)

// seriesCache is a process-lifetime cache of successful provider fetches,
// keyed by (adminCode, yearRange). The key space is small (29 provinces by
// a handful of year ranges) so entries are never evicted. Safe for
// concurrent use from simultaneous export calls.
type seriesCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*models.ForestLossSeries
}

type cacheKey struct {
	adminCode  string
	start, end int
}

func newSeriesCache() *seriesCache {
	return &seriesCache{entries: make(map[cacheKey]*models.ForestLossSeries)}
}

func (c *seriesCache) get(adminCode string, span models.YearRange) (*models.ForestLossSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	series, ok := c.entries[cacheKey{adminCode: adminCode, start: span.Start, end: span.End}]
	if !ok {
		return nil, false
	}
	return copySeries(series), true
}

// put stores a series unless a concurrent fetch already cached one for the
// same key. Cached entries are never replaced.
func (c *seriesCache) put(adminCode string, span models.YearRange, series *models.ForestLossSeries) {
	key := cacheKey{adminCode: adminCode, start: span.Start, end: span.End}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}
	c.entries[key] = copySeries(series)
}

// copySeries keeps cache entries immutable regardless of what callers do
// with the returned series.
func copySeries(s *models.ForestLossSeries) *models.ForestLossSeries {
	out := *s
	out.Points = make([]models.ForestLossPoint, len(s.Points))
	copy(out.Points, s.Points)
	return &out
}
