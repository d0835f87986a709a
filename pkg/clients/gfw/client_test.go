package gfw

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jean1991/creditcarbon/internal/config"
	"github.com/jean1991/creditcarbon/internal/domain/models"
)

var testProvince = models.Province{Name: "Équateur", AdminCode: "CD-EQ", GFWAdminID: "CD.4"}

func newTestClient(baseURL string) *APIClient {
	return NewClient(config.GFWConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, nil)
}

func TestFetch_RealProvider(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/dataset/umd_tree_cover_loss/latest/query", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("sql"), "adm1 = 'CD.4'")
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[
			{"year":2021,"loss_area_ha":850.5},
			{"year":2020,"loss_area_ha":1200.0},
			{"year":2022,"loss_area_ha":930.25}
		]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	series, err := client.Fetch(context.Background(), testProvince, models.YearRange{Start: 2020, End: 2022})
	require.NoError(t, err)

	assert.Equal(t, models.SourceGFW, series.Source)
	assert.Equal(t, testProvince, series.Province)
	require.Len(t, series.Points, 3)
	// Points come back sorted by year regardless of provider order.
	assert.Equal(t, models.ForestLossPoint{Year: 2020, HectaresLost: 1200.0}, series.Points[0])
	assert.Equal(t, models.ForestLossPoint{Year: 2021, HectaresLost: 850.5}, series.Points[1])
	assert.Equal(t, models.ForestLossPoint{Year: 2022, HectaresLost: 930.25}, series.Points[2])
	assert.Equal(t, int64(1), calls.Load())
}

func TestFetch_CachesSuccessfulResults(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"year":2020,"loss_area_ha":500}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	span := models.YearRange{Start: 2020, End: 2020}

	first, err := client.Fetch(context.Background(), testProvince, span)
	require.NoError(t, err)
	second, err := client.Fetch(context.Background(), testProvince, span)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load(), "second fetch should be served from cache")

	// A different span misses the cache.
	_, err = client.Fetch(context.Background(), testProvince, models.YearRange{Start: 2019, End: 2020})
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetch_SanitizesProviderRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Duplicate years, a negative value and an out-of-range year.
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[
			{"year":2020,"loss_area_ha":100},
			{"year":2020,"loss_area_ha":50},
			{"year":2021,"loss_area_ha":-10},
			{"year":2021,"loss_area_ha":70},
			{"year":2035,"loss_area_ha":999}
		]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	series, err := client.Fetch(context.Background(), testProvince, models.YearRange{Start: 2020, End: 2021})
	require.NoError(t, err)

	require.Len(t, series.Points, 2)
	assert.Equal(t, models.ForestLossPoint{Year: 2020, HectaresLost: 150}, series.Points[0])
	assert.Equal(t, models.ForestLossPoint{Year: 2021, HectaresLost: 70}, series.Points[1])
}

func TestFetch_FallsBackToSimulatedSeries(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	span := models.YearRange{Start: 2020, End: 2023}

	series, err := client.Fetch(context.Background(), testProvince, span)
	require.NoError(t, err, "provider outages must not surface as errors")
	assert.Equal(t, int64(2), calls.Load(), "one retry before falling back")

	assert.Equal(t, models.SourceMock, series.Source)
	require.Len(t, series.Points, 4)
	for i, p := range series.Points {
		assert.Equal(t, 2020+i, p.Year)
		assert.GreaterOrEqual(t, p.HectaresLost, 0.0)
		assert.Less(t, p.HectaresLost, 50000.0)
	}
}

func TestFetch_SimulatedSeriesIsDeterministic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	span := models.YearRange{Start: 2020, End: 2022}

	first, err := client.Fetch(context.Background(), testProvince, span)
	require.NoError(t, err)
	second, err := client.Fetch(context.Background(), testProvince, span)
	require.NoError(t, err)

	assert.Equal(t, first.Points, second.Points)

	// Different provinces get different curves.
	other := models.Province{Name: "Tshopo", AdminCode: "CD-TO", GFWAdminID: "CD.25"}
	third, err := client.Fetch(context.Background(), other, span)
	require.NoError(t, err)
	assert.NotEqual(t, first.Points, third.Points)
}

func TestFetch_RejectsBadInput(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0")

	_, err := client.Fetch(context.Background(), models.Province{Name: "nowhere"}, models.YearRange{Start: 2020, End: 2021})
	assert.ErrorIs(t, err, models.ErrUnknownProvince)

	_, err = client.Fetch(context.Background(), testProvince, models.YearRange{Start: 2023, End: 2020})
	assert.Error(t, err)
}

func TestFetch_DecodesWithoutContentTypeHeader(t *testing.T) {
	// net/http sniffs a bare JSON body as text/plain; real rows must still
	// be decoded rather than degrading to the simulated fallback.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, `{"data":[{"year":2020,"loss_area_ha":321.5}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	series, err := client.Fetch(context.Background(), testProvince, models.YearRange{Start: 2020, End: 2020})
	require.NoError(t, err)

	assert.Equal(t, models.SourceGFW, series.Source)
	require.Len(t, series.Points, 1)
	assert.Equal(t, models.ForestLossPoint{Year: 2020, HectaresLost: 321.5}, series.Points[0])
}

func TestFetch_EmptyResultFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	series, err := client.Fetch(context.Background(), testProvince, models.YearRange{Start: 2020, End: 2020})
	require.NoError(t, err)
	assert.Equal(t, models.SourceMock, series.Source)
}
