package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYearRange(t *testing.T) {
	assert.True(t, YearRange{Start: 2020, End: 2023}.Valid())
	assert.True(t, YearRange{Start: 2021, End: 2021}.Valid())
	assert.False(t, YearRange{Start: 2023, End: 2020}.Valid())
	assert.False(t, YearRange{}.Valid())

	assert.Equal(t, []int{2020, 2021, 2022}, YearRange{Start: 2020, End: 2022}.Years())
	assert.Nil(t, YearRange{Start: 2022, End: 2020}.Years())
}

func TestForestLossSeriesCovers(t *testing.T) {
	series := &ForestLossSeries{
		Range: YearRange{Start: 2020, End: 2022},
		Points: []ForestLossPoint{
			{Year: 2020, HectaresLost: 100},
			{Year: 2021, HectaresLost: 200},
			{Year: 2022, HectaresLost: 300},
		},
	}

	assert.True(t, series.Covers(YearRange{Start: 2020, End: 2022}))
	assert.True(t, series.Covers(YearRange{Start: 2021, End: 2021}))
	assert.False(t, series.Covers(YearRange{Start: 2020, End: 2023}))
	assert.False(t, series.Covers(YearRange{Start: 2023, End: 2020}))

	var nilSeries *ForestLossSeries
	assert.False(t, nilSeries.Covers(YearRange{Start: 2020, End: 2020}))
}

func TestForestLossSeriesTotalLoss(t *testing.T) {
	series := &ForestLossSeries{
		Points: []ForestLossPoint{
			{Year: 2020, HectaresLost: 100.5},
			{Year: 2021, HectaresLost: 199.5},
		},
	}
	assert.InDelta(t, 300.0, series.TotalLoss(), 1e-9)

	var nilSeries *ForestLossSeries
	assert.Zero(t, nilSeries.TotalLoss())
}
