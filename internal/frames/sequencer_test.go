package frames

import (
	"testing"

	"github.com/couchcryptid/rainfall-atlas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScatter(t *testing.T) {
	series := domain.AggregateMonthly([]domain.RainfallRecord{
		{Year: 2020, Month: 1, Lat: 51.5, Lon: -0.1, AmountMM: 100, City: "London"},
		{Year: 2020, Month: 3, Lat: 51.5, Lon: -0.1, AmountMM: 10, City: "London"},
	})

	frames := Build(domain.VariantGrid, series)

	// One frame per spanned month, including the zero-filled gap.
	require.Len(t, frames, 3)
	assert.Equal(t, KindScatter, frames[0].Kind)
	assert.Equal(t, "Monthly Rainfall: Jan 2020", frames[0].Title)
	assert.Equal(t, 1, frames[1].Index)

	// The gap month renders as an empty map.
	feb := frames[1]
	assert.Equal(t, 2, feb.Month)
	assert.Empty(t, feb.Points)

	jan := frames[0]
	require.Len(t, jan.Points, 1)
	assert.Equal(t, domain.BucketLight, jan.Points[0].Bucket)
	assert.Equal(t, "London", jan.Points[0].City)
	assert.Greater(t, jan.Points[0].Radius, 0.0)
}

func TestBuildScatterFrameCountSpansGaps(t *testing.T) {
	// Nov 2019 through Feb 2021 inclusive: 16 distinct (year, month) pairs.
	series := domain.AggregateMonthly([]domain.RainfallRecord{
		{Year: 2019, Month: 11, Lat: 1, Lon: 1, AmountMM: 5},
		{Year: 2021, Month: 2, Lat: 1, Lon: 1, AmountMM: 5},
	})

	frames := Build(domain.VariantGrid, series)
	assert.Len(t, frames, 16)
}

func TestBuildBars(t *testing.T) {
	series := domain.AggregateMonthly([]domain.RainfallRecord{
		{Year: 1997, Month: 6, Day: 1, AmountMM: 300},
		{Year: 1997, Month: 6, Day: 2, AmountMM: 350},
		{Year: 1997, Month: 8, Day: 9, AmountMM: 40},
		{Year: 1998, Month: 2, Day: 1, AmountMM: 12},
	})

	frames := Build(domain.VariantStation, series)

	require.Len(t, frames, 2)
	f := frames[0]
	assert.Equal(t, KindBars, f.Kind)
	assert.Equal(t, 1997, f.Year)
	assert.Equal(t, "Monthly Rainfall Totals, 1997", f.Title)
	require.Len(t, f.Bars, 12)

	// June holds both daily rows summed; months with no data are zero bars.
	assert.Equal(t, 650.0, f.Bars[5].MM)
	assert.Equal(t, domain.BucketExtreme, f.Bars[5].Bucket)
	assert.Equal(t, 0.0, f.Bars[0].MM)
	assert.Equal(t, domain.BucketDry, f.Bars[0].Bucket)

	assert.InDelta(t, 690, f.Stats.TotalMM, 1e-9)
	assert.InDelta(t, 690.0/12, f.Stats.MeanMM, 1e-9)
	assert.Equal(t, 6, f.Stats.WettestMonth)
	assert.Equal(t, 650.0, f.Stats.WettestMM)
	assert.Equal(t, 1, f.Stats.DriestMonth)
	assert.Equal(t, 0.0, f.Stats.DriestMM)

	assert.Equal(t, 1998, frames[1].Year)
	assert.Equal(t, 1, frames[1].Index)
}

func TestPointRadius(t *testing.T) {
	// Monotonic within the clamp range, flat outside it.
	assert.Equal(t, pointRadius(0), pointRadius(5))
	assert.Less(t, pointRadius(20), pointRadius(60))
	assert.Equal(t, pointRadius(100), pointRadius(900))
	assert.Greater(t, pointRadius(0), 0.0)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Jan", MonthName(1))
	assert.Equal(t, "Dec", MonthName(12))
	assert.Equal(t, "?", MonthName(0))
	assert.Equal(t, "?", MonthName(13))
}
