package domain

import "time"

// TraceAmount is the fixed value substituted for "Trace" rainfall readings:
// precipitation observed but below the 0.05 mm measurable threshold.
const TraceAmount = 0.01

// Variant identifies the shape of the input dataset.
type Variant string

const (
	// VariantGrid is the synthetic monthly grid: one row per
	// (year, month, location) with latitude/longitude columns.
	VariantGrid Variant = "grid"
	// VariantStation is the HKO daily record layout: one row per day
	// for a single implicit station.
	VariantStation Variant = "station"
)

// RainfallRecord is a single validated measurement. For the grid variant the
// amount is already a monthly value for one location; for the station variant
// it is a daily reading (Day set, Lat/Lon zero).
type RainfallRecord struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Day      int     `json:"day,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
	AmountMM float64 `json:"amount_mm"`
	City     string  `json:"city,omitempty"`
}

// MonthKey identifies one calendar month.
type MonthKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Before reports whether k is chronologically earlier than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Next returns the following calendar month.
func (k MonthKey) Next() MonthKey {
	if k.Month == 12 {
		return MonthKey{Year: k.Year + 1, Month: 1}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// String renders the key as "2020-07".
func (k MonthKey) String() string {
	return monthKeyString(k.Year, k.Month)
}

// MonthlyAggregate is one month's total rainfall, derived from the raw rows.
// ZeroFilled marks months that had no source rows and were inserted to keep
// the animation timeline contiguous.
type MonthlyAggregate struct {
	MonthKey
	TotalMM    float64 `json:"total_mm"`
	Rows       int     `json:"rows"`
	ZeroFilled bool    `json:"zero_filled,omitempty"`
}

// CellReading is one grid location's rainfall for a given month, used to
// place scatter points on the map.
type CellReading struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	AmountMM float64 `json:"amount_mm"`
	City     string  `json:"city,omitempty"`
}

// Summary describes the loaded dataset for the startup log and /stats.
type Summary struct {
	GeneratedAt   time.Time        `json:"generated_at"`
	Variant       Variant          `json:"variant"`
	Records       int              `json:"records"`
	Months        int              `json:"months"`
	FirstMonth    MonthKey         `json:"first_month"`
	LastMonth     MonthKey         `json:"last_month"`
	Locations     int              `json:"locations,omitempty"`
	MinMonthlyMM  float64          `json:"min_monthly_mm"`
	MaxMonthlyMM  float64          `json:"max_monthly_mm"`
	MeanMonthlyMM float64          `json:"mean_monthly_mm"`
	Wettest       MonthlyAggregate `json:"wettest"`
	Driest        MonthlyAggregate `json:"driest"`
}
