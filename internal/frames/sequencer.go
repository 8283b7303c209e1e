// Package frames turns the aggregated monthly series into an ordered list of
// drawable frames and drives playback through them on a fixed-rate timer.
package frames

import (
	"fmt"
	"math"

	"github.com/couchcryptid/rainfall-atlas/internal/domain"
)

// Kind selects how a frame is drawn.
type Kind string

const (
	// KindScatter is one map frame per (year, month) with a point per location.
	KindScatter Kind = "scatter"
	// KindBars is one chart frame per year with twelve monthly bars.
	KindBars Kind = "bars"
)

// BarAxisMaxMM is the fixed y-axis limit for bar frames, chosen to fit the
// wettest months on record so the axis never rescales mid-animation.
const BarAxisMaxMM = 1400

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName returns the short English name for a 1-based month.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return "?"
	}
	return monthNames[month-1]
}

// Point is one drawable scatter marker.
type Point struct {
	Lat    float64            `json:"lat"`
	Lon    float64            `json:"lon"`
	MM     float64            `json:"mm"`
	Bucket domain.ColorBucket `json:"bucket"`
	Radius float64            `json:"radius"`
	City   string             `json:"city,omitempty"`
}

// Bar is one drawable monthly bar.
type Bar struct {
	Month  int                `json:"month"`
	MM     float64            `json:"mm"`
	Bucket domain.ColorBucket `json:"bucket"`
}

// YearStats summarizes a bar frame's year for the caption line.
type YearStats struct {
	TotalMM      float64 `json:"total_mm"`
	MeanMM       float64 `json:"mean_mm"`
	WettestMonth int     `json:"wettest_month"`
	WettestMM    float64 `json:"wettest_mm"`
	DriestMonth  int     `json:"driest_month"`
	DriestMM     float64 `json:"driest_mm"`
}

// Frame is one step of the animation, ready to render.
type Frame struct {
	Index int    `json:"index"`
	Kind  Kind   `json:"kind"`
	Year  int    `json:"year"`
	Month int    `json:"month,omitempty"` // scatter frames only
	Title string `json:"title"`

	Points []Point   `json:"points,omitempty"`
	Bars   []Bar     `json:"bars,omitempty"`
	Stats  YearStats `json:"stats,omitempty"`
}

// Build produces the full frame sequence for a series: monthly scatter frames
// for the grid variant, yearly bar frames for the station variant.
func Build(variant domain.Variant, series *domain.Series) []Frame {
	if variant == domain.VariantGrid {
		return buildScatter(series)
	}
	return buildBars(series)
}

// buildScatter emits one frame per month across the whole span, including
// zero-filled months, which render as an empty map.
func buildScatter(series *domain.Series) []Frame {
	frames := make([]Frame, 0, len(series.Months))
	for _, m := range series.Months {
		f := Frame{
			Index: len(frames),
			Kind:  KindScatter,
			Year:  m.Year,
			Month: m.Month,
			Title: fmt.Sprintf("Monthly Rainfall: %s %d", MonthName(m.Month), m.Year),
		}
		for _, cell := range series.CellsFor(m.Year, m.Month) {
			f.Points = append(f.Points, Point{
				Lat:    cell.Lat,
				Lon:    cell.Lon,
				MM:     cell.AmountMM,
				Bucket: domain.BucketFor(cell.AmountMM),
				Radius: pointRadius(cell.AmountMM),
				City:   cell.City,
			})
		}
		frames = append(frames, f)
	}
	return frames
}

// buildBars emits one frame per year with twelve bars; months outside the
// series span are zero bars.
func buildBars(series *domain.Series) []Frame {
	var frames []Frame
	for _, year := range series.Years() {
		f := Frame{
			Index: len(frames),
			Kind:  KindBars,
			Year:  year,
			Title: fmt.Sprintf("Monthly Rainfall Totals, %d", year),
		}

		stats := YearStats{WettestMonth: 1, DriestMonth: 1}
		for month := 1; month <= 12; month++ {
			var mm float64
			if agg, ok := series.Lookup(year, month); ok {
				mm = agg.TotalMM
			}
			f.Bars = append(f.Bars, Bar{Month: month, MM: mm, Bucket: domain.BucketFor(mm)})

			stats.TotalMM += mm
			if mm > stats.WettestMM || month == 1 {
				stats.WettestMonth, stats.WettestMM = month, mm
			}
			if mm < stats.DriestMM || month == 1 {
				stats.DriestMonth, stats.DriestMM = month, mm
			}
		}
		stats.MeanMM = stats.TotalMM / 12
		f.Stats = stats

		frames = append(frames, f)
	}
	return frames
}

// pointRadius sizes a scatter marker so its area grows with rainfall, clamped
// to keep dry months visible and wet months from covering the map.
func pointRadius(mm float64) float64 {
	area := mm * 2
	if area < 20 {
		area = 20
	}
	if area > 200 {
		area = 200
	}
	return 2 * math.Sqrt(area/math.Pi)
}
