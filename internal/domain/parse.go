package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// HKO sentinel values. "Trace" (or its Chinese form) marks rainfall below the
// measurable threshold; "***" marks a missing observation.
var traceSentinels = map[string]bool{
	"trace": true,
	"微量":    true,
}

const missingSentinel = "***"

// ParseRainfall converts a raw rainfall cell into millimetres.
// Trace sentinels become TraceAmount and set trace=true. Missing markers,
// empty cells, unparseable values, and negative amounts return an error; the
// caller drops the row.
func ParseRainfall(raw string) (mm float64, trace bool, err error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == missingSentinel {
		return 0, false, fmt.Errorf("missing rainfall value")
	}
	if traceSentinels[strings.ToLower(s)] {
		return TraceAmount, true, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse rainfall %q: %w", raw, err)
	}
	if v < 0 {
		return 0, false, fmt.Errorf("negative rainfall %g", v)
	}
	return v, false, nil
}

// ParseYearMonth validates the year and month cells of a row.
func ParseYearMonth(yearRaw, monthRaw string) (year, month int, err error) {
	year, err = strconv.Atoi(strings.TrimSpace(yearRaw))
	if err != nil {
		return 0, 0, fmt.Errorf("parse year %q: %w", yearRaw, err)
	}
	month, err = strconv.Atoi(strings.TrimSpace(monthRaw))
	if err != nil {
		return 0, 0, fmt.Errorf("parse month %q: %w", monthRaw, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", month)
	}
	return year, month, nil
}

// ParseCoordinate parses a latitude or longitude cell and checks it against
// the given absolute bound (90 for latitude, 180 for longitude).
func ParseCoordinate(raw string, bound float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("parse coordinate %q: %w", raw, err)
	}
	if v < -bound || v > bound {
		return 0, fmt.Errorf("coordinate %g outside ±%g", v, bound)
	}
	return v, nil
}

func monthKeyString(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
