// Package ingest loads rainfall CSV files into validated domain records.
//
// Two layouts are recognized from the header row: the synthetic monthly grid
// (year,month,latitude,longitude,rainfall[,city]) and the HKO daily station
// export, which carries up to a few preamble lines before its
// Year,Month,Day,Value(mm),Completeness header. Malformed rows are dropped
// and counted, never fatal; an input with no surviving rows is an error.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/rainfall-atlas/internal/domain"
)

// maxPreambleRows is how deep we scan for a recognizable header row before
// giving up on a file.
const maxPreambleRows = 5

// Stats counts what happened to the input rows during loading.
type Stats struct {
	RowsRead    int
	RowsDropped int
	TraceRows   int
	Locations   int
}

// Dataset is the loaded and validated input.
type Dataset struct {
	Variant domain.Variant
	Records []domain.RainfallRecord
	Stats   Stats
}

// Load opens and parses a rainfall CSV file.
func Load(path string, logger *slog.Logger) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ds, nil
}

// Parse reads CSV content and returns the validated dataset.
func Parse(r io.Reader, logger *slog.Logger) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // preamble lines have fewer fields than data rows
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	headerIdx, cols, variant, err := findHeader(rows)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Variant: variant}
	seen := map[[2]float64]bool{}

	for i, row := range rows[headerIdx+1:] {
		ds.Stats.RowsRead++
		rec, trace, err := parseRow(variant, cols, row)
		if err != nil {
			ds.Stats.RowsDropped++
			logger.Debug("dropping row", "line", headerIdx+i+2, "error", err)
			continue
		}
		if trace {
			ds.Stats.TraceRows++
		}
		if variant == domain.VariantGrid {
			seen[[2]float64{rec.Lat, rec.Lon}] = true
		}
		ds.Records = append(ds.Records, rec)
	}
	ds.Stats.Locations = len(seen)

	if len(ds.Records) == 0 {
		return nil, errors.New("no valid rows in dataset")
	}
	return ds, nil
}

// columns maps logical fields to CSV column positions.
type columns struct {
	year, month, day, lat, lon, rainfall, city int
}

// findHeader scans the first few rows for a header we recognize and picks the
// dataset variant from its columns.
func findHeader(rows [][]string) (int, columns, domain.Variant, error) {
	limit := len(rows)
	if limit > maxPreambleRows {
		limit = maxPreambleRows
	}

	for i := 0; i < limit; i++ {
		cols, variant, ok := matchHeader(rows[i])
		if ok {
			return i, cols, variant, nil
		}
	}
	return 0, columns{}, "", errors.New("no recognizable header row")
}

func matchHeader(row []string) (columns, domain.Variant, bool) {
	cols := columns{year: -1, month: -1, day: -1, lat: -1, lon: -1, rainfall: -1, city: -1}

	for i, h := range row {
		switch normalizeHeader(h) {
		case "year":
			cols.year = i
		case "month":
			cols.month = i
		case "day":
			cols.day = i
		case "latitude", "lat":
			cols.lat = i
		case "longitude", "lon":
			cols.lon = i
		case "rainfall", "value(mm)", "rainfall(mm)", "rainfall_mm":
			cols.rainfall = i
		case "city", "station":
			cols.city = i
		}
	}

	if cols.year < 0 || cols.month < 0 || cols.rainfall < 0 {
		return columns{}, "", false
	}
	if cols.lat >= 0 && cols.lon >= 0 {
		return cols, domain.VariantGrid, true
	}
	if cols.day >= 0 {
		return cols, domain.VariantStation, true
	}
	return columns{}, "", false
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), ""))
}

func parseRow(variant domain.Variant, cols columns, row []string) (domain.RainfallRecord, bool, error) {
	year, month, err := domain.ParseYearMonth(cell(row, cols.year), cell(row, cols.month))
	if err != nil {
		return domain.RainfallRecord{}, false, err
	}
	mm, trace, err := domain.ParseRainfall(cell(row, cols.rainfall))
	if err != nil {
		return domain.RainfallRecord{}, false, err
	}

	rec := domain.RainfallRecord{Year: year, Month: month, AmountMM: mm}

	switch variant {
	case domain.VariantGrid:
		if rec.Lat, err = domain.ParseCoordinate(cell(row, cols.lat), 90); err != nil {
			return domain.RainfallRecord{}, false, err
		}
		if rec.Lon, err = domain.ParseCoordinate(cell(row, cols.lon), 180); err != nil {
			return domain.RainfallRecord{}, false, err
		}
		if cols.city >= 0 {
			rec.City = strings.TrimSpace(cell(row, cols.city))
		}
	case domain.VariantStation:
		day, err := strconv.Atoi(strings.TrimSpace(cell(row, cols.day)))
		if err != nil {
			return domain.RainfallRecord{}, false, fmt.Errorf("parse day: %w", err)
		}
		if day < 1 || day > 31 {
			return domain.RainfallRecord{}, false, fmt.Errorf("day %d out of range", day)
		}
		rec.Day = day
	}

	return rec, trace, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
