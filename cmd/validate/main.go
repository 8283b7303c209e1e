// Command validate performs data integrity checks over a rainfall CSV: row
// survival, aggregation conservation, timeline continuity, color bucket
// ordering, and frame sequence coverage. It exercises the same loader and
// aggregation code the viewer runs.
//
// Usage:
//
//	go run ./cmd/validate -csv data/rainfall_data.csv
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/couchcryptid/rainfall-atlas/internal/domain"
	"github.com/couchcryptid/rainfall-atlas/internal/frames"
	"github.com/couchcryptid/rainfall-atlas/internal/ingest"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to rainfall CSV file")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath string) int {
	fmt.Println("=== Rainfall Dataset Integrity Validation ===")
	fmt.Println()

	logger := slog.New(slog.DiscardHandler)
	dataset, err := ingest.Load(csvPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}

	series := domain.AggregateMonthly(dataset.Records)
	frameSeq := frames.Build(dataset.Variant, series)

	phases := []*phase{
		validateRows(dataset),
		validateAggregation(dataset, series),
		validateTimeline(series),
		validateBuckets(),
		validateFrames(dataset.Variant, series, frameSeq),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d read, %d dropped, %d trace, %d locations, %d months, %d frames\n",
		dataset.Stats.RowsRead, dataset.Stats.RowsDropped, dataset.Stats.TraceRows,
		dataset.Stats.Locations, len(series.Months), len(frameSeq))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateRows checks that surviving records carry sane values.
func validateRows(dataset *ingest.Dataset) *phase {
	p := &phase{name: "Row integrity"}

	if len(dataset.Records) == 0 {
		p.errorf("no surviving records")
		return p
	}
	survived := dataset.Stats.RowsRead - dataset.Stats.RowsDropped
	if survived != len(dataset.Records) {
		p.errorf("stats claim %d surviving rows, got %d records", survived, len(dataset.Records))
	}

	for i, r := range dataset.Records {
		if r.AmountMM < 0 {
			p.errorf("record %d: negative rainfall %.2f mm", i, r.AmountMM)
		}
		if r.Month < 1 || r.Month > 12 {
			p.errorf("record %d: month %d out of range", i, r.Month)
		}
		if r.Lat < -90 || r.Lat > 90 {
			p.errorf("record %d: latitude %.4f out of range", i, r.Lat)
		}
		if r.Lon < -180 || r.Lon > 180 {
			p.errorf("record %d: longitude %.4f out of range", i, r.Lon)
		}
	}
	return p
}

// validateAggregation checks conservation: the series total must equal the
// sum of surviving raw rows, and no monthly total may be negative.
func validateAggregation(dataset *ingest.Dataset, series *domain.Series) *phase {
	p := &phase{name: "Aggregation conservation"}

	var rawTotal float64
	for _, r := range dataset.Records {
		rawTotal += r.AmountMM
	}

	seriesTotal := series.TotalMM()
	if math.Abs(seriesTotal-rawTotal) > 1e-6 {
		p.errorf("series total %.6f mm != raw total %.6f mm", seriesTotal, rawTotal)
	}

	for _, m := range series.Months {
		if m.TotalMM < 0 {
			p.errorf("%s: negative monthly total %.2f mm", m.MonthKey, m.TotalMM)
		}
		if m.ZeroFilled && m.TotalMM != 0 {
			p.errorf("%s: zero-filled month carries %.2f mm", m.MonthKey, m.TotalMM)
		}
		if m.ZeroFilled && m.Rows != 0 {
			p.errorf("%s: zero-filled month counts %d rows", m.MonthKey, m.Rows)
		}
	}
	return p
}

// validateTimeline checks that months are strictly ascending and contiguous
// from the first to the last observed month.
func validateTimeline(series *domain.Series) *phase {
	p := &phase{name: "Timeline continuity"}

	if len(series.Months) == 0 {
		p.errorf("empty series")
		return p
	}

	prev := series.Months[0].MonthKey
	for _, m := range series.Months[1:] {
		if want := prev.Next(); m.MonthKey != want {
			p.errorf("gap in timeline: %s follows %s, want %s", m.MonthKey, prev, want)
		}
		prev = m.MonthKey
	}
	return p
}

// validateBuckets sweeps monthly amounts and checks bucket assignment never
// decreases as rainfall increases.
func validateBuckets() *phase {
	p := &phase{name: "Color bucket ordering"}

	prev := domain.BucketFor(0)
	for mm := 0.0; mm <= 1400; mm += 0.1 {
		b := domain.BucketFor(mm)
		if b < prev {
			p.errorf("bucket regressed at %.1f mm: %s after %s", mm, b.Label(), prev.Label())
		}
		prev = b
	}

	// Boundary spot checks.
	if domain.BucketFor(49.9) != domain.BucketDry {
		p.errorf("49.9 mm should stay in the driest bucket")
	}
	if domain.BucketFor(50.0) != domain.BucketLight {
		p.errorf("50.0 mm should move to the next bucket")
	}
	return p
}

// validateFrames checks frame coverage: one frame per month for scatter, one
// per year for bars, matching the series span.
func validateFrames(variant domain.Variant, series *domain.Series, frameSeq []frames.Frame) *phase {
	p := &phase{name: "Frame sequence coverage"}

	want := len(series.Months)
	if variant == domain.VariantStation {
		want = len(series.Years())
	}
	if len(frameSeq) != want {
		p.errorf("got %d frames, want %d", len(frameSeq), want)
	}

	for i, f := range frameSeq {
		if f.Index != i {
			p.errorf("frame %d carries index %d", i, f.Index)
		}
		if f.Title == "" {
			p.errorf("frame %d has no title", i)
		}
	}
	return p
}
