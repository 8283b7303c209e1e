package domain

import "sort"

// Series is the chronological monthly rainfall series derived from raw rows.
// Months between the first and last observed key with no source rows are
// present with TotalMM == 0 and ZeroFilled set, so the animation timeline
// never has holes.
type Series struct {
	Months []MonthlyAggregate

	byKey map[MonthKey]int
	cells map[MonthKey][]CellReading
}

// AggregateMonthly groups records by (year, month), summing amounts, and
// zero-fills interior gaps. Grid-variant records are additionally indexed per
// location for scatter frames. Input order does not matter.
func AggregateMonthly(records []RainfallRecord) *Series {
	s := &Series{
		byKey: make(map[MonthKey]int),
		cells: make(map[MonthKey][]CellReading),
	}
	if len(records) == 0 {
		return s
	}

	totals := make(map[MonthKey]*MonthlyAggregate)
	first := MonthKey{Year: records[0].Year, Month: records[0].Month}
	last := first

	for _, r := range records {
		key := MonthKey{Year: r.Year, Month: r.Month}
		agg, ok := totals[key]
		if !ok {
			agg = &MonthlyAggregate{MonthKey: key}
			totals[key] = agg
		}
		agg.TotalMM += r.AmountMM
		agg.Rows++

		// Grid rows are monthly per-location values (no day component)
		// and become scatter points; daily station rows do not.
		if r.Day == 0 {
			s.cells[key] = append(s.cells[key], CellReading{
				Lat:      r.Lat,
				Lon:      r.Lon,
				AmountMM: r.AmountMM,
				City:     r.City,
			})
		}

		if key.Before(first) {
			first = key
		}
		if last.Before(key) {
			last = key
		}
	}

	for key := first; !last.Before(key); key = key.Next() {
		agg, ok := totals[key]
		if !ok {
			agg = &MonthlyAggregate{MonthKey: key, ZeroFilled: true}
		}
		s.byKey[key] = len(s.Months)
		s.Months = append(s.Months, *agg)
	}

	return s
}

// Lookup returns the aggregate for a month, if it falls inside the series span.
func (s *Series) Lookup(year, month int) (MonthlyAggregate, bool) {
	i, ok := s.byKey[MonthKey{Year: year, Month: month}]
	if !ok {
		return MonthlyAggregate{}, false
	}
	return s.Months[i], true
}

// CellsFor returns the per-location readings for a month, sorted by city then
// coordinates for stable rendering. Empty for the station variant.
func (s *Series) CellsFor(year, month int) []CellReading {
	cells := s.cells[MonthKey{Year: year, Month: month}]
	out := make([]CellReading, len(cells))
	copy(out, cells)
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		if out[i].Lat != out[j].Lat {
			return out[i].Lat < out[j].Lat
		}
		return out[i].Lon < out[j].Lon
	})
	return out
}

// Years returns the distinct years covered by the series, ascending.
func (s *Series) Years() []int {
	var years []int
	for _, m := range s.Months {
		if len(years) == 0 || years[len(years)-1] != m.Year {
			years = append(years, m.Year)
		}
	}
	return years
}

// TotalMM sums the whole series. With valid input this equals the sum of all
// surviving raw rows.
func (s *Series) TotalMM() float64 {
	var total float64
	for _, m := range s.Months {
		total += m.TotalMM
	}
	return total
}

// Summarize computes the dataset summary over the series.
func (s *Series) Summarize(variant Variant, records, locations int) Summary {
	sum := Summary{
		GeneratedAt: clock.Now(),
		Variant:     variant,
		Records:     records,
		Months:      len(s.Months),
		Locations:   locations,
	}
	if len(s.Months) == 0 {
		return sum
	}

	sum.FirstMonth = s.Months[0].MonthKey
	sum.LastMonth = s.Months[len(s.Months)-1].MonthKey
	sum.Wettest = s.Months[0]
	sum.Driest = s.Months[0]
	sum.MinMonthlyMM = s.Months[0].TotalMM
	sum.MaxMonthlyMM = s.Months[0].TotalMM

	var total float64
	for _, m := range s.Months {
		total += m.TotalMM
		if m.TotalMM > sum.Wettest.TotalMM {
			sum.Wettest = m
			sum.MaxMonthlyMM = m.TotalMM
		}
		if m.TotalMM < sum.Driest.TotalMM {
			sum.Driest = m
			sum.MinMonthlyMM = m.TotalMM
		}
	}
	sum.MeanMonthlyMM = total / float64(len(s.Months))
	return sum
}
