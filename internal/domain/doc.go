// Package domain models rainfall measurements and their monthly aggregation.
//
// # Data Sources
//
// Two CSV layouts are supported:
//
// Grid variant: synthetic monthly values for a set of world locations,
//
//	year,month,latitude,longitude,rainfall[,city]
//	1997,7,51.5074,-0.1278,84.2,London
//
// Station variant: Hong Kong Observatory daily records. The published file
// carries two preamble lines before the header, then one row per day:
//
//	Year,Month,Day,Value(mm),Completeness
//	1997,7,14,Trace,C
//
// # Data-Quality Conventions
//
// Trace rainfall:
//
//	"Trace" (or the Chinese form used in some HKO exports) marks precipitation
//	observed but below the 0.05 mm measurable threshold. It is normalized to
//	the fixed constant [TraceAmount] (0.01 mm) so trace days still contribute
//	a nonzero amount to monthly totals.
//
// Missing observations:
//
//	"***" and empty cells mark days with no usable reading. These rows are
//	dropped, as are rows with non-numeric fields, months outside 1..12, or
//	negative amounts. Dropping (rather than zero-filling) malformed rows keeps
//	monthly totals a pure function of the surviving measurements; only months
//	absent from the timeline are zero-filled, so the animation frame sequence
//	stays contiguous from the first to the last observed month.
//
// # Color Buckets
//
// Monthly totals map to discrete display colors with fixed thresholds. A value
// equal to a threshold lands in the higher bucket:
//
//	< 50 mm    dry       #FFD700
//	50-200 mm  light     #87CEEB
//	200-400 mm moderate  #1E90FF
//	400-600 mm heavy     #000080
//	> 600 mm   extreme   #000000
//
// See [BucketFor].
package domain
