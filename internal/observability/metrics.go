package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// loader and the animation loop.
type Metrics struct {
	RowsLoaded       prometheus.Counter
	RowsDropped      prometheus.Counter
	TraceRows        prometheus.Counter
	MonthsZeroFilled prometheus.Counter

	FramesAdvanced   prometheus.Counter
	AnimationPlaying prometheus.Gauge
	PlaybackSpeed    prometheus.Gauge

	FrameRenderDuration prometheus.Histogram
	FrameCache          *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsDropped,
		m.TraceRows,
		m.MonthsZeroFilled,
		m.FramesAdvanced,
		m.AnimationPlaying,
		m.PlaybackSpeed,
		m.FrameRenderDuration,
		m.FrameCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so parallel
// tests don't hit "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainviz",
			Name:      "rows_loaded_total",
			Help:      "CSV rows that survived validation.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainviz",
			Name:      "rows_dropped_total",
			Help:      "CSV rows dropped for malformed or missing fields.",
		}),
		TraceRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainviz",
			Name:      "trace_rows_total",
			Help:      "Rows whose trace sentinel was normalized to 0.01 mm.",
		}),
		MonthsZeroFilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainviz",
			Name:      "months_zero_filled_total",
			Help:      "Months inserted with zero rainfall to keep the timeline contiguous.",
		}),
		FramesAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainviz",
			Name:      "frames_advanced_total",
			Help:      "Animation frame transitions, including loop wraparounds.",
		}),
		AnimationPlaying: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rainviz",
			Name:      "animation_playing",
			Help:      "1 while the animation loop is running, 0 otherwise.",
		}),
		PlaybackSpeed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rainviz",
			Name:      "playback_speed",
			Help:      "Current playback speed multiplier.",
		}),
		FrameRenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rainviz",
			Name:      "frame_render_duration_seconds",
			Help:      "Time spent rendering one SVG frame.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		FrameCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainviz",
			Name:      "frame_cache_total",
			Help:      "Rendered-frame cache lookups by result.",
		}, []string{"result"}),
	}
}
