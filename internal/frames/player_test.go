package frames_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/rainfall-atlas/internal/frames"
	"github.com/couchcryptid/rainfall-atlas/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInterval = 1500 * time.Millisecond

func testFrames(n int) []frames.Frame {
	fs := make([]frames.Frame, n)
	for i := range fs {
		fs[i] = frames.Frame{Index: i, Kind: frames.KindBars, Year: 2000 + i}
	}
	return fs
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func startPlayer(t *testing.T, p *frames.Player) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	return func() {
		cancelCtx()
		require.NoError(t, <-done)
	}
}

func waitForIndex(t *testing.T, p *frames.Player, want int) {
	t.Helper()
	require.Eventually(t, func() bool { return p.CurrentIndex() == want },
		time.Second, time.Millisecond, "player never reached frame %d", want)
}

func TestPlayerAdvancesAndLoops(t *testing.T) {
	fc := clockwork.NewFakeClock()
	p := frames.NewPlayer(testFrames(3), testInterval, fc, testLogger(), observability.NewMetricsForTesting())

	stop := startPlayer(t, p)
	defer stop()

	fc.BlockUntil(1)
	assert.Equal(t, 0, p.CurrentIndex())
	assert.Equal(t, frames.StatePlaying, p.State())

	fc.Advance(testInterval)
	waitForIndex(t, p, 1)

	fc.Advance(testInterval)
	waitForIndex(t, p, 2)

	// Wraps around modulo the frame count.
	fc.Advance(testInterval)
	waitForIndex(t, p, 0)
	assert.Equal(t, 2000, p.Current().Year)
}

func TestPlayerSpeedControl(t *testing.T) {
	fc := clockwork.NewFakeClock()
	p := frames.NewPlayer(testFrames(4), testInterval, fc, testLogger(), observability.NewMetricsForTesting())

	require.Error(t, p.SetSpeed(5))
	require.NoError(t, p.SetSpeed(3))
	assert.Equal(t, 3.0, p.Speed())

	stop := startPlayer(t, p)
	defer stop()

	fc.BlockUntil(1)
	// At 3x the first tick arrives after a third of the base interval.
	fc.Advance(testInterval / 3)
	waitForIndex(t, p, 1)
}

func TestPlayerPauseResume(t *testing.T) {
	fc := clockwork.NewFakeClock()
	p := frames.NewPlayer(testFrames(3), testInterval, fc, testLogger(), observability.NewMetricsForTesting())

	stop := startPlayer(t, p)
	defer stop()

	fc.BlockUntil(1)
	fc.Advance(testInterval)
	waitForIndex(t, p, 1)

	p.Pause()
	assert.Equal(t, frames.StatePaused, p.State())

	// Ticks while paused must not advance the frame.
	fc.Advance(testInterval)
	fc.BlockUntil(1)
	fc.Advance(testInterval)
	fc.BlockUntil(1)
	assert.Equal(t, 1, p.CurrentIndex())

	p.Resume()
	assert.Equal(t, frames.StatePlaying, p.State())
	fc.Advance(testInterval)
	waitForIndex(t, p, 2)
}

func TestPlayerReadiness(t *testing.T) {
	fc := clockwork.NewFakeClock()
	p := frames.NewPlayer(testFrames(1), testInterval, fc, testLogger(), observability.NewMetricsForTesting())

	require.Error(t, p.CheckReadiness(context.Background()))
	assert.Equal(t, frames.StateIdle, p.State())

	stop := startPlayer(t, p)
	fc.BlockUntil(1)
	require.NoError(t, p.CheckReadiness(context.Background()))
	stop()

	// Readiness survives shutdown; the last frame stays visible.
	require.NoError(t, p.CheckReadiness(context.Background()))
	assert.Equal(t, frames.StateIdle, p.State())
}

func TestPlayerEmptyFrames(t *testing.T) {
	p := frames.NewPlayer(nil, testInterval, clockwork.NewRealClock(), testLogger(), observability.NewMetricsForTesting())
	require.Error(t, p.Run(context.Background()))
	assert.Equal(t, 0, p.FrameCount())
}
