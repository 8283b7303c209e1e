package frames

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/rainfall-atlas/internal/observability"
	"github.com/jonboulle/clockwork"
)

// State is the player's lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
)

// speedSteps are the supported playback multipliers.
var speedSteps = map[float64]bool{1: true, 2: true, 3: true}

// Player steps through the frame sequence on a fixed-rate timer, looping
// indefinitely. The current frame is safe to read concurrently while the
// loop advances it.
type Player struct {
	frames  []Frame
	base    time.Duration
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	mu    sync.Mutex
	idx   int
	speed float64
	state State
	ready bool
}

// NewPlayer creates a player over a frame sequence with the given base
// interval between frames. A nil clock means the wall clock.
func NewPlayer(frames []Frame, interval time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Player {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Player{
		frames:  frames,
		base:    interval,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		speed:   1,
		state:   StateIdle,
	}
}

// Run drives the animation until the context is cancelled. The first frame is
// visible immediately; each tick advances the index modulo the frame count.
func (p *Player) Run(ctx context.Context) error {
	if len(p.frames) == 0 {
		return errors.New("no frames to animate")
	}

	p.mu.Lock()
	p.state = StatePlaying
	p.ready = true
	p.mu.Unlock()

	p.metrics.AnimationPlaying.Set(1)
	p.metrics.PlaybackSpeed.Set(p.Speed())
	defer func() {
		p.metrics.AnimationPlaying.Set(0)
		p.mu.Lock()
		p.state = StateIdle
		p.mu.Unlock()
	}()

	p.logger.Info("animation started", "frames", len(p.frames), "interval", p.base)

	ticker := p.clock.NewTicker(p.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("animation stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.advance()
			ticker.Reset(p.interval())
		}
	}
}

// advance moves to the next frame unless playback is paused.
func (p *Player) advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying {
		return
	}
	p.idx = (p.idx + 1) % len(p.frames)
	p.metrics.FramesAdvanced.Inc()
}

// Current returns the frame being displayed.
func (p *Player) Current() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return Frame{}
	}
	return p.frames[p.idx]
}

// CurrentIndex returns the current frame index.
func (p *Player) CurrentIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idx
}

// FrameCount returns the sequence length.
func (p *Player) FrameCount() int {
	return len(p.frames)
}

// State returns the player's lifecycle state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SetSpeed changes the playback multiplier. Only 1x, 2x, and 3x are supported.
// The new interval takes effect on the next tick.
func (p *Player) SetSpeed(mult float64) error {
	if !speedSteps[mult] {
		return fmt.Errorf("unsupported speed %gx", mult)
	}
	p.mu.Lock()
	p.speed = mult
	p.mu.Unlock()
	p.metrics.PlaybackSpeed.Set(mult)
	p.logger.Info("playback speed changed", "speed", mult)
	return nil
}

// Speed returns the current playback multiplier.
func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// Pause freezes the frame index; ticks are ignored until Resume.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StatePlaying {
		p.state = StatePaused
	}
}

// Resume continues playback after a Pause.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StatePaused {
		p.state = StatePlaying
	}
}

// CheckReadiness reports whether the player has published at least one frame.
func (p *Player) CheckReadiness(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return errors.New("animation has not started yet")
	}
	return nil
}

func (p *Player) interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(float64(p.base) / p.speed)
}
