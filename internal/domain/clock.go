package domain

import "github.com/jonboulle/clockwork"

// clock is the package time source, swappable so tests can freeze the
// GeneratedAt timestamp stamped onto summaries.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
