// Package clock provides the session's time source and the reminder timer.
// Everything that needs "now" takes a Clock so tests can drive time.
package clock

import "time"

// Clock is a monotonic wall-clock source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the real wall clock.
func System() Clock {
	return systemClock{}
}

// Timer measures elapsed time since a resettable anchor.
type Timer struct {
	clk    Clock
	anchor time.Time
}

// NewTimer creates a Timer anchored at the current time.
func NewTimer(clk Clock) *Timer {
	return &Timer{clk: clk, anchor: clk.Now()}
}

// Reset moves the anchor to now.
func (t *Timer) Reset() {
	t.anchor = t.clk.Now()
}

// Due reports whether at least interval has elapsed since the anchor.
func (t *Timer) Due(interval time.Duration) bool {
	return t.clk.Now().Sub(t.anchor) >= interval
}
