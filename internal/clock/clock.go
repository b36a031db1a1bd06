// Package clock abstracts wall-clock reads and timer creation so the
// scheduler's timed waits can be driven deterministically in tests.
package clock

import "time"

// Timer is the subset of time.Timer the worker relies on.
type Timer interface {
	// C returns the channel the timer delivers on.
	C() <-chan time.Time
	// Stop prevents the timer from firing. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Clock provides the current time and timers bound to it.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// NewTimer returns a timer that fires once d has elapsed.
	NewTimer(d time.Duration) Timer
}

// Real is a Clock backed by the system clock.
type Real struct{}

// Now returns the system time.
func (Real) Now() time.Time {
	return time.Now()
}

// NewTimer returns a timer backed by time.NewTimer.
func (Real) NewTimer(d time.Duration) Timer {
	return realTimer{timer: time.NewTimer(d)}
}

// realTimer adapts *time.Timer to the Timer interface.
type realTimer struct {
	timer *time.Timer
}

func (t realTimer) C() <-chan time.Time {
	return t.timer.C
}

func (t realTimer) Stop() bool {
	return t.timer.Stop()
}
