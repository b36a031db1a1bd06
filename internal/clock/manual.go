package clock

import (
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance or Set is called.
// Timers created from it fire when the manual time passes their deadline.
// Safe for concurrent use.
type Manual struct {
	mu sync.Mutex
	// now is the current manual time.
	now time.Time
	// timers holds pending timers, unordered; fired timers are removed.
	timers []*manualTimer
}

// NewManual returns a manual clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// NewTimer returns a timer that fires once the manual time reaches
// now plus d. A non-positive d fires immediately.
func (m *Manual) NewTimer(d time.Duration) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTimer{
		clock:    m,
		deadline: m.now.Add(d),
		ch:       make(chan time.Time, 1),
	}
	if d <= 0 {
		t.fired = true
		t.ch <- m.now
	} else {
		m.timers = append(m.timers, t)
	}

	return t
}

// Advance moves the manual time forward by d and fires every pending timer
// whose deadline has been reached.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setLocked(m.now.Add(d))
}

// Set jumps the manual time to t, firing timers as with Advance. Time never
// moves backwards; an earlier t is ignored.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.After(m.now) {
		m.setLocked(t)
	}
}

func (m *Manual) setLocked(t time.Time) {
	m.now = t

	remaining := m.timers[:0]

	for _, tm := range m.timers {
		if !tm.fired && !tm.deadline.After(m.now) {
			tm.fired = true
			tm.ch <- m.now

			continue
		}

		remaining = append(remaining, tm)
	}

	m.timers = remaining
}

// manualTimer is a Timer driven by a Manual clock.
type manualTimer struct {
	clock    *Manual
	deadline time.Time
	ch       chan time.Time
	// fired is guarded by clock.mu.
	fired bool
}

func (t *manualTimer) C() <-chan time.Time {
	return t.ch
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fired {
		return false
	}

	t.fired = true

	for i, tm := range t.clock.timers {
		if tm == t {
			t.clock.timers = append(t.clock.timers[:i], t.clock.timers[i+1:]...)

			break
		}
	}

	return true
}
