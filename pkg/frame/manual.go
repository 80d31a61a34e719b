package frame

import "time"

// Manual is a deterministic Scheduler driven by the caller.
// It is intended for tests and for one-shot rendering.
type Manual struct {
	q   queue
	now time.Duration
}

// NewManual returns a Manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Request implements Scheduler.
func (m *Manual) Request(fn Func) Handle { return m.q.request(fn) }

// Cancel implements Scheduler.
func (m *Manual) Cancel(h Handle) { m.q.cancel(h) }

// Now returns the current clock value.
func (m *Manual) Now() time.Duration { return m.now }

// Pending returns the number of callbacks waiting for the next frame.
func (m *Manual) Pending() int { return m.q.len() }

// Advance moves the clock forward by d and runs one frame.
// It returns the number of callbacks that ran.
func (m *Manual) Advance(d time.Duration) int {
	m.now += d
	return m.q.run(m.now)
}

// Frame runs one frame without moving the clock.
func (m *Manual) Frame() int {
	return m.q.run(m.now)
}

// Skip moves the clock forward without running any frame, the way a
// browser stops delivering frames to a background tab.
func (m *Manual) Skip(d time.Duration) {
	m.now += d
}

// Run advances the clock in steps of step until total has elapsed,
// running one frame per step.
func (m *Manual) Run(total, step time.Duration) {
	if step <= 0 {
		return
	}
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		m.Advance(step)
	}
}
