// Package frame provides per-frame callback scheduling for server-side widgets.
//
// A Scheduler plays the role of a browser's animation-frame clock: callers
// request a callback for the next frame, receive a Handle, and may cancel it
// before it runs. Callbacks receive a monotonic offset from the scheduler's
// start, never a wall-clock timestamp, so clock changes on the host cannot
// skew elapsed-time arithmetic.
//
// Two implementations are provided:
//
//   - Manual: a deterministic clock for tests. Advance runs one frame.
//   - Loop: a goroutine-driven ticker that also serialises foreign work via Post.
//
// Callbacks requested while a frame is running are deferred to the next
// frame, so a callback that re-requests itself runs exactly once per frame.
package frame

import "time"

// Func is a frame callback. now is the monotonic time of the frame.
type Func func(now time.Duration)

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Scheduler schedules callbacks for the next frame.
type Scheduler interface {
	// Request schedules fn to run on the next frame.
	Request(fn Func) Handle

	// Cancel removes a pending callback. Cancelling an unknown or already
	// executed handle is a no-op.
	Cancel(h Handle)
}
