package frame

import (
	"sync"
	"time"
)

type entry struct {
	handle Handle
	fn     Func
}

// queue is the pending-callback list shared by the schedulers.
// Request and Cancel may be called from any goroutine; run is called by
// the frame driver only.
type queue struct {
	mu      sync.Mutex
	next    Handle
	pending []entry

	// running holds the handles of the batch being executed that have not
	// run or been cancelled yet.
	running map[Handle]bool
}

func (q *queue) request(fn Func) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	q.pending = append(q.pending, entry{handle: q.next, fn: fn})
	return q.next
}

func (q *queue) cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running[h] {
		delete(q.running, h)
		return
	}
	for i, e := range q.pending {
		if e.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// run executes the callbacks pending at the start of the frame and returns
// how many ran. A callback cancelled earlier in the same frame is skipped.
// If a callback panics, the callbacks after it stay queued for the next
// frame.
func (q *queue) run(now time.Duration) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.running = make(map[Handle]bool, len(batch))
	for _, e := range batch {
		q.running[e.handle] = true
	}
	q.mu.Unlock()

	next := 0
	defer func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		var rest []entry
		for _, e := range batch[next:] {
			if q.running[e.handle] {
				rest = append(rest, e)
			}
		}
		if len(rest) > 0 {
			q.pending = append(rest, q.pending...)
		}
		q.running = nil
	}()

	ran := 0
	for next < len(batch) {
		e := batch[next]
		next++

		q.mu.Lock()
		live := q.running[e.handle]
		delete(q.running, e.handle)
		q.mu.Unlock()

		if !live {
			continue
		}
		e.fn(now)
		ran++
	}
	return ran
}
