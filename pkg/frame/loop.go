package frame

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// DefaultRate is the default frame interval (60 frames per second).
const DefaultRate = time.Second / 60

// LoopConfig configures a Loop.
type LoopConfig struct {
	// Rate is the interval between frames. Default: DefaultRate.
	Rate time.Duration

	// QueueSize is the capacity of the Post queue. Default: 256.
	QueueSize int

	// Logger receives panic reports. Default: slog.Default().
	Logger *slog.Logger
}

// Loop is a Scheduler that runs frames on its own goroutine.
//
// All frame callbacks and all functions passed to Post run on the goroutine
// that called Run, one at a time, so state touched only from there needs no
// locking.
type Loop struct {
	q      queue
	rate   time.Duration
	tasks  chan func()
	done   chan struct{}
	closed atomic.Bool
	start  time.Time
	logger *slog.Logger

	// Owned by the loop goroutine.
	suspended func() bool
	afterFunc func(now time.Duration)
	frames    uint64
}

// NewLoop creates a Loop. Call Run to start it.
func NewLoop(cfg LoopConfig) *Loop {
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Loop{
		rate:   cfg.Rate,
		tasks:  make(chan func(), cfg.QueueSize),
		done:   make(chan struct{}),
		start:  time.Now(),
		logger: cfg.Logger.With("component", "frame"),
	}
}

// Request implements Scheduler.
func (l *Loop) Request(fn Func) Handle { return l.q.request(fn) }

// Cancel implements Scheduler.
func (l *Loop) Cancel(h Handle) { l.q.cancel(h) }

// Now returns the monotonic offset since the loop was created.
func (l *Loop) Now() time.Duration { return time.Since(l.start) }

// Frames returns the number of frames run so far. Loop goroutine only.
func (l *Loop) Frames() uint64 { return l.frames }

// SetSuspended installs a predicate consulted before every frame; while it
// returns true no frame callbacks run. Loop goroutine only.
func (l *Loop) SetSuspended(fn func() bool) { l.suspended = fn }

// SetAfterFrame installs a hook that runs after every frame. Loop goroutine only.
func (l *Loop) SetAfterFrame(fn func(now time.Duration)) { l.afterFunc = fn }

// Post queues fn to run on the loop goroutine. It returns false if the loop
// has stopped or the queue is full.
func (l *Loop) Post(fn func()) bool {
	if l.closed.Load() {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	default:
		l.logger.Warn("task queue full, discarding task")
		return false
	}
}

// Done returns a channel that is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Run drives the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.rate)
	defer ticker.Stop()
	defer func() {
		l.closed.Store(true)
		close(l.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			l.safeRun("task", fn)
		case <-ticker.C:
			l.tick()
		}
	}
}

func (l *Loop) tick() {
	if l.suspended != nil && l.suspended() {
		return
	}
	now := l.Now()
	l.safeRun("frame", func() { l.q.run(now) })
	l.frames++
	if l.afterFunc != nil {
		l.safeRun("after-frame", func() { l.afterFunc(now) })
	}
}

func (l *Loop) safeRun(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("callback panic",
				"kind", kind,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}
