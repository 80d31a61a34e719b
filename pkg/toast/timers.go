package toast

import (
	"strconv"
	"time"

	"github.com/toastify-dev/toastify/pkg/frame"
)

// setAutoClose restarts the countdown. The first frame only records a
// baseline; every later frame adds the time since the previous frame unless
// paused. Time spent while the document was hidden is dropped by resetting
// the baseline when the document becomes visible again.
func (t *Toast) setAutoClose(d time.Duration) {
	t.autoClose = d
	t.elapsed = 0
	t.cancelFrame(&t.autoCloseFrame)
	if d == 0 || t.closing {
		return
	}

	var last time.Duration
	haveLast := false

	var step frame.Func
	step = func(now time.Duration) {
		t.autoCloseFrame = 0

		if t.resetBaseline {
			haveLast = false
			t.resetBaseline = false
		}
		if !haveLast {
			last, haveLast = now, true
			t.autoCloseFrame = t.frames.Request(step)
			return
		}

		if !t.paused {
			t.elapsed += now - last
			if t.elapsed >= t.autoClose {
				t.close(ReasonTimeout)
				return
			}
		}
		last = now
		t.autoCloseFrame = t.frames.Request(step)
	}
	t.autoCloseFrame = t.frames.Request(step)
}

// setShowProgress toggles the indicator and (re)starts the loop that
// publishes the remaining fraction as --progress.
func (t *Toast) setShowProgress(on bool) {
	t.showProgress = on
	t.el.Classes().Toggle(ClassProgress, on)
	t.el.SetStyle("--progress", "1")
	t.cancelFrame(&t.progressFrame)
	if !on || t.closing {
		return
	}

	var step frame.Func
	step = func(time.Duration) {
		t.progressFrame = 0
		if !t.paused {
			t.el.SetStyle("--progress", formatProgress(t.Progress()))
		}
		t.progressFrame = t.frames.Request(step)
	}
	t.progressFrame = t.frames.Request(step)
}

// Progress returns the remaining fraction of the countdown,
// 1 - elapsed/autoCloseTime. It is 1 when auto-close is disabled and may
// go negative.
func (t *Toast) Progress() float64 {
	if t.autoClose == 0 {
		return 1
	}
	return 1 - float64(t.elapsed)/float64(t.autoClose)
}

func formatProgress(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
