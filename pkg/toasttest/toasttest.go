// Package toasttest provides testing helpers for code that shows toasts.
//
// A Harness bundles a fresh document, a manual frame clock and a recording
// observer, so tests can drive toasts frame by frame without a browser:
//
//	func TestSaveShowsToast(t *testing.T) {
//	    h := toasttest.New(t)
//	    tst := h.Show(toast.WithMessage("Saved"), toast.WithAutoClose(time.Second))
//	    h.Frame()                  // entry frame: toast becomes visible
//	    h.Advance(time.Second)     // countdown reaches zero
//	    h.FinishTransitions()      // exit transition ends, element detaches
//	    toasttest.ExpectGone(t, h, tst)
//	}
package toasttest

import (
	"strings"
	"testing"
	"time"

	"github.com/toastify-dev/toastify/pkg/dom"
	"github.com/toastify-dev/toastify/pkg/frame"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// Harness is a document plus a manual clock.
type Harness struct {
	t        testing.TB
	Doc      *dom.Document
	Clock    *frame.Manual
	Observer *Recorder
	Host     toast.Host
}

// Option configures a Harness.
type Option func(*Harness)

// WithIcons sets the host icon set.
func WithIcons(icons toast.Icons) Option {
	return func(h *Harness) { h.Host.Icons = icons }
}

// WithDefaults sets host-level default options.
func WithDefaults(opts ...toast.Option) Option {
	return func(h *Harness) { h.Host.Defaults = opts }
}

// WithObserver adds an observer notified alongside the Recorder.
func WithObserver(o toast.Observer) Option {
	return func(h *Harness) { h.Host.Observer = toast.MultiObserver(h.Observer, o) }
}

// New creates a Harness.
func New(t testing.TB, opts ...Option) *Harness {
	t.Helper()
	doc := dom.NewDocument()
	clock := frame.NewManual()
	rec := &Recorder{}
	h := &Harness{
		t:        t,
		Doc:      doc,
		Clock:    clock,
		Observer: rec,
		Host: toast.Host{
			Document: doc,
			Frames:   clock,
			Observer: rec,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Show constructs a toast on the harness document.
func (h *Harness) Show(opts ...toast.Option) *toast.Toast {
	return toast.New(h.Host, opts...)
}

// Frame runs one frame without moving the clock.
func (h *Harness) Frame() { h.Clock.Frame() }

// Advance moves the clock by d and runs one frame.
func (h *Harness) Advance(d time.Duration) { h.Clock.Advance(d) }

// Run advances total time in frames of step.
func (h *Harness) Run(total, step time.Duration) { h.Clock.Run(total, step) }

// Click dispatches a click on the toast element.
func (h *Harness) Click(t *toast.Toast) { t.Element().Dispatch(toast.EventClick) }

// Hover dispatches pointerenter on the toast element.
func (h *Harness) Hover(t *toast.Toast) { t.Element().Dispatch(toast.EventPointerEnter) }

// Leave dispatches pointerleave on the toast element.
func (h *Harness) Leave(t *toast.Toast) { t.Element().Dispatch(toast.EventPointerLeave) }

// Hide marks the document hidden.
func (h *Harness) Hide() { h.Doc.SetVisibility(dom.Hidden) }

// Reveal marks the document visible.
func (h *Harness) Reveal() { h.Doc.SetVisibility(dom.Visible) }

// FinishTransitions dispatches transitionend on every toast element in the
// document, as a browser does when exit animations complete.
func (h *Harness) FinishTransitions() {
	els := h.Doc.Body.FindAll(func(n *dom.Node) bool {
		return n.Kind == dom.KindElement && n.Classes().Has(toast.ClassToast)
	})
	for _, el := range els {
		el.Dispatch(toast.EventTransitionEnd)
	}
}

// Containers returns every toast container in the document.
func (h *Harness) Containers() []*dom.Node {
	return h.Doc.Body.FindAll(func(n *dom.Node) bool {
		return n.Kind == dom.KindElement && n.Classes().Has(toast.ClassContainer)
	})
}

// HTML returns the rendered body.
func (h *Harness) HTML() string { return dom.InnerHTML(h.Doc.Body) }

// ExpectContains fails the test if the rendered body does not contain substr.
func ExpectContains(t testing.TB, h *Harness, substr string) {
	t.Helper()
	if html := h.HTML(); !strings.Contains(html, substr) {
		t.Errorf("expected body to contain %q\n\nGot:\n%s", substr, html)
	}
}

// ExpectNotContains fails the test if the rendered body contains substr.
func ExpectNotContains(t testing.TB, h *Harness, substr string) {
	t.Helper()
	if html := h.HTML(); strings.Contains(html, substr) {
		t.Errorf("expected body NOT to contain %q\n\nGot:\n%s", substr, html)
	}
}

// ExpectInContainer fails unless tst is a child of the single container for pos.
func ExpectInContainer(t testing.TB, h *Harness, tst *toast.Toast, pos toast.Position) {
	t.Helper()
	count := 0
	for _, c := range h.Containers() {
		if c.Data("position") == string(pos) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one %s container, found %d", pos, count)
	}
	if parent := tst.Element().Parent(); parent != toast.Container(h.Doc, pos) {
		t.Errorf("toast is not in the %s container", pos)
	}
}

// ExpectGone fails unless the toast's element has left the document.
func ExpectGone(t testing.TB, h *Harness, tst *toast.Toast) {
	t.Helper()
	if h.Doc.Body.Contains(tst.Element()) {
		t.Errorf("toast %s is still attached", tst.ID())
	}
}

// Recorder is an Observer that records lifecycle calls.
type Recorder struct {
	ShownIDs    []string
	Closed      []Closed
	DetachedIDs []string
}

// Closed is one recorded Closing call.
type Closed struct {
	ID     string
	Reason toast.CloseReason
}

// Shown implements toast.Observer.
func (r *Recorder) Shown(t *toast.Toast) { r.ShownIDs = append(r.ShownIDs, t.ID()) }

// Closing implements toast.Observer.
func (r *Recorder) Closing(t *toast.Toast, reason toast.CloseReason) {
	r.Closed = append(r.Closed, Closed{ID: t.ID(), Reason: reason})
}

// Detached implements toast.Observer.
func (r *Recorder) Detached(t *toast.Toast) { r.DetachedIDs = append(r.DetachedIDs, t.ID()) }
