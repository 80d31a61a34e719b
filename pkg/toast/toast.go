package toast

import (
	"log/slog"
	"time"

	"github.com/toastify-dev/toastify/pkg/dom"
	"github.com/toastify-dev/toastify/pkg/frame"
)

// Class names shared with the stylesheet.
const (
	ClassToast     = "toast"
	ClassShow      = "show"
	ClassCanClose  = "can-close"
	ClassProgress  = "progress"
	ClassIcon      = "toast-icon"
	ClassContainer = "toast-container"
)

// DOM event types the widget listens to.
const (
	EventClick         = "click"
	EventPointerEnter  = "pointerenter"
	EventPointerLeave  = "pointerleave"
	EventTransitionEnd = "transitionend"
)

// Observer receives toast lifecycle notifications.
type Observer interface {
	// Shown is called when the toast becomes visible.
	Shown(t *Toast)
	// Closing is called when removal begins.
	Closing(t *Toast, reason CloseReason)
	// Detached is called once the element has left the document.
	Detached(t *Toast)
}

type nopObserver struct{}

func (nopObserver) Shown(*Toast)               {}
func (nopObserver) Closing(*Toast, CloseReason) {}
func (nopObserver) Detached(*Toast)            {}

// MultiObserver fans notifications out to every non-nil observer in order.
func MultiObserver(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

type multiObserver []Observer

func (m multiObserver) Shown(t *Toast) {
	for _, o := range m {
		o.Shown(t)
	}
}

func (m multiObserver) Closing(t *Toast, reason CloseReason) {
	for _, o := range m {
		o.Closing(t, reason)
	}
}

func (m multiObserver) Detached(t *Toast) {
	for _, o := range m {
		o.Detached(t)
	}
}

// Host bundles the services a toast renders into.
type Host struct {
	// Document receives the toast element. Required.
	Document *dom.Document

	// Frames drives the entry animation, the countdown and the progress
	// indicator. Required.
	Frames frame.Scheduler

	// Icons supplies icon markup. Default: DefaultIcons().
	Icons Icons

	// Defaults override the built-in defaults for every toast.
	Defaults []Option

	// Observer receives lifecycle notifications. Optional.
	Observer Observer

	// Logger is used for debug output. Default: slog.Default().
	Logger *slog.Logger
}

// Toast is one visible notification.
type Toast struct {
	host     Host
	doc      *dom.Document
	frames   frame.Scheduler
	el       *dom.Node
	logger   *slog.Logger
	observer Observer

	position         Position
	message          string
	autoClose        time.Duration
	onClose          func()
	canClose         bool
	showProgress     bool
	pauseOnHover     bool
	pauseOnFocusLoss bool
	kind             Type
	theme            Theme

	// countdown state
	elapsed       time.Duration
	paused        bool
	resetBaseline bool

	entryFrame     frame.Handle
	autoCloseFrame frame.Handle
	progressFrame  frame.Handle

	clickListener      dom.ListenerID
	enterListener      dom.ListenerID
	leaveListener      dom.ListenerID
	visibilityListener dom.ListenerID

	shown    bool
	closing  bool
	detached bool
	reason   CloseReason
}

// New creates a toast, attaches it to its container and starts its timers.
// opts are merged over host.Defaults, which are merged over Defaults().
func New(host Host, opts ...Option) *Toast {
	if host.Document == nil || host.Frames == nil {
		panic("toast: Host.Document and Host.Frames are required")
	}
	if host.Icons == nil {
		host.Icons = DefaultIcons()
	}
	if host.Observer == nil {
		host.Observer = nopObserver{}
	}
	if host.Logger == nil {
		host.Logger = slog.Default()
	}

	t := &Toast{
		host:     host,
		doc:      host.Document,
		frames:   host.Frames,
		observer: host.Observer,
	}
	t.el = t.doc.CreateElement("div")
	t.el.Classes().Add(ClassToast)
	t.el.AssignID("toast-")
	t.logger = host.Logger.With("component", "toast", "toast_id", t.el.ID())

	t.entryFrame = t.frames.Request(func(time.Duration) {
		t.entryFrame = 0
		t.el.Classes().Add(ClassShow)
		t.shown = true
		t.observer.Shown(t)
	})

	for _, o := range merge(Defaults(), host.Defaults, opts) {
		t.apply(o)
	}
	return t
}

// Update applies each option in the order given. Options applied after
// removal has begun are ignored.
func (t *Toast) Update(opts ...Option) {
	if t.closing {
		t.logger.Debug("update ignored on closing toast", "options", len(opts))
		return
	}
	for _, o := range opts {
		t.apply(o)
	}
}

func (t *Toast) apply(o Option) {
	set, ok := setters[o.key]
	if !ok {
		return
	}
	set(t, o.value)
}

// Remove starts removal: timers stop, the element loses its visible state,
// the close callback runs, and the element is detached once its exit
// transition ends. Calling Remove again has no effect.
func (t *Toast) Remove() {
	t.close(ReasonCaller)
}

func (t *Toast) close(reason CloseReason) {
	if t.closing {
		return
	}
	t.closing = true
	t.reason = reason

	t.cancelFrame(&t.entryFrame)
	t.cancelFrame(&t.autoCloseFrame)
	t.cancelFrame(&t.progressFrame)
	if t.visibilityListener != 0 {
		t.doc.RemoveEventListener(dom.EventVisibilityChange, t.visibilityListener)
		t.visibilityListener = 0
	}

	container := t.el.Parent()
	t.el.Classes().Remove(ClassShow)
	if t.shown {
		t.el.AddOnceListener(EventTransitionEnd, func(dom.Event) { t.detach(container) })
	}

	t.logger.Debug("toast closing", "reason", reason, "elapsed", t.elapsed)
	t.observer.Closing(t, reason)
	if t.onClose != nil {
		t.onClose()
	}

	// Never shown means no exit transition will ever fire.
	if !t.shown {
		t.detach(container)
	}
}

func (t *Toast) detach(container *dom.Node) {
	if t.detached {
		return
	}
	t.detached = true
	t.el.Remove()
	if container != nil && !container.HasChildNodes() {
		container.Remove()
	}
	t.observer.Detached(t)
}

func (t *Toast) cancelFrame(h *frame.Handle) {
	if *h != 0 {
		t.frames.Cancel(*h)
		*h = 0
	}
}

// ID returns the element id.
func (t *Toast) ID() string { return t.el.ID() }

// Element returns the toast's element.
func (t *Toast) Element() *dom.Node { return t.el }

// Position returns the current position.
func (t *Toast) Position() Position { return t.position }

// Message returns the configured message.
func (t *Toast) Message() string { return t.message }

// AutoClose returns the configured auto-close duration.
func (t *Toast) AutoClose() time.Duration { return t.autoClose }

// Type returns the toast type.
func (t *Toast) Type() Type { return t.kind }

// Theme returns the theme.
func (t *Toast) Theme() Theme { return t.theme }

// CanClose reports whether a click removes the toast.
func (t *Toast) CanClose() bool { return t.canClose }

// ShowProgress reports whether the progress indicator is enabled.
func (t *Toast) ShowProgress() bool { return t.showProgress }

// Elapsed returns the visible time counted towards auto-close.
func (t *Toast) Elapsed() time.Duration { return t.elapsed }

// Paused reports whether the countdown is paused.
func (t *Toast) Paused() bool { return t.paused }

// Shown reports whether the entry frame has run.
func (t *Toast) Shown() bool { return t.shown }

// Closing reports whether removal has begun.
func (t *Toast) Closing() bool { return t.closing }

// Detached reports whether the element has left the document.
func (t *Toast) Detached() bool { return t.detached }

// CloseReason returns why removal began, or "" while open.
func (t *Toast) CloseReason() CloseReason { return t.reason }
