package toast

import "github.com/toastify-dev/toastify/pkg/dom"

// Container returns the container element for p, or nil if none exists.
func Container(doc *dom.Document, p Position) *dom.Node {
	return doc.Body.Find(func(n *dom.Node) bool {
		return n.Kind == dom.KindElement &&
			n.Classes().Has(ClassContainer) &&
			n.Data("position") == string(p)
	})
}

func (t *Toast) setPosition(p Position) {
	prev := t.el.Parent()

	container := Container(t.doc, p)
	if container == nil {
		container = t.doc.CreateElement("div")
		container.Classes().Add(ClassContainer)
		container.SetData("position", string(p))
		t.doc.Body.Append(container)
	}
	container.Append(t.el)
	t.position = p

	if prev == nil || prev == container || prev.HasChildNodes() {
		return
	}
	prev.Remove()
}

func (t *Toast) setMessage(msg string) {
	t.message = msg
	t.el.SetText(msg)
	if t.kind.HasIcon() {
		t.prependIcon()
	}
}

func (t *Toast) setOnClose(fn func()) {
	t.onClose = fn
}

func (t *Toast) setCanClose(on bool) {
	t.canClose = on
	t.el.Classes().Toggle(ClassCanClose, on)

	switch {
	case on && t.clickListener == 0:
		t.clickListener = t.el.AddEventListener(EventClick, func(dom.Event) {
			t.close(ReasonClick)
		})
	case !on && t.clickListener != 0:
		t.el.RemoveEventListener(EventClick, t.clickListener)
		t.clickListener = 0
	}
}

func (t *Toast) setPauseOnHover(on bool) {
	t.pauseOnHover = on

	switch {
	case on && t.enterListener == 0:
		t.enterListener = t.el.AddEventListener(EventPointerEnter, func(dom.Event) { t.paused = true })
		t.leaveListener = t.el.AddEventListener(EventPointerLeave, func(dom.Event) { t.paused = false })
	case !on && t.enterListener != 0:
		t.el.RemoveEventListener(EventPointerEnter, t.enterListener)
		t.el.RemoveEventListener(EventPointerLeave, t.leaveListener)
		t.enterListener, t.leaveListener = 0, 0
		t.paused = false
	}
}

func (t *Toast) setPauseOnFocusLoss(on bool) {
	t.pauseOnFocusLoss = on

	switch {
	case on && t.visibilityListener == 0:
		t.visibilityListener = t.doc.AddEventListener(dom.EventVisibilityChange, func(dom.Event) {
			t.resetBaseline = t.doc.Visibility() == dom.Visible
		})
	case !on && t.visibilityListener != 0:
		t.doc.RemoveEventListener(dom.EventVisibilityChange, t.visibilityListener)
		t.visibilityListener = 0
	}
}
