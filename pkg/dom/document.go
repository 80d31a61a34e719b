package dom

// Visibility is the document visibility state.
type Visibility string

const (
	Visible Visibility = "visible"
	Hidden  Visibility = "hidden"
)

// EventVisibilityChange is dispatched on the document when visibility changes.
const EventVisibilityChange = "visibilitychange"

// Document is the root of a node tree.
type Document struct {
	// Body is the root element that widgets attach to.
	Body *Node

	visibility   Visibility
	events       listenerSet
	version      uint64
	nextListener ListenerID
}

// NewDocument creates an empty, visible document.
func NewDocument() *Document {
	d := &Document{visibility: Visible}
	d.Body = newNode(d, KindElement, "body")
	return d
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Node {
	return newNode(d, KindElement, tag)
}

// CreateText creates a detached text node.
func (d *Document) CreateText(s string) *Node {
	n := newNode(d, KindText, "")
	n.text = s
	return n
}

// CreateRaw creates a detached node holding trusted markup.
func (d *Document) CreateRaw(markup string) *Node {
	n := newNode(d, KindRaw, "")
	n.text = markup
	return n
}

// Version returns a counter that changes whenever any node created by this
// document is mutated.
func (d *Document) Version() uint64 { return d.version }

// Visibility returns the current visibility state.
func (d *Document) Visibility() Visibility { return d.visibility }

// SetVisibility updates the visibility state and dispatches
// EventVisibilityChange when it changes.
func (d *Document) SetVisibility(v Visibility) {
	if d.visibility == v {
		return
	}
	d.visibility = v
	d.events.dispatch(Event{Type: EventVisibilityChange})
}

// AddEventListener registers a document-level listener.
func (d *Document) AddEventListener(typ string, fn Listener) ListenerID {
	return d.events.add(d, typ, fn, false)
}

// RemoveEventListener unregisters a document-level listener.
func (d *Document) RemoveEventListener(typ string, id ListenerID) {
	d.events.remove(typ, id)
}

// ListenerCount returns the number of document-level listeners for typ.
func (d *Document) ListenerCount(typ string) int { return d.events.count(typ) }

// ElementByID finds an attached element by id.
func (d *Document) ElementByID(id string) *Node {
	if id == "" {
		return nil
	}
	return d.Body.Find(func(n *Node) bool { return n.id == id })
}

// QueryClass returns the first attached element carrying every given class.
func (d *Document) QueryClass(classes ...string) *Node {
	return d.Body.Find(func(n *Node) bool {
		if n.Kind != KindElement {
			return false
		}
		for _, c := range classes {
			if !n.classes.Has(c) {
				return false
			}
		}
		return true
	})
}
