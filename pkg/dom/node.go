package dom

import (
	"strings"

	"github.com/google/uuid"
)

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <span>, etc.
	KindText                    // Plain text node
	KindRaw                     // Raw markup (trusted)
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

type styleProp struct {
	name  string
	value string
}

// Node is a node in the document tree.
type Node struct {
	Kind NodeKind
	Tag  string

	doc      *Document
	id       string
	text     string
	classes  ClassList
	style    []styleProp
	data     map[string]string
	children []*Node
	parent   *Node
	events   listenerSet
}

func newNode(doc *Document, kind NodeKind, tag string) *Node {
	n := &Node{Kind: kind, Tag: tag, doc: doc}
	n.classes.node = n
	return n
}

// touch records a mutation on the owning document.
func (n *Node) touch() {
	if n.doc != nil {
		n.doc.version++
	}
}

// Document returns the document that created the node.
func (n *Node) Document() *Document { return n.doc }

// ID returns the element id.
func (n *Node) ID() string { return n.id }

// SetID sets the element id.
func (n *Node) SetID(id string) {
	n.id = id
	n.touch()
}

// AssignID gives the element a fresh random id with the given prefix.
func (n *Node) AssignID(prefix string) string {
	n.SetID(prefix + uuid.NewString())
	return n.id
}

// Text returns the content of a text or raw node.
func (n *Node) Text() string { return n.text }

// TextContent returns the concatenated text of the subtree.
// Raw markup is not included.
func (n *Node) TextContent() string {
	if n.Kind == KindText {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// SetText replaces all children with a single text node.
func (n *Node) SetText(s string) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = []*Node{n.doc.CreateText(s)}
	n.children[0].parent = n
	n.touch()
}

// SetInnerMarkup replaces all children with a single raw markup node.
func (n *Node) SetInnerMarkup(markup string) {
	for _, c := range n.children {
		c.parent = nil
	}
	raw := n.doc.CreateRaw(markup)
	raw.parent = n
	n.children = []*Node{raw}
	n.touch()
}

// Classes returns the node's class list.
func (n *Node) Classes() *ClassList { return &n.classes }

// SetStyle sets a style property, typically a custom property such as
// "--progress". Insertion order is preserved for rendering.
func (n *Node) SetStyle(name, value string) {
	for i := range n.style {
		if n.style[i].name == name {
			if n.style[i].value != value {
				n.style[i].value = value
				n.touch()
			}
			return
		}
	}
	n.style = append(n.style, styleProp{name: name, value: value})
	n.touch()
}

// RemoveStyle removes a style property if present.
func (n *Node) RemoveStyle(name string) {
	for i := range n.style {
		if n.style[i].name == name {
			n.style = append(n.style[:i], n.style[i+1:]...)
			n.touch()
			return
		}
	}
}

// Style returns a style property value and whether it is set.
func (n *Node) Style(name string) (string, bool) {
	for _, p := range n.style {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}

// SetData sets a data-* attribute.
func (n *Node) SetData(key, value string) {
	if n.data == nil {
		n.data = make(map[string]string)
	}
	n.data[key] = value
	n.touch()
}

// Data returns a data-* attribute.
func (n *Node) Data(key string) string { return n.data[key] }

// Parent returns the parent node or nil if detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// HasChildNodes reports whether the node has any children.
func (n *Node) HasChildNodes() bool { return len(n.children) > 0 }

// Append moves child to the end of n's children.
func (n *Node) Append(child *Node) {
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
	n.touch()
}

// Prepend moves child to the start of n's children.
func (n *Node) Prepend(child *Node) {
	child.detach()
	child.parent = n
	n.children = append([]*Node{child}, n.children...)
	n.touch()
}

// Remove detaches the node from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	n.detach()
	n.touch()
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Find returns the first node in the subtree (depth first, n included)
// for which match returns true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in the subtree for which match returns true.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(x *Node) {
		if match(x) {
			out = append(out, x)
		}
		for _, c := range x.children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// AddEventListener registers fn for events of type typ on this node.
func (n *Node) AddEventListener(typ string, fn Listener) ListenerID {
	return n.events.add(n.doc, typ, fn, false)
}

// AddOnceListener registers fn to run for the next event of type typ only.
func (n *Node) AddOnceListener(typ string, fn Listener) ListenerID {
	return n.events.add(n.doc, typ, fn, true)
}

// RemoveEventListener unregisters a listener. Unknown ids are ignored.
func (n *Node) RemoveEventListener(typ string, id ListenerID) {
	n.events.remove(typ, id)
}

// ListenerCount returns the number of listeners registered for typ.
func (n *Node) ListenerCount(typ string) int { return n.events.count(typ) }

// Dispatch delivers an event of type typ to this node's listeners.
// Events do not bubble.
func (n *Node) Dispatch(typ string) {
	n.events.dispatch(Event{Type: typ, Target: n})
}
