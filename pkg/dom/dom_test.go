package dom

import (
	"bytes"
	"strings"
	"testing"
)

func TestAppendMovesBetweenParents(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	child := doc.CreateElement("span")
	doc.Body.Append(a)
	doc.Body.Append(b)

	a.Append(child)
	if child.Parent() != a || !a.HasChildNodes() {
		t.Fatal("child not attached to a")
	}

	b.Append(child)
	if child.Parent() != b {
		t.Error("child should have moved to b")
	}
	if a.HasChildNodes() {
		t.Error("a should be empty after move")
	}
}

func TestPrependAndRemove(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetText("hello")
	icon := doc.CreateElement("i")
	el.Prepend(icon)

	kids := el.Children()
	if len(kids) != 2 || kids[0] != icon {
		t.Fatalf("children = %v", kids)
	}

	icon.Remove()
	if icon.Parent() != nil || len(el.Children()) != 1 {
		t.Error("icon not removed")
	}
	icon.Remove() // detached: no-op
}

func TestSetTextReplacesChildren(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.Append(doc.CreateElement("span"))
	el.SetText("a < b")

	if got := el.TextContent(); got != "a < b" {
		t.Errorf("TextContent = %q", got)
	}
	if got := HTML(el); got != "<div>a &lt; b</div>" {
		t.Errorf("HTML = %q", got)
	}
}

func TestClassList(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	cl := el.Classes()

	cl.Add("toast", "show", "toast")
	if got := cl.String(); got != "toast show" {
		t.Errorf("classes = %q", got)
	}
	cl.Toggle("show", false)
	cl.Toggle("can-close", true)
	if cl.Has("show") || !cl.Has("can-close") {
		t.Errorf("classes = %v", cl.Names())
	}
	cl.Remove("missing")
}

func TestStyleOrderAndRemoval(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetStyle("--progress", "1")
	el.SetStyle("--light_bg", "var(--info-primary)")
	el.SetStyle("--progress", "0.5")

	if v, ok := el.Style("--progress"); !ok || v != "0.5" {
		t.Errorf("--progress = %q, %v", v, ok)
	}
	want := `<div style="--progress: 0.5; --light_bg: var(--info-primary)"></div>`
	if got := HTML(el); got != want {
		t.Errorf("HTML = %q, want %q", got, want)
	}

	el.RemoveStyle("--progress")
	if _, ok := el.Style("--progress"); ok {
		t.Error("--progress still set")
	}
}

func TestVersionTracksMutations(t *testing.T) {
	doc := NewDocument()
	v0 := doc.Version()
	el := doc.CreateElement("div")
	el.Classes().Add("x")
	if doc.Version() == v0 {
		t.Error("version did not change")
	}

	v1 := doc.Version()
	el.Classes().Add("x")
	el.SetStyle("--a", "1")
	v2 := doc.Version()
	el.SetStyle("--a", "1")
	if doc.Version() != v2 || v2 == v1 {
		t.Error("no-op mutations should not bump the version")
	}
}

func TestListeners(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	clicks := 0
	id := el.AddEventListener("click", func(ev Event) {
		if ev.Target != el {
			t.Error("wrong target")
		}
		clicks++
	})
	el.Dispatch("click")
	el.Dispatch("click")
	el.RemoveEventListener("click", id)
	el.Dispatch("click")

	if clicks != 2 {
		t.Errorf("clicks = %d, want 2", clicks)
	}
	if el.ListenerCount("click") != 0 {
		t.Error("listener not removed")
	}
}

func TestOnceListener(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	calls := 0
	el.AddOnceListener("transitionend", func(Event) { calls++ })

	el.Dispatch("transitionend")
	el.Dispatch("transitionend")
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestListenerRemovedDuringDispatch(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	secondRan := false

	var second ListenerID
	el.AddEventListener("click", func(Event) { el.RemoveEventListener("click", second) })
	second = el.AddEventListener("click", func(Event) { secondRan = true })

	el.Dispatch("click")
	if secondRan {
		t.Error("listener removed earlier in dispatch still ran")
	}
}

func TestVisibility(t *testing.T) {
	doc := NewDocument()
	var seen []Visibility
	doc.AddEventListener(EventVisibilityChange, func(Event) {
		seen = append(seen, doc.Visibility())
	})

	doc.SetVisibility(Hidden)
	doc.SetVisibility(Hidden)
	doc.SetVisibility(Visible)

	if len(seen) != 2 || seen[0] != Hidden || seen[1] != Visible {
		t.Errorf("seen = %v", seen)
	}
}

func TestLookup(t *testing.T) {
	doc := NewDocument()
	c := doc.CreateElement("div")
	c.Classes().Add("toast-container")
	c.SetData("position", "top-right")
	el := doc.CreateElement("div")
	id := el.AssignID("toast-")
	c.Append(el)
	doc.Body.Append(c)

	if !strings.HasPrefix(id, "toast-") {
		t.Errorf("id = %q", id)
	}
	if doc.ElementByID(id) != el {
		t.Error("ElementByID failed")
	}
	if doc.ElementByID("") != nil || doc.ElementByID("nope") != nil {
		t.Error("unexpected match")
	}
	if doc.QueryClass("toast-container") != c {
		t.Error("QueryClass failed")
	}
	if !doc.Body.Contains(el) {
		t.Error("Contains failed")
	}
	if n := len(doc.Body.FindAll(func(n *Node) bool { return n.Kind == KindElement })); n != 3 {
		t.Errorf("FindAll = %d elements, want 3", n)
	}
}

func TestRenderHTML(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetID("t1")
	el.Classes().Add("toast", "info")
	el.SetData("position", `a"b`)
	icon := doc.CreateElement("div")
	icon.SetInnerMarkup(`<svg viewBox="0 0 1 1"></svg>`)
	el.SetText("Saved")
	el.Prepend(icon)

	var buf bytes.Buffer
	if err := RenderHTML(&buf, el); err != nil {
		t.Fatal(err)
	}
	want := `<div id="t1" class="toast info" data-position="a&quot;b"><div><svg viewBox="0 0 1 1"></svg></div>Saved</div>`
	if buf.String() != want {
		t.Errorf("got  %s\nwant %s", buf.String(), want)
	}
	if InnerHTML(el) != `<div><svg viewBox="0 0 1 1"></svg></div>Saved` {
		t.Errorf("InnerHTML = %s", InnerHTML(el))
	}
}

func TestEscapeAttr(t *testing.T) {
	if got := escapeAttr("a\nb\t<"); got != "a&#10;b&#9;&lt;" {
		t.Errorf("escapeAttr = %q", got)
	}
}
