// Package dom provides the retained document tree that Toastify widgets
// render into.
//
// The tree lives on the server. A Document owns a Body node plus document
// level state (visibility and listeners). Nodes are elements, text or raw
// markup, in the same spirit as a virtual DOM, but they are mutated in place
// the way browser code mutates the real DOM:
//
//	doc := dom.NewDocument()
//	el := doc.CreateElement("div")
//	el.Classes().Add("toast")
//	el.SetStyle("--progress", "1")
//	doc.Body.Append(el)
//
// Every mutation bumps the document version, which transports use to decide
// when to re-render. RenderHTML serialises any subtree.
//
// A Document is not safe for concurrent use. In Toastify all access happens
// on the session's frame goroutine.
package dom
