package dom

import (
	"io"
	"sort"
	"strings"
)

// RenderHTML writes the HTML for n and its subtree to w.
func RenderHTML(w io.Writer, n *Node) error {
	var b strings.Builder
	writeNode(&b, n)
	_, err := io.WriteString(w, b.String())
	return err
}

// HTML returns the HTML for n and its subtree.
func HTML(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// InnerHTML returns the HTML of n's children.
func InnerHTML(n *Node) string {
	var b strings.Builder
	for _, c := range n.children {
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindText:
		b.WriteString(escapeHTML(n.text))
	case KindRaw:
		b.WriteString(n.text)
	case KindElement:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		writeAttrs(b, n)
		b.WriteByte('>')
		for _, c := range n.children {
			writeNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}

func writeAttrs(b *strings.Builder, n *Node) {
	if n.id != "" {
		writeAttr(b, "id", n.id)
	}
	if len(n.classes.names) > 0 {
		writeAttr(b, "class", n.classes.String())
	}
	if len(n.data) > 0 {
		keys := make([]string, 0, len(n.data))
		for k := range n.data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeAttr(b, "data-"+k, n.data[k])
		}
	}
	if len(n.style) > 0 {
		parts := make([]string, len(n.style))
		for i, p := range n.style {
			parts[i] = p.name + ": " + p.value
		}
		writeAttr(b, "style", strings.Join(parts, "; "))
	}
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(escapeAttr(value))
	b.WriteByte('"')
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for attribute values, including whitespace that
// could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteString(escapeHTML(string(r)))
		}
	}

	return buf.String()
}
