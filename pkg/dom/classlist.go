package dom

import "strings"

// ClassList is an ordered set of class names.
type ClassList struct {
	node  *Node
	names []string
}

// Has reports whether name is present.
func (c *ClassList) Has(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}

// Add adds each name that is not already present.
func (c *ClassList) Add(names ...string) {
	changed := false
	for _, name := range names {
		if name == "" || c.Has(name) {
			continue
		}
		c.names = append(c.names, name)
		changed = true
	}
	if changed {
		c.node.touch()
	}
}

// Remove removes each name that is present.
func (c *ClassList) Remove(names ...string) {
	changed := false
	for _, name := range names {
		for i, n := range c.names {
			if n == name {
				c.names = append(c.names[:i], c.names[i+1:]...)
				changed = true
				break
			}
		}
	}
	if changed {
		c.node.touch()
	}
}

// Toggle adds name when on is true and removes it otherwise.
func (c *ClassList) Toggle(name string, on bool) {
	if on {
		c.Add(name)
	} else {
		c.Remove(name)
	}
}

// Names returns a copy of the class names in insertion order.
func (c *ClassList) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// String returns the class attribute value.
func (c *ClassList) String() string {
	return strings.Join(c.names, " ")
}
