package models

import "strings"

// Tab describes one entry in the two-level editor tab tree. Parent is
// empty for top-level tabs; Default marks the tab activated when its
// level is entered without an explicit choice.
type Tab struct {
	ID      string
	Name    string
	Icon    string
	Parent  string
	Default bool
}

// Tabs is a flat tab tree in display order
type Tabs []Tab

// Find returns the tab with the given id
func (t Tabs) Find(id string) (Tab, bool) {
	for _, tab := range t {
		if tab.ID == id {
			return tab, true
		}
	}
	return Tab{}, false
}

// TopLevel returns the tabs without a parent, in order
func (t Tabs) TopLevel() []Tab {
	var out []Tab
	for _, tab := range t {
		if tab.Parent == "" {
			out = append(out, tab)
		}
	}
	return out
}

// Children returns the sub-tabs of a top-level tab, in order
func (t Tabs) Children(parent string) []Tab {
	var out []Tab
	for _, tab := range t {
		if tab.Parent == parent {
			out = append(out, tab)
		}
	}
	return out
}

// DefaultTop returns the default top-level tab, falling back to the
// first one declared
func (t Tabs) DefaultTop() (Tab, bool) {
	top := t.TopLevel()
	for _, tab := range top {
		if tab.Default {
			return tab, true
		}
	}
	if len(top) > 0 {
		return top[0], true
	}
	return Tab{}, false
}

// DefaultChild returns the default sub-tab of a parent, falling back
// to the first child declared; ok is false when the parent is a leaf
func (t Tabs) DefaultChild(parent string) (Tab, bool) {
	children := t.Children(parent)
	for _, tab := range children {
		if tab.Default {
			return tab, true
		}
	}
	if len(children) > 0 {
		return children[0], true
	}
	return Tab{}, false
}

// Qualify resolves a tab path to its fully qualified form: a top-level
// id with children becomes "parent/defaultChild", a leaf stays as is,
// and a "parent/child" pair is checked for membership. Unknown paths
// return ok false.
func (t Tabs) Qualify(path string) (string, bool) {
	parent, child, nested := strings.Cut(path, "/")
	pt, ok := t.Find(parent)
	if !ok || pt.Parent != "" {
		return "", false
	}
	if !nested {
		if def, ok := t.DefaultChild(parent); ok {
			return parent + "/" + def.ID, true
		}
		return parent, true
	}
	ct, ok := t.Find(child)
	if !ok || ct.Parent != parent {
		return "", false
	}
	return parent + "/" + child, true
}

// Leaf returns the last element of a tab path
func Leaf(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
