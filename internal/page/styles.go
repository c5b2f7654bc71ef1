package page

import (
	"html/template"
	"strings"
	"sync"
)

// Decl is a single CSS declaration.
type Decl struct {
	Property string
	Value    string
}

// Rule is a selector and its declarations.
type Rule struct {
	Selector string
	Decls    []Decl
}

// Frame is one step of a keyframes block ("from", "to", "50%").
type Frame struct {
	Selector string
	Decls    []Decl
}

// Keyframes is an @keyframes block.
type Keyframes struct {
	Name   string
	Frames []Frame
}

// StyleSheet is a named set of global rules. The ID is what a Head uses to
// tell two injections of the same sheet apart from different sheets.
type StyleSheet struct {
	ID        string
	Keyframes []Keyframes
	Rules     []Rule
}

// Rule returns the first rule with the given selector.
func (s StyleSheet) Rule(selector string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Selector == selector {
			return r, true
		}
	}
	return Rule{}, false
}

// Value returns the value of property in the rule, or "".
func (r Rule) Value(property string) string {
	for _, d := range r.Decls {
		if d.Property == property {
			return d.Value
		}
	}
	return ""
}

// String renders the sheet as CSS text.
func (s StyleSheet) String() string {
	var b strings.Builder
	for _, k := range s.Keyframes {
		b.WriteString("@keyframes " + k.Name + " {\n")
		for _, f := range k.Frames {
			writeBlock(&b, "  ", f.Selector, f.Decls)
		}
		b.WriteString("}\n")
	}
	for _, r := range s.Rules {
		writeBlock(&b, "", r.Selector, r.Decls)
	}
	return b.String()
}

// CSS returns the sheet for inclusion in a <style> element. Sheets are
// built from constants and validated theme tokens, never from visitor input.
func (s StyleSheet) CSS() template.CSS {
	return template.CSS(s.String())
}

func writeBlock(b *strings.Builder, indent, selector string, decls []Decl) {
	b.WriteString(indent + selector + " {\n")
	for _, d := range decls {
		b.WriteString(indent + "  " + d.Property + ": " + d.Value + ";\n")
	}
	b.WriteString(indent + "}\n")
}

// Head holds the global style sheets mounted into one document. Injections
// are reference counted per sheet, so mounting the same sheet twice never
// duplicates its rules, and the rules leave the head once every injection has
// been released. Two sheets are the same when both ID and rules match; a
// different sheet under a mounted ID is held as its own entry. A Head belongs to a single document and is not safe for
// concurrent use.
type Head struct {
	entries []*headEntry
}

type headEntry struct {
	sheet StyleSheet
	css   string
	refs  int
}

// NewHead returns an empty document head.
func NewHead() *Head {
	return &Head{}
}

// Inject mounts sheet into the head and returns the function that releases
// this injection. Calling release more than once has no further effect.
func (h *Head) Inject(sheet StyleSheet) (release func()) {
	e := h.lookup(sheet)
	if e == nil {
		e = &headEntry{sheet: sheet, css: sheet.String()}
		h.entries = append(h.entries, e)
	}
	e.refs++

	var once sync.Once
	return func() {
		once.Do(func() { h.release(e) })
	}
}

func (h *Head) release(e *headEntry) {
	e.refs--
	if e.refs > 0 {
		return
	}
	for i, cur := range h.entries {
		if cur == e {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return
		}
	}
}

func (h *Head) lookup(sheet StyleSheet) *headEntry {
	css := sheet.String()
	for _, e := range h.entries {
		if e.sheet.ID == sheet.ID && e.css == css {
			return e
		}
	}
	return nil
}

// Mounted reports whether a sheet with the given ID is currently injected.
func (h *Head) Mounted(id string) bool {
	for _, e := range h.entries {
		if e.sheet.ID == id {
			return true
		}
	}
	return false
}

// Sheets returns the mounted sheets in injection order.
func (h *Head) Sheets() []StyleSheet {
	out := make([]StyleSheet, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e.sheet)
	}
	return out
}

// String renders every mounted sheet as one block of CSS.
func (h *Head) String() string {
	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e.css)
	}
	return b.String()
}
