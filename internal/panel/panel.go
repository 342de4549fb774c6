// Package panel turns a section's JSON value into the nested rows shown in a tab:
// titled groups for objects and arrays, and editable key/value fields for scalars.
package panel

import (
	"strconv"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/confviz/internal/document"
	"github.com/oakwood-commons/confviz/internal/navigator"
)

// RowKind distinguishes group headers from scalar fields.
type RowKind int

const (
	GroupRow RowKind = iota
	FieldRow
)

// Tooltips resolves descriptions by exact path.
type Tooltips interface {
	Lookup(path string) (string, bool)
}

// Row is one rendered line of a panel.
type Row struct {
	Kind    RowKind
	Label   string
	Path    string
	Depth   int
	Tooltip string

	// original is the scalar's string form; value is what the field currently displays.
	original    string
	value       string
	highlighted bool
}

// Value returns the text currently displayed in a field.
func (r *Row) Value() string { return r.value }

// Original returns the scalar's string form as loaded.
func (r *Row) Original() string { return r.original }

// SetValue replaces the displayed text. The loaded document is never touched.
func (r *Row) SetValue(s string) { r.value = s }

// Edited reports whether the displayed text differs from the loaded value.
func (r *Row) Edited() bool { return r.value != r.original }

// Highlighted reports whether the row matched the last search.
func (r *Row) Highlighted() bool { return r.highlighted }

// SetHighlighted marks or clears a search match.
func (r *Row) SetHighlighted(on bool) { r.highlighted = on }

// Panel is the realized view of one section.
type Panel struct {
	Section string
	Rows    []*Row

	byPath map[string]int
}

// Render builds the panel for a section. The section root is un-named: an object root
// is titled "Object", an array root "List", and a scalar root is labelled by the section.
func Render(section string, v *document.Value, tips Tooltips) *Panel {
	p := &Panel{Section: section, byPath: map[string]int{}}
	p.build(v, "", navigator.JoinKey("", section), 0, tips, section)
	return p
}

func (p *Panel) build(v *document.Value, keyName, path string, depth int, tips Tooltips, section string) {
	switch v.Kind() {
	case document.ObjectKind:
		title := keyName
		if title == "" {
			title = "Object"
		}
		p.add(&Row{Kind: GroupRow, Label: title, Path: path, Depth: depth}, tips)
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			p.build(child, key, navigator.JoinKey(path, key), depth+1, tips, section)
		}
	case document.ArrayKind:
		title := "List"
		if keyName != "" {
			title = keyName + " [List]"
		}
		p.add(&Row{Kind: GroupRow, Label: title, Path: path, Depth: depth}, tips)
		for i := 0; i < v.Len(); i++ {
			child := v.Index(i)
			label := "[" + strconv.Itoa(i) + "]"
			p.build(child, label, navigator.JoinIndex(path, i), depth+1, tips, section)
		}
	default:
		label := keyName
		if label == "" {
			label = section
		}
		text := v.Text()
		p.add(&Row{Kind: FieldRow, Label: label, Path: path, Depth: depth, original: text, value: text}, tips)
	}
}

func (p *Panel) add(r *Row, tips Tooltips) {
	if tips != nil {
		if text, ok := tips.Lookup(r.Path); ok {
			r.Tooltip = text
		}
	}
	p.byPath[r.Path] = len(p.Rows)
	p.Rows = append(p.Rows, r)
}

// Fields returns the scalar field rows in render order.
func (p *Panel) Fields() []*Row {
	out := make([]*Row, 0, len(p.Rows))
	for _, r := range p.Rows {
		if r.Kind == FieldRow {
			out = append(out, r)
		}
	}
	return out
}

// IndexOf returns the row index for path, or -1.
func (p *Panel) IndexOf(path string) int {
	if i, ok := p.byPath[path]; ok {
		return i
	}
	return -1
}

// ClearHighlights removes every search mark.
func (p *Panel) ClearHighlights() {
	for _, r := range p.Rows {
		r.highlighted = false
	}
}

// Text renders the panel as indented plain text, one row per line, clamped to width
// columns when width > 0.
func (p *Panel) Text(indent, labelWidth, width int) string {
	var b strings.Builder
	for i, r := range p.Rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatRow(r, indent, labelWidth, width))
	}
	return b.String()
}

// FormatRow renders a row without styling.
func FormatRow(r *Row, indent, labelWidth, width int) string {
	pad := strings.Repeat(" ", r.Depth*indent)
	var line string
	if r.Kind == GroupRow {
		line = pad + "▸ " + r.Label
	} else {
		label := r.Label + ":"
		if labelWidth > 0 {
			label = runewidth.FillRight(runewidth.Truncate(label, labelWidth, "…"), labelWidth)
		}
		line = pad + label + " " + r.value
	}
	if width > 0 {
		line = runewidth.Truncate(line, width, "…")
	}
	return line
}
