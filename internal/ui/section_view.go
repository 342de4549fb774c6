package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/confviz/internal/panel"
)

// fieldEditedMsg reports a committed field edit so the footer can say so.
type fieldEditedMsg struct {
	Path  string
	Value string
}

// SectionView shows one section's panel with a row cursor and in-place field editing.
type SectionView struct {
	panel *panel.Panel
	theme *Theme

	indent     int
	labelWidth int

	cursor  int
	offset  int
	width   int
	height  int
	focused bool

	editing bool
	input   textinput.Model
}

// NewSectionView wraps a rendered panel.
func NewSectionView(p *panel.Panel, theme *Theme, indent, labelWidth int) *SectionView {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 4096
	return &SectionView{
		panel:      p,
		theme:      theme,
		indent:     indent,
		labelWidth: labelWidth,
		width:      80,
		height:     20,
		input:      in,
	}
}

func (v *SectionView) Init() tea.Cmd { return nil }

// Panel returns the underlying panel.
func (v *SectionView) Panel() *panel.Panel { return v.panel }

// Cursor is the selected row index.
func (v *SectionView) Cursor() int { return v.cursor }

// Offset is the first visible row.
func (v *SectionView) Offset() int { return v.offset }

// Editing reports whether a field is being edited.
func (v *SectionView) Editing() bool { return v.editing }

// Current returns the row under the cursor.
func (v *SectionView) Current() *panel.Row {
	if v.cursor < 0 || v.cursor >= len(v.panel.Rows) {
		return nil
	}
	return v.panel.Rows[v.cursor]
}

func (v *SectionView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if v.editing {
			var cmd tea.Cmd
			v.input, cmd = v.input.Update(msg)
			return v, cmd
		}
		return v, nil
	}
	if v.editing {
		return v, v.updateEditing(key)
	}
	switch key.String() {
	case "up", "k":
		v.move(-1)
	case "down", "j":
		v.move(1)
	case "pgup":
		v.move(-v.pageSize())
	case "pgdown":
		v.move(v.pageSize())
	case "home", "g":
		v.move(-len(v.panel.Rows))
	case "end", "G":
		v.move(len(v.panel.Rows))
	case "enter", "e":
		return v, v.startEditing()
	}
	return v, nil
}

func (v *SectionView) updateEditing(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		row := v.Current()
		v.stopEditing()
		if row == nil {
			return nil
		}
		row.SetValue(v.input.Value())
		path, value := row.Path, row.Value()
		return func() tea.Msg { return fieldEditedMsg{Path: path, Value: value} }
	case "esc":
		v.stopEditing()
		return nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(key)
	return cmd
}

func (v *SectionView) startEditing() tea.Cmd {
	row := v.Current()
	if row == nil || row.Kind != panel.FieldRow {
		return nil
	}
	v.editing = true
	v.input.SetValue(row.Value())
	v.input.CursorEnd()
	return v.input.Focus()
}

func (v *SectionView) stopEditing() {
	v.editing = false
	v.input.Blur()
}

func (v *SectionView) pageSize() int {
	return max(1, v.height-1)
}

func (v *SectionView) move(delta int) {
	v.cursor = clamp(v.cursor+delta, 0, len(v.panel.Rows)-1)
	v.ensureVisible()
}

func (v *SectionView) ensureVisible() {
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.height > 0 && v.cursor >= v.offset+v.height {
		v.offset = v.cursor - v.height + 1
	}
	v.offset = clamp(v.offset, 0, max(0, len(v.panel.Rows)-v.height))
}

// FocusPath moves the cursor to path and scrolls it into view.
func (v *SectionView) FocusPath(path string) bool {
	i := v.panel.IndexOf(path)
	if i < 0 {
		return false
	}
	if v.editing {
		v.stopEditing()
	}
	v.cursor = i
	v.ensureVisible()
	return true
}

func (v *SectionView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.input.SetWidth(max(1, width/2))
	v.ensureVisible()
}

func (v *SectionView) Focus() tea.Cmd {
	v.focused = true
	return nil
}

func (v *SectionView) Blur() {
	v.focused = false
	if v.editing {
		v.stopEditing()
	}
}

func (v *SectionView) Focused() bool { return v.focused }

// Status is the tooltip of the row under the cursor, or its path.
func (v *SectionView) Status() string {
	row := v.Current()
	if row == nil {
		return ""
	}
	if row.Tooltip != "" {
		return row.Tooltip
	}
	return row.Path
}

func (v *SectionView) View() string {
	end := min(len(v.panel.Rows), v.offset+max(v.height, 0))
	lines := make([]string, 0, end-v.offset)
	for i := v.offset; i < end; i++ {
		lines = append(lines, v.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (v *SectionView) renderRow(i int) string {
	row := v.panel.Rows[i]
	th := v.theme
	pad := strings.Repeat(" ", row.Depth*v.indent)
	selected := i == v.cursor && v.focused

	var line string
	if row.Kind == panel.GroupRow {
		title := th.Group.Render("▸ " + row.Label)
		if selected {
			title = th.Cursor.Render("▸ " + row.Label)
		}
		line = pad + title
	} else {
		label := row.Label + ":"
		if v.labelWidth > 0 {
			label = runewidth.FillRight(runewidth.Truncate(label, v.labelWidth, "…"), v.labelWidth)
		}
		if selected {
			label = th.Cursor.Render(label)
		} else {
			label = th.Label.Render(label)
		}
		var value string
		switch {
		case i == v.cursor && v.editing:
			value = v.input.View()
		case row.Highlighted():
			value = th.Match.Render(row.Value())
		case row.Edited():
			value = th.Edited.Render(row.Value())
		default:
			value = th.Value.Render(row.Value())
		}
		line = pad + label + " " + value
	}
	if v.width > 0 {
		line = ansi.Truncate(line, v.width, "…")
	}
	return line
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(n, lo), hi)
}
