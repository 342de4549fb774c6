package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/confviz/internal/navigator"
)

// selectPathMsg asks the root model to show the panel row for Path.
type selectPathMsg struct {
	Path string
}

// TreeView is the collapsible navigation tree.
type TreeView struct {
	roots    []*navigator.Node
	expanded map[string]bool
	visible  []*navigator.Node
	theme    *Theme

	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

// NewTreeView shows roots with every node collapsed.
func NewTreeView(roots []*navigator.Node, theme *Theme) *TreeView {
	t := &TreeView{roots: roots, expanded: map[string]bool{}, theme: theme, width: 30, height: 20}
	t.refresh()
	return t
}

func (t *TreeView) Init() tea.Cmd { return nil }

func (t *TreeView) refresh() {
	t.visible = navigator.Flatten(t.roots, t.expanded)
	t.cursor = clamp(t.cursor, 0, len(t.visible)-1)
	t.ensureVisible()
}

// Visible returns the rows currently shown.
func (t *TreeView) Visible() []*navigator.Node { return t.visible }

// Current returns the node under the cursor.
func (t *TreeView) Current() *navigator.Node {
	if t.cursor < 0 || t.cursor >= len(t.visible) {
		return nil
	}
	return t.visible[t.cursor]
}

// Reveal expands the ancestors of path and moves the cursor to it.
func (t *TreeView) Reveal(path string) bool {
	for _, a := range navigator.Ancestors(path) {
		t.expanded[a] = true
	}
	t.visible = navigator.Flatten(t.roots, t.expanded)
	for i, n := range t.visible {
		if n.Path == path {
			t.cursor = i
			t.ensureVisible()
			return true
		}
	}
	t.refresh()
	return false
}

func (t *TreeView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	switch key.String() {
	case "up", "k":
		t.move(-1)
	case "down", "j":
		t.move(1)
	case "pgup":
		t.move(-max(1, t.height-1))
	case "pgdown":
		t.move(max(1, t.height-1))
	case "home", "g":
		t.move(-len(t.visible))
	case "end", "G":
		t.move(len(t.visible))
	case "right", "l":
		if n := t.Current(); n != nil && !n.Leaf() {
			t.expanded[n.Path] = true
			t.refresh()
		}
	case "left", "h":
		t.collapse()
	case "space", " ":
		if n := t.Current(); n != nil && !n.Leaf() {
			t.expanded[n.Path] = !t.expanded[n.Path]
			t.refresh()
		}
	case "enter":
		if n := t.Current(); n != nil {
			path := n.Path
			return t, func() tea.Msg { return selectPathMsg{Path: path} }
		}
	}
	return t, nil
}

func (t *TreeView) collapse() {
	n := t.Current()
	if n == nil {
		return
	}
	if t.expanded[n.Path] {
		delete(t.expanded, n.Path)
		t.refresh()
		return
	}
	if ancestors := navigator.Ancestors(n.Path); len(ancestors) > 0 {
		parent := ancestors[len(ancestors)-1]
		for i, v := range t.visible {
			if v.Path == parent {
				t.cursor = i
				t.ensureVisible()
				return
			}
		}
	}
}

func (t *TreeView) move(delta int) {
	t.cursor = clamp(t.cursor+delta, 0, len(t.visible)-1)
	t.ensureVisible()
}

func (t *TreeView) ensureVisible() {
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.height > 0 && t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	t.offset = clamp(t.offset, 0, max(0, len(t.visible)-t.height))
}

func (t *TreeView) SetSize(width, height int) {
	t.width, t.height = width, height
	t.ensureVisible()
}

func (t *TreeView) Focus() tea.Cmd {
	t.focused = true
	return nil
}

func (t *TreeView) Blur() { t.focused = false }

func (t *TreeView) Focused() bool { return t.focused }

// Status is the path under the cursor.
func (t *TreeView) Status() string {
	if n := t.Current(); n != nil {
		return n.Path
	}
	return ""
}

func (t *TreeView) View() string {
	if len(t.visible) == 0 {
		return t.theme.Tooltip.Render("(nothing loaded)")
	}
	end := min(len(t.visible), t.offset+max(t.height, 0))
	lines := make([]string, 0, end-t.offset)
	for i := t.offset; i < end; i++ {
		n := t.visible[i]
		var glyph string
		switch {
		case n.Leaf():
			glyph = "• "
		case t.expanded[n.Path]:
			glyph = "▾ "
		default:
			glyph = "▸ "
		}
		text := strings.Repeat("  ", n.Depth) + glyph + n.Label
		if t.width > 0 {
			text = ansi.Truncate(text, t.width, "…")
		}
		switch {
		case i == t.cursor && t.focused:
			text = t.theme.Cursor.Render(text)
		case n.Depth == 0:
			text = t.theme.Group.Render(text)
		default:
			text = t.theme.Label.Render(text)
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}
