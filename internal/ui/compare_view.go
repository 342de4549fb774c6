package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// CompareView scrolls the structural diff text of the first two files.
type CompareView struct {
	title  string
	lines  []string
	theme  *Theme
	offset int
	width  int
	height int
}

// NewCompareView shows text; an empty text means the documents match.
func NewCompareView(title, text string, theme *Theme) *CompareView {
	if text == "" {
		text = "No differences."
	}
	return &CompareView{
		title:  title,
		lines:  strings.Split(text, "\n"),
		theme:  theme,
		width:  80,
		height: 20,
	}
}

func (c *CompareView) Init() tea.Cmd { return nil }

func (c *CompareView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch key.String() {
	case "up", "k":
		c.scroll(-1)
	case "down", "j":
		c.scroll(1)
	case "pgup":
		c.scroll(-max(1, c.height-1))
	case "pgdown", "space":
		c.scroll(max(1, c.height-1))
	case "home", "g":
		c.offset = 0
	case "end", "G":
		c.scroll(len(c.lines))
	}
	return c, nil
}

func (c *CompareView) scroll(delta int) {
	c.offset = clamp(c.offset+delta, 0, max(0, len(c.lines)-c.height))
}

func (c *CompareView) SetSize(width, height int) {
	c.width, c.height = width, height
	c.scroll(0)
}

func (c *CompareView) Status() string { return c.title }

func (c *CompareView) View() string {
	end := min(len(c.lines), c.offset+max(c.height, 0))
	out := make([]string, 0, end-c.offset)
	for _, line := range c.lines[c.offset:end] {
		if c.width > 0 {
			line = ansi.Truncate(line, c.width, "…")
		}
		switch {
		case strings.HasPrefix(line, "+ "):
			line = c.theme.Added.Render(line)
		case strings.HasPrefix(line, "- "):
			line = c.theme.Removed.Render(line)
		default:
			line = c.theme.Value.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
