package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
)

type helpEntry struct {
	keys string
	desc string
}

var helpEntries = []helpEntry{
	{"tab", "cycle focus: tree, panel, results"},
	{"[ / ]", "previous / next tab"},
	{"1-9", "jump to tab"},
	{"↑↓ j/k", "move cursor"},
	{"→ l / ← h", "expand / collapse tree node"},
	{"enter", "tree: show node · panel: edit field · results: open"},
	{"esc", "cancel edit or prompt, clear search"},
	{"/", "search values and paths (prefix ? for a CEL condition)"},
	{"n / N", "next / previous search result"},
	{"ctrl+o", "load files (space separated paths)"},
	{"r", "reload the current files"},
	{"? f1", "toggle help"},
	{"q ctrl+c", "quit"},
}

// helpView lists key bindings, sized to width.
func helpView(theme *Theme, title string, width int) string {
	keyW := 0
	for _, e := range helpEntries {
		keyW = max(keyW, runewidth.StringWidth(e.keys))
	}
	lines := []string{theme.Group.Render(title), ""}
	for _, e := range helpEntries {
		lines = append(lines, theme.Match.UnsetUnderline().Render(runewidth.FillRight(e.keys, keyW))+"  "+theme.Label.Render(e.desc))
	}
	lines = append(lines, "", theme.Tooltip.Render("Edits change the displayed text only; files are never written."))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if theme.BorderColor != nil {
		box = box.BorderForeground(theme.BorderColor)
	}
	if width > 4 {
		box = box.MaxWidth(width)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// errorView renders the blocking load error box.
func errorView(theme *Theme, text string, width int) string {
	w := min(max(width-4, 20), 80)
	body := theme.Error.Render("Load failed") + "\n\n" +
		lipgloss.NewStyle().Width(w-4).Render(text) + "\n\n" +
		theme.Tooltip.Render("press enter or esc to dismiss")
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Padding(0, 1).
		Width(w)
	if fg := theme.Error.GetForeground(); !theme.NoColor && fg != nil {
		box = box.BorderForeground(fg)
	}
	return box.Render(body)
}
