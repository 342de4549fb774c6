package ui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/confviz/internal/diff"
)

const heatCellMin = 8

// HeatmapView draws the section by file score grid.
type HeatmapView struct {
	heat   *diff.Heatmap
	theme  *Theme
	offset int
	width  int
	height int
}

func NewHeatmapView(h *diff.Heatmap, theme *Theme) *HeatmapView {
	return &HeatmapView{heat: h, theme: theme, width: 80, height: 20}
}

func (h *HeatmapView) Init() tea.Cmd { return nil }

func (h *HeatmapView) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || h.heat == nil {
		return h, nil
	}
	rows := len(h.heat.Sections)
	switch key.String() {
	case "up", "k":
		h.offset = clamp(h.offset-1, 0, max(0, rows-h.bodyHeight()))
	case "down", "j":
		h.offset = clamp(h.offset+1, 0, max(0, rows-h.bodyHeight()))
	}
	return h, nil
}

func (h *HeatmapView) bodyHeight() int { return max(1, h.height-2) }

func (h *HeatmapView) SetSize(width, height int) { h.width, h.height = width, height }

func (h *HeatmapView) Status() string {
	if h.heat == nil {
		return ""
	}
	return "max difference " + strconv.Itoa(h.heat.Max)
}

func (h *HeatmapView) View() string {
	if h.heat == nil {
		return h.theme.Tooltip.Render("Load two or more files to compare.")
	}
	labelW := runewidth.StringWidth("Section")
	for _, s := range h.heat.Sections {
		labelW = max(labelW, runewidth.StringWidth(s))
	}
	cellW := heatCellMin
	for _, f := range h.heat.Files {
		cellW = max(cellW, runewidth.StringWidth(f)+2)
	}

	var b strings.Builder
	header := runewidth.FillRight("Section", labelW)
	for _, f := range h.heat.Files {
		header += " " + lipgloss.NewStyle().Width(cellW).Align(lipgloss.Center).Render(f)
	}
	b.WriteString(h.theme.Group.Render(header))

	end := min(len(h.heat.Sections), h.offset+h.bodyHeight())
	for r := h.offset; r < end; r++ {
		b.WriteByte('\n')
		b.WriteString(h.theme.Label.Render(runewidth.FillRight(h.heat.Sections[r], labelW)))
		for c := range h.heat.Files {
			cell := lipgloss.NewStyle().Width(cellW).Align(lipgloss.Center)
			if !h.theme.NoColor {
				cell = cell.Background(h.heat.Color(r, c, h.theme.HeatZero, h.theme.HeatMax)).
					Foreground(lipgloss.Color("0"))
			}
			b.WriteString(" " + cell.Render(strconv.Itoa(h.heat.Cells[r][c])))
		}
	}
	out := b.String()
	if h.width > 0 {
		lines := strings.Split(out, "\n")
		for i, l := range lines {
			lines[i] = ansi.Truncate(l, h.width, "…")
		}
		out = strings.Join(lines, "\n")
	}
	return out
}
