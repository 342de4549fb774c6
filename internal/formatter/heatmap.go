package formatter

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/oakwood-commons/confviz/internal/diff"
)

// HeatmapOptions controls the score table.
type HeatmapOptions struct {
	EnableColors bool
}

// RenderHeatmap writes the section by file score table to w, with a total row.
func RenderHeatmap(h *diff.Heatmap, w io.Writer, opts HeatmapOptions) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = false

	header := table.Row{"Section"}
	for _, f := range h.Files {
		header = append(header, f)
	}
	tw.AppendHeader(header)

	totals := make([]int, len(h.Files))
	for r, section := range h.Sections {
		row := table.Row{section}
		for c := range h.Files {
			score := h.Cells[r][c]
			totals[c] += score
			row = append(row, heatCell(h, r, c, score, opts))
		}
		tw.AppendRow(row)
	}

	footer := table.Row{"total"}
	for _, t := range totals {
		footer = append(footer, t)
	}
	tw.AppendFooter(footer)

	configs := make([]table.ColumnConfig, 0, len(h.Files))
	for c := range h.Files {
		configs = append(configs, table.ColumnConfig{Number: c + 2, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	tw.Render()
}

func heatCell(h *diff.Heatmap, r, c, score int, opts HeatmapOptions) string {
	s := strconv.Itoa(score)
	if !opts.EnableColors || score == 0 {
		return s
	}
	switch t := h.Intensity(r, c); {
	case t >= 2.0/3:
		return text.Colors{text.FgHiRed, text.Bold}.Sprint(s)
	case t >= 1.0/3:
		return text.Colors{text.FgYellow}.Sprint(s)
	default:
		return text.Colors{text.FgGreen}.Sprint(s)
	}
}
