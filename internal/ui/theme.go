package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/confviz/internal/config"
)

// Theme holds the styles used across the views.
type Theme struct {
	NoColor bool

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Group       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Edited      lipgloss.Style
	Match       lipgloss.Style
	Cursor      lipgloss.Style
	Tooltip     lipgloss.Style
	Error       lipgloss.Style
	Border      lipgloss.Style
	Added       lipgloss.Style
	Removed     lipgloss.Style

	CursorColor color.Color
	BorderColor color.Color
	HeatZero    color.Color
	HeatMax     color.Color
}

// NewTheme builds styles from configured colours. With noColor every style keeps only
// bold and reverse attributes.
func NewTheme(cfg config.Config, noColor bool) Theme {
	tc := cfg.UI.Theme
	fg := func(c string) lipgloss.Style {
		s := lipgloss.NewStyle()
		if !noColor && c != "" {
			s = s.Foreground(lipgloss.Color(c))
		}
		return s
	}
	t := Theme{
		NoColor:     noColor,
		TabActive:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		TabInactive: fg(tc.TabInactive).Padding(0, 1),
		Group:       fg(tc.Group).Bold(true),
		Label:       fg(tc.Label),
		Value:       fg(tc.Value),
		Edited:      fg(tc.Edited).Italic(true),
		Match:       fg(tc.Match).Bold(true).Underline(true),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Tooltip:     fg(tc.Tooltip).Italic(true),
		Error:       fg(tc.Error).Bold(true),
		Border:      fg(tc.Border),
		Added:       fg("2"),
		Removed:     fg("1"),
		HeatZero:    lipgloss.Color(orDefault(cfg.Heatmap.ZeroColor, "#FFFFFF")),
		HeatMax:     lipgloss.Color(orDefault(cfg.Heatmap.MaxColor, "#FF0000")),
	}
	if !noColor {
		t.TabActive = t.TabActive.Foreground(lipgloss.Color("15"))
		if tc.TabActive != "" {
			t.TabActive = t.TabActive.Background(lipgloss.Color(tc.TabActive))
		}
		if tc.Cursor != "" {
			t.CursorColor = lipgloss.Color(tc.Cursor)
			t.Cursor = lipgloss.NewStyle().Background(t.CursorColor).Foreground(lipgloss.Color("15"))
		}
		if tc.Border != "" {
			t.BorderColor = lipgloss.Color(tc.Border)
		}
	} else {
		t.TabActive = t.TabActive.Reverse(true)
	}
	return t
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
