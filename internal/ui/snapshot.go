package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SnapshotConfig sizes a one-off render.
type SnapshotConfig struct {
	Width     int
	Height    int
	NoColor   bool
	StartKeys []string
	// Query runs a search before rendering.
	Query string
}

// Snapshot renders a single frame of m without starting a program.
func Snapshot(m *Model, cfg SnapshotConfig) string {
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	if cfg.Height <= 0 {
		cfg.Height = 24
	}
	m.width, m.height = cfg.Width, cfg.Height
	m.layout()
	if strings.TrimSpace(cfg.Query) != "" {
		m.runSearch(cfg.Query)
	}
	ApplyKeys(m, cfg.StartKeys)

	view := m.render()
	if cfg.NoColor {
		view = ansi.Strip(view)
	}
	return padSnapshotHeight(view, cfg.Height, cfg.Width)
}

func padSnapshotHeight(view string, height, width int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines[:height], "\n")
	}
	pad := strings.Repeat(" ", max(width, 1))
	for len(lines) < height {
		lines = append(lines, pad)
	}
	return strings.Join(lines, "\n")
}
