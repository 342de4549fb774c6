package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// Run starts the interactive program on m. A zero width or height is taken from the
// terminal; when neither is set Bubble Tea sizes the window itself.
func Run(m *Model, width, height int, opts ...tea.ProgramOption) error {
	defer func() { _ = m.Close() }()

	if width > 0 || height > 0 {
		w, h := TerminalSize(width, height)
		m.width, m.height = w, h
		m.layout()
		opts = append(opts, tea.WithWindowSize(w, h))
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// TerminalSize fills in zero dimensions from stdout, falling back to 80x24.
func TerminalSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}
