// Package table wraps the bubbles table with typed rows, used for the search result list.
package table

import (
	"fmt"
	"image/color"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

type Column = bubtable.Column
type Row = bubtable.Row

// Model displays values of type V, converting each to a table row with toRow.
type Model[V any] struct {
	table    bubtable.Model
	styles   bubtable.Styles
	rows     []V
	filter   string
	filtered []V
	columns  []Column

	toRow   func(V) Row
	keyFunc func(V) string

	width   int
	height  int
	focused bool
	noColor bool

	headerFG   color.Color
	selectedFG color.Color
	selectedBG color.Color
}

// NewModel creates a table. keyFunc supplies the text the filter matches against.
func NewModel[V any](columns []Column, toRow func(V) Row, keyFunc func(V) string) *Model[V] {
	t := bubtable.New(
		bubtable.WithColumns(columns),
		bubtable.WithFocused(false),
		bubtable.WithHeight(5),
	)
	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		PaddingLeft(0).
		PaddingRight(1)
	s.Selected = s.Selected.PaddingLeft(0).PaddingRight(0)
	s.Cell = lipgloss.NewStyle().PaddingLeft(0).PaddingRight(1)
	t.SetStyles(s)

	return &Model[V]{
		table:   t,
		styles:  s,
		columns: columns,
		toRow:   toRow,
		keyFunc: keyFunc,
		width:   80,
		height:  5,
	}
}

// SetRows replaces the rows and moves the cursor to the top.
func (m *Model[V]) SetRows(rows []V) {
	m.rows = rows
	m.applyFilter()
	m.table.SetCursor(0)
}

// Rows returns the rows passing the filter.
func (m *Model[V]) Rows() []V { return m.filtered }

// AllRows returns every row.
func (m *Model[V]) AllRows() []V { return m.rows }

// Len is the number of visible rows.
func (m *Model[V]) Len() int { return len(m.filtered) }

// SetFilter keeps rows whose key contains filter, ignoring case.
func (m *Model[V]) SetFilter(filter string) {
	m.filter = filter
	m.applyFilter()
}

// Filter returns the current filter text.
func (m *Model[V]) Filter() string { return m.filter }

// ClearFilter shows every row.
func (m *Model[V]) ClearFilter() {
	m.filter = ""
	m.applyFilter()
}

func (m *Model[V]) applyFilter() {
	if m.filter == "" {
		m.filtered = m.rows
	} else {
		needle := strings.ToLower(m.filter)
		m.filtered = nil
		for _, row := range m.rows {
			if strings.Contains(strings.ToLower(m.keyFunc(row)), needle) {
				m.filtered = append(m.filtered, row)
			}
		}
	}
	tableRows := make([]Row, len(m.filtered))
	for i, row := range m.filtered {
		tableRows[i] = m.toRow(row)
	}
	m.table.SetRows(tableRows)
	if m.Cursor() >= len(m.filtered) && len(m.filtered) > 0 {
		m.SetCursor(0)
	}
}

// Cursor returns the selected index.
func (m *Model[V]) Cursor() int { return m.table.Cursor() }

// SetCursor selects a row.
func (m *Model[V]) SetCursor(pos int) { m.table.SetCursor(pos) }

// SelectedRow returns the row under the cursor, or nil.
func (m *Model[V]) SelectedRow() *V {
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[cursor]
}

// SetSize resizes the table. The last column takes the width left over by the others.
func (m *Model[V]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(height)
	m.table.SetWidth(width)
	if n := len(m.columns); n > 0 {
		used := 0
		for _, c := range m.columns[:n-1] {
			used += c.Width + 1
		}
		if rest := width - used - 1; rest > 4 {
			cols := append([]Column(nil), m.columns...)
			cols[n-1].Width = rest
			m.table.SetColumns(cols)
		}
	}
}

// Focus lets the table take key input.
func (m *Model[V]) Focus() {
	m.focused = true
	m.table.Focus()
}

// Blur stops key input.
func (m *Model[V]) Blur() {
	m.focused = false
	m.table.Blur()
}

// Focused reports focus.
func (m *Model[V]) Focused() bool { return m.focused }

// SetNoColor drops colours, keeping reverse video for the selection.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors sets the header and selection colours.
func (m *Model[V]) SetColors(headerFG, selectedFG, selectedBG color.Color) {
	m.headerFG = headerFG
	m.selectedFG = selectedFG
	m.selectedBG = selectedBG
	m.applyColorScheme()
}

func (m *Model[V]) applyColorScheme() {
	s := m.styles
	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if m.headerFG != nil {
			s.Header = s.Header.Foreground(m.headerFG)
		}
		if m.selectedFG != nil {
			s.Selected = s.Selected.Foreground(m.selectedFG)
		}
		if m.selectedBG != nil {
			s.Selected = s.Selected.Background(m.selectedBG)
		}
	}
	m.table.SetStyles(s)
	m.styles = s
}

// Update forwards navigation keys to the table.
func (m *Model[V]) Update(msg tea.Msg) (*Model[V], tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m *Model[V]) View() string { return m.table.View() }

// Height is the rendered height, header included.
func (m *Model[V]) Height() int { return lipgloss.Height(m.View()) }

func (m *Model[V]) String() string {
	return fmt.Sprintf("Table[rows=%d, filtered=%d, cursor=%d, filter=%q]",
		len(m.rows), len(m.filtered), m.Cursor(), m.filter)
}
