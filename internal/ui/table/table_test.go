package table

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

type result struct {
	Section string
	Path    string
}

func makeModel() *Model[result] {
	cols := []Column{{Title: "SECTION", Width: 10}, {Title: "PATH", Width: 20}}
	toRow := func(v result) Row { return Row{v.Section, v.Path} }
	keyFn := func(v result) string { return v.Path }
	return NewModel(cols, toRow, keyFn)
}

func TestTable_SetRowsAndFilter(t *testing.T) {
	m := makeModel()
	m.SetRows([]result{{"a", "a.Timeout"}, {"b", "b.host"}, {"c", "c.timeouts[0]"}})
	if got := m.Len(); got != 3 {
		t.Fatalf("expected 3 rows initially, got %d", got)
	}

	m.SetFilter("TIMEOUT")
	rows := m.Rows()
	if len(rows) != 2 || rows[0].Section != "a" || rows[1].Section != "c" {
		t.Fatalf("unexpected filtered rows: %+v", rows)
	}

	m.ClearFilter()
	if m.Len() != 3 {
		t.Fatalf("expected 3 rows after clear, got %d", m.Len())
	}
}

func TestTable_CursorSelection(t *testing.T) {
	m := makeModel()
	if m.SelectedRow() != nil {
		t.Fatalf("empty table should have no selection")
	}
	m.SetRows([]result{{"a", "a.x"}, {"b", "b.y"}})
	if sel := m.SelectedRow(); sel == nil || sel.Section != "a" {
		t.Fatalf("expected first row selected, got %+v", sel)
	}

	m.Focus()
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if sel := m.SelectedRow(); sel == nil || sel.Section != "b" {
		t.Fatalf("expected second row after down, got %+v", sel)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Cursor() > 1 {
		t.Fatalf("cursor out of bounds: %d", m.Cursor())
	}

	m.SetRows([]result{{"z", "z.z"}})
	if m.Cursor() != 0 {
		t.Fatalf("SetRows should reset the cursor, got %d", m.Cursor())
	}
}

func TestTable_SizeFocusColors(t *testing.T) {
	m := makeModel()
	m.SetRows([]result{{"k", "k.v"}})
	m.SetSize(60, 6)
	if m.Height() <= 0 {
		t.Fatalf("expected non-zero height")
	}
	if !strings.Contains(m.View(), "k.v") {
		t.Fatalf("expected row in view: %q", m.View())
	}
	m.Blur()
	if m.Focused() {
		t.Fatalf("expected blurred")
	}
	m.SetNoColor(true)
	m.SetColors(lipgloss.Color("12"), lipgloss.Color("15"), lipgloss.Color("8"))
	if m.String() == "" {
		t.Fatalf("expected debug string")
	}
}
