package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/confviz/internal/config"
	"github.com/oakwood-commons/confviz/internal/diff"
)

const baseJSON = `{
	"shared": {"timeout": 30, "host": "Alpha.example"},
	"mobile": {"retries": 3, "label": "beta"},
	"web": {"title": "alphabet"}
}`

const otherJSON = `{
	"shared": {"timeout": 45, "host": "Alpha.example"},
	"mobile": {"retries": 3, "label": "beta"},
	"web": {"title": "alphabet"}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	d, err := diff.New(diff.FormatMergePatch)
	require.NoError(t, err)
	m := NewModel(Options{Config: cfg, Differ: d, Logger: logr.Discard(), NoColor: true})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func loadedModel(t *testing.T, contents ...string) (*Model, []string) {
	t.Helper()
	dir := t.TempDir()
	names := []string{"base.json", "other.json", "third.json"}
	var paths []string
	for i, c := range contents {
		paths = append(paths, writeFile(t, dir, names[i], c))
	}
	m := newTestModel(t)
	require.NoError(t, m.Load(paths))
	return m, paths
}

func press(m *Model, keys ...string) {
	ApplyKeys(m, keys)
}

func tabTitles(m *Model) []string {
	out := make([]string, len(m.Tabs()))
	for i, t := range m.Tabs() {
		out[i] = t.Title
	}
	return out
}
