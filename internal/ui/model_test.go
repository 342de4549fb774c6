package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/confviz/internal/search"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

func TestEmptyModelPromptsToOpen(t *testing.T) {
	m := newTestModel(t)
	out := Snapshot(m, SnapshotConfig{Width: 80, Height: 20, NoColor: true})
	assert.Contains(t, out, "no files loaded")
	assert.Contains(t, out, "ctrl+o")
	assert.Empty(t, m.Tabs())
}

func TestSingleFileShowsSectionTabsOnly(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)

	assert.Equal(t, []string{"shared", "mobile", "web"}, tabTitles(m))
	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, "▸ Object")
	assert.Contains(t, out, "timeout:")
	assert.Contains(t, out, "Alpha.example")
	assert.NotContains(t, out, "Compare:")
}

func TestTwoFilesAddCompareAndHeatmap(t *testing.T) {
	m, _ := loadedModel(t, baseJSON, otherJSON)

	assert.Equal(t, []string{"shared", "mobile", "web", "Compare: other.json", "Heatmap"}, tabTitles(m))

	press(m, "<tab>", "4")
	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, `"timeout": 45`)

	press(m, "]")
	out = Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, "Section")
	assert.Contains(t, out, "max difference 1")
	assert.Equal(t, 4, m.ActiveTab())
}

func TestIdenticalFilesShowNoDifferences(t *testing.T) {
	m, _ := loadedModel(t, baseJSON, baseJSON)
	press(m, "4", "<tab>")
	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, "No differences.")
}

func TestFailedLoadKeepsPreviousState(t *testing.T) {
	m, paths := loadedModel(t, baseJSON)
	before := m.Workspace()

	missing := filepath.Join(t.TempDir(), "missing.json")
	err := m.Load([]string{paths[0], missing})
	require.Error(t, err)
	var le *loader.LoadError
	require.True(t, errors.As(err, &le))
	assert.Same(t, before, m.Workspace())

	msg := m.loadCmd([]string{paths[0], missing})()
	failed, ok := msg.(loadFailedMsg)
	require.True(t, ok)
	m.Update(failed)

	assert.Equal(t, ErrorMode, m.Mode())
	assert.Contains(t, m.ErrorText(), "missing.json")
	assert.Same(t, before, m.Workspace())
	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, "Load failed")

	press(m, "<esc>")
	assert.Equal(t, NormalMode, m.Mode())
	assert.Equal(t, []string{"shared", "mobile", "web"}, tabTitles(m))
}

func TestNonObjectRootIsRejected(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "list.json", `[1, 2]`)
	m := newTestModel(t)
	err := m.Load([]string{p})
	require.ErrorIs(t, err, loader.ErrNotObject)
	assert.True(t, m.Workspace().Empty())
}

func TestLoadPromptOpensFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", baseJSON)
	b := writeFile(t, dir, "b.json", otherJSON)
	m := newTestModel(t)

	press(m, "<c-o>")
	require.Equal(t, LoadMode, m.Mode())
	press(m, a+" "+b)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, NormalMode, m.Mode())
	assert.Len(t, m.Workspace().Files(), 2)
	assert.Contains(t, tabTitles(m), "Heatmap")
}

func TestSearchHighlightsAndJumps(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)

	press(m, "/alpha<enter>")
	require.Equal(t, NormalMode, m.Mode())
	assert.Equal(t, []search.Result{
		{Section: "shared", Path: "shared.host"},
		{Section: "web", Path: "web.title"},
	}, m.Results())
	assert.Equal(t, 0, m.ActiveTab())
	sv := m.SectionView()
	require.NotNil(t, sv)
	assert.Equal(t, "shared.host", sv.Current().Path)
	assert.True(t, sv.Current().Highlighted())

	press(m, "n")
	assert.Equal(t, 2, m.ActiveTab())
	assert.Equal(t, "web.title", m.SectionView().Current().Path)

	press(m, "N")
	assert.Equal(t, 0, m.ActiveTab())

	press(m, "<esc>")
	assert.Empty(t, m.Results())
	assert.False(t, m.SectionView().Current().Highlighted())
}

func TestSearchExpressionAndErrors(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)

	press(m, "/? _ > 10<enter>")
	assert.Equal(t, []search.Result{{Section: "shared", Path: "shared.timeout"}}, m.Results())

	press(m, "/<bs><bs><bs><bs><bs><bs><bs><bs><bs>?key ==<enter>")
	assert.Empty(t, m.Results())
	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, "search:")
}

func TestExpressionCompletion(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)

	press(m, "/?sec")
	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, "tab → section")

	press(m, "<esc>", "/<bs><bs><bs><bs>?value.starts<tab>")
	assert.Equal(t, "?value.startsWith(", m.searchInput.Value())

	press(m, `"alpha")<enter>`)
	assert.Equal(t, []search.Result{{Section: "web", Path: "web.title"}}, m.Results())
}

func TestSearchNoMatchesReportsStatus(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)
	press(m, "/zzz<enter>")
	assert.Empty(t, m.Results())
	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, "no matches for zzz")
}

func TestTreeSelectionShowsSection(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)

	press(m, "<down><right><down>")
	require.Equal(t, "mobile.retries", m.tree.Current().Path)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, 1, m.ActiveTab())
	assert.Equal(t, focusContent, m.focus)
	assert.Equal(t, "mobile.retries", m.SectionView().Current().Path)
}

func TestEditFieldChangesDisplayOnly(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)

	press(m, "<tab>", "<down>", "<enter>")
	sv := m.SectionView()
	require.True(t, sv.Editing())
	press(m, "5")
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())

	row := sv.Current()
	assert.Equal(t, "305", row.Value())
	assert.True(t, row.Edited())
	v, err := m.Workspace().Value("shared.timeout")
	require.NoError(t, err)
	assert.Equal(t, "30", v.Text())

	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, "display only")
}

func TestEditCancelKeepsValue(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)
	press(m, "<tab>", "<down>", "<enter>", "99", "<esc>")
	sv := m.SectionView()
	assert.False(t, sv.Editing())
	assert.Equal(t, "30", sv.Current().Value())
}

func TestEditsSurviveTabSwitch(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)
	press(m, "<tab>", "<down>", "<enter>", "1<enter>")
	press(m, "]", "[")
	assert.Equal(t, "301", m.SectionView().Current().Value())
}

func TestReloadPicksUpChanges(t *testing.T) {
	m, paths := loadedModel(t, baseJSON)
	require.NoError(t, os.WriteFile(paths[0], []byte(`{"shared": {"timeout": 99}}`), 0o600))

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, []string{"shared"}, tabTitles(m))
	v, err := m.Workspace().Value("shared.timeout")
	require.NoError(t, err)
	assert.Equal(t, "99", v.Text())
}

func TestHelpToggles(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)
	press(m, "?")
	require.Equal(t, HelpMode, m.Mode())
	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 30, NoColor: true})
	assert.Contains(t, out, "toggle help")

	press(m, "?")
	assert.Equal(t, NormalMode, m.Mode())
}

func TestTooltipShownInStatus(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)
	m.opts.Tooltips = stubTips{"shared.timeout": "Seconds before giving up"}
	require.NoError(t, m.Load(m.paths))

	press(m, "<tab>", "<down>")
	out := Snapshot(m, SnapshotConfig{Width: 100, Height: 20, NoColor: true})
	assert.Contains(t, out, "Seconds before giving up")
}

func TestSnapshotHasRequestedSize(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)
	out := Snapshot(m, SnapshotConfig{Width: 60, Height: 15, NoColor: true})
	assert.Len(t, strings.Split(out, "\n"), 15)
	assert.NotContains(t, out, "\x1b[")

	out = Snapshot(m, SnapshotConfig{Width: 60, Height: 15, NoColor: true, Query: "beta"})
	assert.Contains(t, out, "mobile.label")
}

func TestQuitKeys(t *testing.T) {
	m, _ := loadedModel(t, baseJSON)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.Empty(t, m.render())
}

type stubTips map[string]string

func (s stubTips) Lookup(path string) (string, bool) {
	t, ok := s[path]
	return t, ok
}
