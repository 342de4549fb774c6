package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/confviz/internal/cel"
	"github.com/oakwood-commons/confviz/internal/completion"
	"github.com/oakwood-commons/confviz/internal/config"
	"github.com/oakwood-commons/confviz/internal/diff"
	"github.com/oakwood-commons/confviz/internal/panel"
	"github.com/oakwood-commons/confviz/internal/search"
	"github.com/oakwood-commons/confviz/internal/ui/table"
	"github.com/oakwood-commons/confviz/internal/workspace"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

// Mode controls where key presses go.
type Mode int

const (
	// NormalMode routes keys to the focused pane.
	NormalMode Mode = iota
	// SearchMode edits the search query.
	SearchMode
	// LoadMode edits the list of paths to open.
	LoadMode
	// HelpMode shows the key reference.
	HelpMode
	// ErrorMode shows a blocking load error until dismissed.
	ErrorMode
)

type focusArea int

const (
	focusTree focusArea = iota
	focusContent
	focusResults
)

const maxResultRows = 6

// filesLoadedMsg carries a fully parsed batch ready to be swapped in.
type filesLoadedMsg struct {
	Paths []string
	Files []loader.File
}

// loadFailedMsg reports a batch that was rejected; nothing was committed.
type loadFailedMsg struct {
	Paths []string
	Err   error
}

// Options configure a Model.
type Options struct {
	Config   config.Config
	Tooltips panel.Tooltips
	Differ   diff.Differ
	Logger   logr.Logger
	NoColor  bool
	// Watch reloads the loaded files when they change on disk.
	Watch bool
}

// Model is the root of the TUI: a tab bar over a tree pane and the active tab's view,
// an optional result list, a status line and a key footer.
type Model struct {
	opts  Options
	theme Theme
	log   logr.Logger

	mode  Mode
	focus focusArea

	ws     *workspace.Workspace
	paths  []string
	tabs   []workspace.Tab
	active int

	tree    *TreeView
	views   *CachedMaker
	compare *CompareView
	heat    *HeatmapView
	results *table.Model[search.Result]

	searchInput textinput.Model
	complete    *completion.Engine
	loadInput   textinput.Model
	lastQuery   string

	watcher *FileWatcher
	status  string
	errText string

	width    int
	height   int
	quitting bool
}

// NewModel creates a model with nothing loaded.
func NewModel(opts Options) *Model {
	m := &Model{
		opts:   opts,
		theme:  NewTheme(opts.Config, opts.NoColor),
		log:    opts.Logger,
		focus:  focusTree,
		width:  80,
		height: 24,
	}
	m.views = NewCachedMaker(MakerFunc(m.makeSectionView))

	m.results = table.NewModel(
		[]table.Column{{Title: "Section", Width: 16}, {Title: "Path", Width: 40}, {Title: "Value", Width: 20}},
		m.resultRow,
		func(r search.Result) string { return r.Path },
	)
	m.results.SetNoColor(opts.NoColor)
	if !opts.NoColor {
		m.results.SetColors(m.theme.BorderColor, nil, m.theme.CursorColor)
	}

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "/"
	m.searchInput.Placeholder = "text, path, or ?expression"
	m.searchInput.CharLimit = 512

	var fns []string
	if eval, err := cel.NewEvaluator(); err == nil {
		fns = eval.Functions()
	} else {
		m.log.Error(err, "expression completion limited to built-in names")
	}
	m.complete = completion.NewEngine(cel.Variables(), fns)

	m.loadInput = textinput.New()
	m.loadInput.Prompt = "open: "
	m.loadInput.Placeholder = "base.json other.json ..."
	m.loadInput.CharLimit = 4096

	m.apply(nil, nil)
	return m
}

func (m *Model) workspaceOptions() workspace.Options {
	return workspace.Options{
		Tooltips:    m.opts.Tooltips,
		Differ:      m.opts.Differ,
		EagerSearch: m.opts.Config.EagerSearch(),
		Logger:      m.log,
	}
}

func (m *Model) makeSectionView(section string, width, height int) (ChildModel, tea.Cmd) {
	p := m.ws.Panel(section)
	if p == nil {
		return nil, nil
	}
	v := NewSectionView(p, &m.theme, m.opts.Config.Indent(), m.opts.Config.LabelWidth())
	v.SetSize(width, height)
	return v, nil
}

func (m *Model) resultRow(r search.Result) table.Row {
	value := ""
	if p := m.ws.Realized(r.Section); p != nil {
		if i := p.IndexOf(r.Path); i >= 0 {
			value = p.Rows[i].Value()
		}
	}
	return table.Row{r.Section, r.Path, value}
}

// Load reads paths and, only if every file parses, replaces the current state.
func (m *Model) Load(paths []string) error {
	files, err := loader.LoadAll(paths)
	if err != nil {
		m.log.Error(err, "load failed", "paths", paths)
		return err
	}
	m.apply(paths, files)
	m.ensureWatcher()
	return nil
}

func (m *Model) loadCmd(paths []string) tea.Cmd {
	paths = append([]string(nil), paths...)
	return func() tea.Msg {
		files, err := loader.LoadAll(paths)
		if err != nil {
			return loadFailedMsg{Paths: paths, Err: err}
		}
		return filesLoadedMsg{Paths: paths, Files: files}
	}
}

// apply swaps in a workspace built from files. The previous active tab is kept when a
// tab with the same title still exists.
func (m *Model) apply(paths []string, files []loader.File) {
	prevTitle := ""
	if t, ok := m.activeTab(); ok {
		prevTitle = t.Title
	}

	m.ws = workspace.New(files, m.workspaceOptions())
	m.paths = paths
	m.tabs = m.ws.Tabs()
	m.views.Clear()
	m.tree = NewTreeView(m.ws.Trees(), &m.theme)
	m.compare, m.heat = nil, nil
	if m.ws.Compared() {
		m.compare = NewCompareView(m.tabs[len(m.tabs)-2].Title, m.ws.DiffText(), &m.theme)
		m.heat = NewHeatmapView(m.ws.Heatmap(), &m.theme)
	}
	m.results.SetRows(nil)
	m.lastQuery = ""

	m.active = 0
	for i, t := range m.tabs {
		if t.Title == prevTitle {
			m.active = i
			break
		}
	}
	if m.focus == focusResults {
		m.focus = focusTree
	}
	m.layout()
	m.syncFocus()
	m.log.V(1).Info("state replaced", "paths", paths, "tabs", len(m.tabs))
}

// ensureWatcher (re)creates the watcher when watching is on and the paths changed. It
// reports whether a new watcher was started.
func (m *Model) ensureWatcher() bool {
	if !m.opts.Watch || len(m.paths) == 0 {
		return false
	}
	if m.watcher != nil && samePaths(m.watcher.Paths(), m.paths) {
		return false
	}
	if m.watcher != nil {
		_ = m.watcher.Close()
		m.watcher = nil
	}
	w, err := NewFileWatcher(m.paths, m.opts.Config.Debounce())
	if err != nil {
		m.log.Error(err, "watch failed", "paths", m.paths)
		m.status = "watch disabled: " + err.Error()
		return false
	}
	m.watcher = w
	return true
}

func samePaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Workspace returns the current state.
func (m *Model) Workspace() *workspace.Workspace { return m.ws }

// Mode returns the input mode.
func (m *Model) Mode() Mode { return m.mode }

// Tabs returns the tab bar entries.
func (m *Model) Tabs() []workspace.Tab { return m.tabs }

// ActiveTab returns the index of the shown tab.
func (m *Model) ActiveTab() int { return m.active }

// ErrorText is the message of the open error modal.
func (m *Model) ErrorText() string { return m.errText }

// Results returns the rows of the result list.
func (m *Model) Results() []search.Result { return m.results.Rows() }

// Close releases the file watcher.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	err := m.watcher.Close()
	m.watcher = nil
	return err
}

func (m *Model) activeTab() (workspace.Tab, bool) {
	if m.active < 0 || m.active >= len(m.tabs) {
		return workspace.Tab{}, false
	}
	return m.tabs[m.active], true
}

// content returns the view for the active tab, building section views on first use.
func (m *Model) content() ChildModel {
	t, ok := m.activeTab()
	if !ok {
		return nil
	}
	switch t.Kind {
	case workspace.CompareTab:
		return m.compare
	case workspace.HeatmapTab:
		return m.heat
	default:
		w, h := m.contentSize()
		child, _ := m.views.Make(t.Section, w, h)
		return child
	}
}

// SectionView returns the view of the active tab when it is a section.
func (m *Model) SectionView() *SectionView {
	sv, _ := m.content().(*SectionView)
	return sv
}

func (m *Model) treeWidth() int {
	return max(10, min(m.opts.Config.TreeWidth(), m.width/2))
}

func (m *Model) contentSize() (int, int) {
	return max(1, m.width-m.treeWidth()-1), m.bodyHeight()
}

func (m *Model) resultsHeight() int {
	n := m.results.Len()
	if n == 0 {
		return 0
	}
	// header and its rule
	return min(n, maxResultRows) + 2
}

func (m *Model) bodyHeight() int {
	return max(1, m.height-3-m.resultsHeight())
}

func (m *Model) layout() {
	w, h := m.contentSize()
	m.tree.SetSize(m.treeWidth(), h)
	m.views.Resize(w, h)
	if m.compare != nil {
		m.compare.SetSize(w, h)
	}
	if m.heat != nil {
		m.heat.SetSize(w, h)
	}
	if rh := m.resultsHeight(); rh > 0 {
		m.results.SetSize(m.width, rh)
	}
	m.searchInput.SetWidth(max(1, m.width-2))
	m.loadInput.SetWidth(max(1, m.width-8))
}

func (m *Model) syncFocus() {
	if m.focus == focusTree {
		m.tree.Focus()
	} else {
		m.tree.Blur()
	}
	if f, ok := m.content().(ModelWithFocus); ok {
		if m.focus == focusContent {
			f.Focus()
		} else {
			f.Blur()
		}
	}
	if m.focus == focusResults {
		m.results.Focus()
	} else {
		m.results.Blur()
	}
}

func (m *Model) setActive(i int) {
	if len(m.tabs) == 0 {
		return
	}
	i = ((i % len(m.tabs)) + len(m.tabs)) % len(m.tabs)
	if f, ok := m.content().(ModelWithFocus); ok && i != m.active {
		f.Blur()
	}
	m.active = i
	m.syncFocus()
}

func (m *Model) cycleFocus(delta int) {
	areas := []focusArea{focusTree, focusContent}
	if m.results.Len() > 0 {
		areas = append(areas, focusResults)
	}
	cur := 0
	for i, a := range areas {
		if a == m.focus {
			cur = i
		}
	}
	m.focus = areas[((cur+delta)%len(areas)+len(areas))%len(areas)]
	m.syncFocus()
}

// showPath activates the section holding path, puts the panel cursor on its row and
// reveals it in the tree.
func (m *Model) showPath(path string) bool {
	section, row := m.ws.Locate(path)
	if section == "" || row < 0 {
		return false
	}
	for i, t := range m.tabs {
		if t.Kind == workspace.SectionTab && t.Section == section {
			m.setActive(i)
			break
		}
	}
	if sv := m.SectionView(); sv != nil {
		sv.FocusPath(path)
	}
	m.tree.Reveal(path)
	return true
}

func (m *Model) stepResult(delta int) {
	rows := m.results.Rows()
	if len(rows) == 0 {
		m.status = "no search results"
		return
	}
	i := ((m.results.Cursor()+delta)%len(rows) + len(rows)) % len(rows)
	m.results.SetCursor(i)
	m.showPath(rows[i].Path)
	m.status = fmt.Sprintf("match %d of %d", i+1, len(rows))
}

func (m *Model) runSearch(q string) {
	m.lastQuery = q
	results, err := m.ws.Search(q)
	if err != nil {
		m.status = "search: " + err.Error()
		m.results.SetRows(nil)
		m.layout()
		return
	}
	m.results.SetRows(results)
	m.layout()
	switch {
	case strings.TrimSpace(q) == "":
		m.status = ""
		if m.focus == focusResults {
			m.focus = focusTree
		}
	case len(results) == 0:
		m.status = "no matches for " + q
	default:
		m.showPath(results[0].Path)
		m.focus = focusResults
		m.status = fmt.Sprintf("match 1 of %d", len(results))
	}
	m.syncFocus()
}

func (m *Model) clearSearch() {
	m.ws.ClearSearch()
	m.results.SetRows(nil)
	m.lastQuery = ""
	if m.focus == focusResults {
		m.focus = focusContent
	}
	m.layout()
	m.syncFocus()
}

// ShowError opens the error modal, e.g. for files given on the command line that did
// not load.
func (m *Model) ShowError(err error) {
	m.fail(err)
}

func (m *Model) fail(err error) {
	m.mode = ErrorMode
	m.errText = err.Error()
	m.log.Error(err, "load rejected")
}

func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.Wait()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case filesLoadedMsg:
		m.apply(msg.Paths, msg.Files)
		m.status = fmt.Sprintf("loaded %d file(s)", len(msg.Files))
		if m.ensureWatcher() {
			return m, m.watcher.Wait()
		}
		return m, nil

	case loadFailedMsg:
		m.fail(msg.Err)
		return m, nil

	case filesChangedMsg:
		m.log.Info("file changed, reloading", "path", msg.Path)
		return m, tea.Batch(m.loadCmd(m.paths), m.watcher.Wait())

	case watchErrMsg:
		m.log.Error(msg.Err, "watch stopped")
		m.status = "watch stopped: " + msg.Err.Error()
		return m, nil

	case selectPathMsg:
		if m.showPath(msg.Path) {
			m.focus = focusContent
			m.syncFocus()
		} else if section, _ := m.ws.Locate(msg.Path); section == "" {
			m.status = "not found: " + msg.Path
		}
		return m, nil

	case fieldEditedMsg:
		m.status = fmt.Sprintf("%s = %s (display only)", msg.Path, msg.Value)
		m.log.V(1).Info("field edited", "path", msg.Path)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	switch m.mode {
	case SearchMode:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	case LoadMode:
		var cmd tea.Cmd
		m.loadInput, cmd = m.loadInput.Update(msg)
		return m, cmd
	}
	if child := m.content(); child != nil && m.focus == focusContent {
		_, cmd := child.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	switch m.mode {
	case ErrorMode:
		if key == "enter" || key == "esc" || key == "q" {
			m.mode = NormalMode
			m.errText = ""
		}
		return nil
	case HelpMode:
		if key == "?" || key == "f1" || key == "esc" || key == "q" {
			m.mode = NormalMode
		}
		return nil
	case SearchMode:
		return m.updateSearchInput(msg)
	case LoadMode:
		return m.updateLoadInput(msg)
	}

	if sv := m.SectionView(); sv != nil && sv.Editing() {
		_, cmd := sv.Update(msg)
		return cmd
	}

	m.status = ""
	switch key {
	case "q":
		m.quitting = true
		return tea.Quit
	case "?", "f1":
		m.mode = HelpMode
		return nil
	case "/":
		m.mode = SearchMode
		m.searchInput.SetValue(m.lastQuery)
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()
	case "ctrl+o":
		m.mode = LoadMode
		m.loadInput.SetValue(strings.Join(m.paths, " "))
		m.loadInput.CursorEnd()
		return m.loadInput.Focus()
	case "r":
		if len(m.paths) == 0 {
			m.status = "nothing to reload"
			return nil
		}
		return m.loadCmd(m.paths)
	case "tab":
		m.cycleFocus(1)
		return nil
	case "shift+tab":
		m.cycleFocus(-1)
		return nil
	case "]":
		m.setActive(m.active + 1)
		return nil
	case "[":
		m.setActive(m.active - 1)
		return nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if i := int(key[0] - '1'); i < len(m.tabs) {
			m.setActive(i)
		}
		return nil
	case "n":
		m.stepResult(1)
		return nil
	case "N":
		m.stepResult(-1)
		return nil
	case "esc":
		if m.results.Len() > 0 {
			m.clearSearch()
		}
		return nil
	}

	switch m.focus {
	case focusTree:
		_, cmd := m.tree.Update(msg)
		return cmd
	case focusResults:
		if key == "enter" {
			if r := m.results.SelectedRow(); r != nil && m.showPath(r.Path) {
				m.focus = focusContent
				m.syncFocus()
			}
			return nil
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return cmd
	default:
		if child := m.content(); child != nil {
			_, cmd := child.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model) updateSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.mode = NormalMode
		m.searchInput.Blur()
		m.runSearch(m.searchInput.Value())
		return nil
	case "esc":
		m.mode = NormalMode
		m.searchInput.Blur()
		return nil
	case "tab":
		if s := m.suggestions(); len(s) > 0 {
			m.searchInput.SetValue(completion.Apply(m.searchInput.Value(), s[0]))
			m.searchInput.CursorEnd()
		}
		return nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd
}

// suggestions completes the identifier being typed in an expression query.
func (m *Model) suggestions() []completion.Completion {
	q := strings.TrimLeft(m.searchInput.Value(), " ")
	if !strings.HasPrefix(q, search.ExprPrefix) {
		return nil
	}
	return m.complete.Complete(q)
}

func (m *Model) suggestionHint() string {
	s := m.suggestions()
	if len(s) == 0 {
		return ""
	}
	if len(s) == 1 && s[0].Detail != "" {
		return "tab → " + s[0].Text + "  " + s[0].Detail
	}
	names := make([]string, 0, 6)
	for i, c := range s {
		if i == 6 {
			names = append(names, "…")
			break
		}
		names = append(names, c.Text)
	}
	return "tab → " + strings.Join(names, " ")
}

func (m *Model) updateLoadInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.mode = NormalMode
		m.loadInput.Blur()
		paths := strings.Fields(m.loadInput.Value())
		if len(paths) == 0 {
			m.status = "no files given"
			return nil
		}
		m.status = "loading…"
		return m.loadCmd(paths)
	case "esc":
		m.mode = NormalMode
		m.loadInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.loadInput, cmd = m.loadInput.Update(msg)
	return cmd
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	if m.quitting {
		return ""
	}
	parts := []string{m.renderTabs(), m.renderBody()}
	if rh := m.resultsHeight(); rh > 0 {
		parts = append(parts, lipgloss.NewStyle().MaxHeight(rh).Render(m.results.View()))
	}
	parts = append(parts, m.renderStatus(), m.renderFooter())
	return strings.Join(parts, "\n")
}

func (m *Model) renderTabs() string {
	if len(m.tabs) == 0 {
		return m.theme.Tooltip.Render(config.AppName + " · no files loaded")
	}
	titles := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			titles[i] = m.theme.TabActive.Render(t.Title)
		} else {
			titles[i] = m.theme.TabInactive.Render(t.Title)
		}
	}
	return ansi.Truncate(strings.Join(titles, m.theme.Border.Render("│")), m.width, "…")
}

func (m *Model) renderBody() string {
	h := m.bodyHeight()
	switch {
	case m.mode == HelpMode:
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, helpView(&m.theme, m.helpTitle(), m.width))
	case m.mode == ErrorMode:
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, errorView(&m.theme, m.errText, m.width))
	case m.ws.Empty():
		msg := m.theme.Tooltip.Render("Press ctrl+o to open files, ? for help.")
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, msg)
	}

	tw := m.treeWidth()
	cw, _ := m.contentSize()
	left := lipgloss.NewStyle().Width(tw).Height(h).MaxHeight(h).Render(m.tree.View())
	sep := m.theme.Border.Render(strings.TrimSuffix(strings.Repeat("│\n", h), "\n"))
	body := ""
	if child := m.content(); child != nil {
		body = child.View()
	}
	right := lipgloss.NewStyle().Width(cw).Height(h).MaxHeight(h).Render(body)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

func (m *Model) helpTitle() string {
	if name := m.opts.Config.App.About.Name; name != "" {
		return name
	}
	return config.AppName
}

func (m *Model) renderStatus() string {
	switch m.mode {
	case SearchMode:
		return m.searchInput.View()
	case LoadMode:
		return m.loadInput.View()
	}
	text := m.status
	if text == "" {
		text = m.focusedStatus()
	}
	text = strings.ReplaceAll(text, "\n", "  ")
	return ansi.Truncate(m.theme.Tooltip.Render(text), m.width, "…")
}

func (m *Model) focusedStatus() string {
	var child any
	switch m.focus {
	case focusTree:
		child = m.tree
	case focusContent:
		child = m.content()
	case focusResults:
		if r := m.results.SelectedRow(); r != nil {
			return r.Path
		}
	}
	if s, ok := child.(ModelWithStatus); ok {
		return s.Status()
	}
	return ""
}

func (m *Model) renderFooter() string {
	var hint string
	switch m.mode {
	case SearchMode:
		hint = "enter search · esc cancel · prefix ? for an expression"
		if s := m.suggestionHint(); s != "" {
			hint = s
		}
	case LoadMode:
		hint = "enter open · esc cancel"
	case ErrorMode:
		hint = "enter dismiss"
	case HelpMode:
		hint = "? close help"
	default:
		hint = "tab focus · [ ] tabs · / search · n/N next/prev · enter select/edit · ctrl+o open · ? help · q quit"
	}
	return ansi.Truncate(m.theme.Border.Render(hint), m.width, "…")
}
