// Package workspace holds everything derived from one batch of loaded files: sections,
// navigation trees, lazily rendered panels, the search index, the heatmap and the diff
// text. A load builds a new Workspace and the caller swaps it in whole.
package workspace

import (
	"errors"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/confviz/internal/diff"
	"github.com/oakwood-commons/confviz/internal/document"
	"github.com/oakwood-commons/confviz/internal/navigator"
	"github.com/oakwood-commons/confviz/internal/panel"
	"github.com/oakwood-commons/confviz/internal/search"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

var errNoDocument = errors.New("no document loaded")

// TabKind identifies what a tab shows.
type TabKind int

const (
	SectionTab TabKind = iota
	CompareTab
	HeatmapTab
)

// Tab is one entry of the tab bar.
type Tab struct {
	Kind    TabKind
	Title   string
	Section string
}

// Options configure a Workspace.
type Options struct {
	Tooltips panel.Tooltips
	Differ   diff.Differ
	// EagerSearch realizes every section before a query so coverage never depends on
	// which tabs were opened.
	EagerSearch bool
	Logger      logr.Logger
}

// Workspace is immutable apart from the panel cache and display edits.
type Workspace struct {
	files    []loader.File
	sections []string
	trees    []*navigator.Node
	panels   map[string]*panel.Panel
	index    *search.Index
	heatmap  *diff.Heatmap
	diffText string
	opts     Options
}

// New derives a workspace from files. files[0] is the base and provides the sections;
// files[1] is the compare target; any further files only add heatmap columns.
func New(files []loader.File, opts Options) *Workspace {
	w := &Workspace{
		files:  files,
		panels: map[string]*panel.Panel{},
		opts:   opts,
	}
	if len(files) > 0 {
		base := files[0].Data
		w.sections = append([]string(nil), base.Keys()...)
		w.trees = navigator.BuildSectionTrees(base)
	}
	if len(files) > 1 {
		names := make([]string, len(files))
		docs := make([]*document.Value, len(files))
		for i, f := range files {
			names[i], docs[i] = f.Name, f.Data
		}
		w.heatmap = diff.BuildHeatmap(names, docs)
		w.diffText = diff.Text(opts.Differ, files[0].Data, files[1].Data, opts.Logger)
	}
	w.index = search.NewIndex(w, w.Typed, opts.Logger)
	opts.Logger.V(1).Info("workspace built", "files", len(files), "sections", len(w.sections))
	return w
}

// Files returns the loaded files in load order.
func (w *Workspace) Files() []loader.File { return w.files }

// Empty reports whether nothing is loaded.
func (w *Workspace) Empty() bool { return len(w.files) == 0 }

// Sections returns the base file's top-level keys in source order.
func (w *Workspace) Sections() []string { return w.sections }

// Trees returns one navigation root per section.
func (w *Workspace) Trees() []*navigator.Node { return w.trees }

// Compared reports whether a diff and heatmap exist.
func (w *Workspace) Compared() bool { return len(w.files) > 1 }

// Heatmap is nil unless two or more files are loaded.
func (w *Workspace) Heatmap() *diff.Heatmap { return w.heatmap }

// DiffText is the structural delta between the first two files.
func (w *Workspace) DiffText() string { return w.diffText }

// Tabs lists the section tabs, then Compare and Heatmap when a second file is loaded.
func (w *Workspace) Tabs() []Tab {
	tabs := make([]Tab, 0, len(w.sections)+2)
	for _, s := range w.sections {
		tabs = append(tabs, Tab{Kind: SectionTab, Title: s, Section: s})
	}
	if w.Compared() {
		tabs = append(tabs,
			Tab{Kind: CompareTab, Title: "Compare: " + w.files[1].Name},
			Tab{Kind: HeatmapTab, Title: "Heatmap"},
		)
	}
	return tabs
}

// Realized returns the section's panel if it has been built.
func (w *Workspace) Realized(section string) *panel.Panel {
	return w.panels[section]
}

// Panel returns the section's panel, building it on first use. Unknown sections return nil.
func (w *Workspace) Panel(section string) *panel.Panel {
	if p, ok := w.panels[section]; ok {
		return p
	}
	if len(w.files) == 0 {
		return nil
	}
	v, ok := w.files[0].Data.Get(section)
	if !ok {
		return nil
	}
	p := panel.Render(section, v, w.opts.Tooltips)
	w.panels[section] = p
	w.opts.Logger.V(2).Info("section realized", "section", section, "rows", len(p.Rows))
	return p
}

// RealizeAll builds every section panel.
func (w *Workspace) RealizeAll() {
	for _, s := range w.sections {
		w.Panel(s)
	}
}

// Search queries the realized fields, realizing all of them first when eager.
func (w *Workspace) Search(q string) ([]search.Result, error) {
	if w.opts.EagerSearch {
		w.RealizeAll()
	}
	return w.index.Query(q)
}

// ClearSearch removes all highlights.
func (w *Workspace) ClearSearch() { w.index.Clear() }

// LastResults returns the results of the latest search.
func (w *Workspace) LastResults() []search.Result { return w.index.Last() }

// Locate realizes the section holding path and returns it with the row index of path.
func (w *Workspace) Locate(path string) (string, int) {
	section := navigator.SectionOf(path)
	p := w.Panel(section)
	if p == nil {
		return "", -1
	}
	return section, p.IndexOf(path)
}

// Value resolves path in the base document.
func (w *Workspace) Value(path string) (*document.Value, error) {
	if len(w.files) == 0 {
		return nil, errNoDocument
	}
	return navigator.Lookup(w.files[0].Data, path)
}

// Typed returns the loaded value at path as a plain Go value, or nil.
func (w *Workspace) Typed(path string) any {
	v, err := w.Value(path)
	if err != nil {
		return nil
	}
	return v.Interface()
}
