// Package core is the headless confviz API: load a batch of config files, search their
// rendered fields, score section differences and produce the structural delta.
package core

import (
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/confviz/internal/diff"
	"github.com/oakwood-commons/confviz/internal/tooltips"
	"github.com/oakwood-commons/confviz/internal/workspace"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

// Engine builds sessions with a fixed diff format, tooltip table and logger.
type Engine struct {
	format   diff.Format
	tooltips map[string]string
	log      logr.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithDiffFormat selects "merge-patch" (default) or "lines".
func WithDiffFormat(format string) Option {
	return func(e *Engine) {
		e.format = diff.Format(format)
	}
}

// WithTooltips layers descriptions, keyed by field path, over the built-in table.
func WithTooltips(t map[string]string) Option {
	return func(e *Engine) {
		e.tooltips = t
	}
}

// WithLogger sets the logger used by sessions.
func WithLogger(log logr.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine with defaults.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{format: diff.FormatMergePatch, log: logr.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	if _, err := diff.New(e.format); err != nil {
		return nil, err
	}
	return e, nil
}

// Match is one field found by Search.
type Match struct {
	Section string
	Path    string
	Value   string
}

// Cell is one heatmap score.
type Cell struct {
	Section string
	File    string
	Score   int
}

// Session is one loaded batch. The first file is the base.
type Session struct {
	ws *workspace.Workspace
}

// Open loads paths, which must each hold a JSON, YAML or TOML object.
func (e *Engine) Open(paths ...string) (*Session, error) {
	files, err := loader.LoadAll(paths)
	if err != nil {
		return nil, err
	}
	tips, err := tooltips.Default()
	if err != nil {
		return nil, err
	}
	if len(e.tooltips) > 0 {
		tips = tips.Merge(tooltips.Table(e.tooltips))
	}
	differ, err := diff.New(e.format)
	if err != nil {
		return nil, err
	}
	ws := workspace.New(files, workspace.Options{
		Tooltips:    tips,
		Differ:      differ,
		EagerSearch: true,
		Logger:      e.log,
	})
	return &Session{ws: ws}, nil
}

// Files lists the loaded file names in load order.
func (s *Session) Files() []string {
	out := make([]string, 0, len(s.ws.Files()))
	for _, f := range s.ws.Files() {
		out = append(out, f.Name)
	}
	return out
}

// Sections lists the base file's top-level keys in source order.
func (s *Session) Sections() []string {
	return append([]string(nil), s.ws.Sections()...)
}

// Search returns the fields whose displayed text or path contains query, ignoring
// case, or that satisfy a `?` expression. Results are in section then row order.
func (s *Session) Search(query string) ([]Match, error) {
	results, err := s.ws.Search(query)
	if err != nil {
		return nil, err
	}
	out := make([]Match, 0, len(results))
	for _, r := range results {
		m := Match{Section: r.Section, Path: r.Path}
		if p := s.ws.Realized(r.Section); p != nil {
			if i := p.IndexOf(r.Path); i >= 0 {
				m.Value = p.Rows[i].Value()
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// Heatmap returns every section and file score, section-major, and the largest score.
// A single file has no heatmap.
func (s *Session) Heatmap() ([]Cell, int) {
	h := s.ws.Heatmap()
	if h == nil {
		return nil, 0
	}
	cells := make([]Cell, 0, len(h.Sections)*len(h.Files))
	for r, section := range h.Sections {
		for c, file := range h.Files {
			cells = append(cells, Cell{Section: section, File: file, Score: h.Cells[r][c]})
		}
	}
	return cells, h.Max
}

// Diff returns the delta from the base to the second file. It is empty for identical
// documents and for a single file.
func (s *Session) Diff() string {
	return s.ws.DiffText()
}
