// Package search scans rendered panel fields for a case-insensitive substring of the
// displayed text or the path, or for a `?` CEL predicate.
package search

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/confviz/internal/cel"
	"github.com/oakwood-commons/confviz/internal/panel"
)

// ExprPrefix marks a query as a CEL predicate.
const ExprPrefix = "?"

// Result locates one matching field.
type Result struct {
	Section string
	Path    string
}

// Source supplies the realized panels in section order. Sections not yet realized
// return nil and are skipped.
type Source interface {
	Sections() []string
	Realized(section string) *panel.Panel
}

// TypedLookup resolves a field path to its loaded scalar as a Go value, for `_` in
// expression queries. It may be nil.
type TypedLookup func(path string) any

// Index runs queries over a Source.
type Index struct {
	src   Source
	typed TypedLookup
	eval  *cel.Evaluator
	log   logr.Logger

	last []Result
}

// NewIndex creates an index over src.
func NewIndex(src Source, typed TypedLookup, log logr.Logger) *Index {
	return &Index{src: src, typed: typed, log: log}
}

// Last returns the results of the previous query.
func (ix *Index) Last() []Result { return ix.last }

// Clear drops every highlight and the previous results.
func (ix *Index) Clear() {
	for _, section := range ix.src.Sections() {
		if p := ix.src.Realized(section); p != nil {
			p.ClearHighlights()
		}
	}
	ix.last = nil
}

// Query clears previous highlights, then marks and returns every matching field in
// section order then row order. A blank query returns nothing.
func (ix *Index) Query(q string) ([]Result, error) {
	ix.Clear()
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}

	match, err := ix.matcher(q)
	if err != nil {
		return nil, err
	}

	var out []Result
	for _, section := range ix.src.Sections() {
		p := ix.src.Realized(section)
		if p == nil {
			continue
		}
		for _, row := range p.Rows {
			if row.Kind != panel.FieldRow || !match(section, row) {
				continue
			}
			row.SetHighlighted(true)
			out = append(out, Result{Section: section, Path: row.Path})
		}
	}
	ix.last = out
	ix.log.V(1).Info("search", "query", q, "matches", len(out))
	return out, nil
}

func (ix *Index) matcher(q string) (func(string, *panel.Row) bool, error) {
	if !strings.HasPrefix(q, ExprPrefix) {
		needle := strings.ToLower(q)
		return func(_ string, row *panel.Row) bool {
			return strings.Contains(strings.ToLower(row.Value()), needle) ||
				strings.Contains(strings.ToLower(row.Path), needle)
		}, nil
	}

	expr := strings.TrimSpace(strings.TrimPrefix(q, ExprPrefix))
	if expr == "" {
		return nil, fmt.Errorf("empty expression")
	}
	if ix.eval == nil {
		eval, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		ix.eval = eval
	}
	pred, err := ix.eval.Compile(expr)
	if err != nil {
		return nil, err
	}
	return func(section string, row *panel.Row) bool {
		f := cel.Field{Section: section, Path: row.Path, Key: row.Label, Value: row.Value()}
		if ix.typed != nil {
			f.Typed = ix.typed(row.Path)
		}
		ok, err := pred.Match(f)
		if err != nil {
			ix.log.V(2).Info("predicate skipped field", "path", row.Path, "error", err.Error())
			return false
		}
		return ok
	}, nil
}
