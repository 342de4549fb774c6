// Package cel compiles the `?` search expressions: CEL predicates evaluated once per
// rendered field.
package cel

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"
)

// Field is the data a predicate sees for one rendered row.
type Field struct {
	Section string
	Path    string
	Key     string
	// Value is the displayed text; Typed is the loaded scalar as a Go value.
	Value string
	Typed any
}

// Evaluator compiles field predicates.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the string, list and math extensions enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := newFieldEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

func newFieldEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	all := make([]cel.EnvOption, 0, 8+len(opts))
	all = append(all,
		cel.Variable("section", cel.StringType),
		cel.Variable("path", cel.StringType),
		cel.Variable("key", cel.StringType),
		cel.Variable("value", cel.StringType),
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	all = append(all, opts...)
	return cel.NewEnv(all...)
}

// Predicate is a compiled boolean expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks expr. The expression must produce a bool.
func (e *Evaluator) Compile(expr string) (*Predicate, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression must be a condition, got %s", t)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the predicate for f. Runtime errors (such as comparing a string to a
// number through `_`) count as no match and are returned for logging.
func (p *Predicate) Match(f Field) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{
		"section": f.Section,
		"path":    f.Path,
		"key":     f.Key,
		"value":   f.Value,
		"_":       f.Typed,
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("expression %q returned %s, not bool", p.expr, out.Type().TypeName())
	}
	return bool(b), nil
}

// Variables lists the names a predicate can reference.
func Variables() []string {
	return []string{"section", "path", "key", "value", "_"}
}

// Functions returns the names of the functions declared in the evaluator's
// environment, operators excluded.
func (e *Evaluator) Functions() []string {
	fns := e.env.Functions()
	out := make([]string, 0, len(fns))
	for name := range fns {
		if name == "" || !unicode.IsLetter(rune(name[0])) {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
