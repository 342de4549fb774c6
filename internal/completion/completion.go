// Package completion suggests identifiers while a `?` expression query is typed:
// the predicate variables, the functions of the CEL environment and a few keywords.
package completion

import (
	"sort"
	"strings"
	"unicode"
)

// Kind indicates what a suggestion inserts.
type Kind int

const (
	Variable Kind = iota
	Function
	Keyword
)

// FunctionMetadata describes a function for the one-line help.
type FunctionMetadata struct {
	Name        string
	Signature   string
	Description string
	// IsMethod marks functions called on a receiver, e.g. value.startsWith("a").
	IsMethod bool
}

// Completion is a single suggestion.
type Completion struct {
	Text   string
	Kind   Kind
	Detail string
}

var keywords = []string{"true", "false", "null", "in"}

var variableHelp = map[string]string{
	"section": "top-level key the field belongs to",
	"path":    "full dotted path of the field",
	"key":     "the field's own key or [index]",
	"value":   "displayed text of the field",
	"_":       "loaded scalar with its JSON type",
}

// builtin documents the functions most useful against config fields.
var builtin = []FunctionMetadata{
	{Name: "contains", Signature: "string.contains(string) -> bool", Description: "substring test", IsMethod: true},
	{Name: "startsWith", Signature: "string.startsWith(string) -> bool", Description: "prefix test", IsMethod: true},
	{Name: "endsWith", Signature: "string.endsWith(string) -> bool", Description: "suffix test", IsMethod: true},
	{Name: "matches", Signature: "string.matches(regex) -> bool", Description: "RE2 match", IsMethod: true},
	{Name: "lowerAscii", Signature: "string.lowerAscii() -> string", Description: "lower-case ASCII letters", IsMethod: true},
	{Name: "upperAscii", Signature: "string.upperAscii() -> string", Description: "upper-case ASCII letters", IsMethod: true},
	{Name: "trim", Signature: "string.trim() -> string", Description: "strip surrounding whitespace", IsMethod: true},
	{Name: "split", Signature: "string.split(sep) -> list", Description: "split on a separator", IsMethod: true},
	{Name: "size", Signature: "size(string|list|map) -> int", Description: "length"},
	{Name: "int", Signature: "int(value) -> int", Description: "convert to an integer"},
	{Name: "double", Signature: "double(value) -> double", Description: "convert to a float"},
	{Name: "string", Signature: "string(value) -> string", Description: "convert to a string"},
	{Name: "type", Signature: "type(value) -> type", Description: "runtime type, e.g. type(_) == int"},
}

// Engine holds the identifiers offered for completion.
type Engine struct {
	variables []string
	functions map[string]FunctionMetadata
	names     []string
}

// NewEngine builds an engine over variables and the discovered function names.
// Names without metadata get a bare name() signature.
func NewEngine(variables, functions []string) *Engine {
	e := &Engine{
		variables: append([]string(nil), variables...),
		functions: map[string]FunctionMetadata{},
	}
	for _, fn := range builtin {
		e.functions[fn.Name] = fn
	}
	for _, name := range functions {
		if _, ok := e.functions[name]; !ok {
			e.functions[name] = FunctionMetadata{Name: name}
		}
	}
	for name := range e.functions {
		e.names = append(e.names, name)
	}
	sort.Strings(e.names)
	return e
}

// Complete returns suggestions for the identifier being typed at the end of input.
// After a dot only functions are offered. Nothing is offered for an empty token
// unless it follows a dot.
func (e *Engine) Complete(input string) []Completion {
	token, afterDot := trailingToken(input)
	if token == "" && !afterDot {
		return nil
	}

	var out []Completion
	if !afterDot {
		for _, v := range e.variables {
			if strings.HasPrefix(v, token) && v != token {
				out = append(out, Completion{Text: v, Kind: Variable, Detail: variableHelp[v]})
			}
		}
	}
	for _, name := range e.names {
		fn := e.functions[name]
		if !strings.HasPrefix(name, token) || name == token {
			continue
		}
		if afterDot && strings.Contains(name, ".") {
			continue
		}
		out = append(out, Completion{Text: name, Kind: Function, Detail: FormatFunctionOneLiner(fn)})
	}
	if !afterDot {
		for _, k := range keywords {
			if strings.HasPrefix(k, token) && k != token {
				out = append(out, Completion{Text: k, Kind: Keyword})
			}
		}
	}
	return out
}

// Apply replaces the token being typed with c. Functions get an opening parenthesis.
func Apply(input string, c Completion) string {
	token, _ := trailingToken(input)
	text := c.Text
	if c.Kind == Function {
		text += "("
	}
	return input[:len(input)-len(token)] + text
}

// Help returns the one-line help for a function name.
func (e *Engine) Help(name string) (string, bool) {
	fn, ok := e.functions[name]
	if !ok {
		return "", false
	}
	return FormatFunctionOneLiner(fn), true
}

// FormatFunctionOneLiner returns the signature and description on one line.
func FormatFunctionOneLiner(fn FunctionMetadata) string {
	sig := fn.Signature
	if sig == "" {
		sig = fn.Name + "()"
	}
	if desc := strings.TrimSpace(fn.Description); desc != "" {
		return sig + ": " + desc
	}
	return sig
}

func trailingToken(input string) (string, bool) {
	i := len(input)
	for i > 0 {
		r := rune(input[i-1])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i--
	}
	return input[i:], i > 0 && input[i-1] == '.'
}
