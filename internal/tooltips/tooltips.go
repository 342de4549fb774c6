// Package tooltips provides the read-only path → description table consulted when
// rendering panels. The built-in table is embedded; users can layer their own file on top.
package tooltips

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tooltips.yaml
var embeddedTooltips []byte

var (
	defaultOnce  sync.Once
	defaultTable Table
	defaultErr   error
)

// Table maps an exact path string to its description.
type Table map[string]string

// Lookup returns the description for path. Unknown paths have none.
func (t Table) Lookup(path string) (string, bool) {
	if t == nil {
		return "", false
	}
	text, ok := t[path]
	return text, ok && text != ""
}

// Merge returns a new table with other's entries layered over t.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Default returns the embedded table. Callers must not modify it.
func Default() (Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(embeddedTooltips)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("decode embedded tooltips: %w", defaultErr)
		}
	})
	return defaultTable, defaultErr
}

// Parse decodes a YAML (or JSON) mapping of path to description.
func Parse(data []byte) (Table, error) {
	t := Table{}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// Load returns the embedded table with the file at path layered over it. An empty path
// returns the embedded table alone.
func Load(path string) (Table, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tooltips %s: %w", path, err)
	}
	user, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decode tooltips %s: %w", path, err)
	}
	return base.Merge(user), nil
}
