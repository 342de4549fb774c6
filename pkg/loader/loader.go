// Package loader reads configuration files into ordered documents. A batch either loads
// completely or not at all.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/confviz/internal/document"
)

// Format is an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrNotObject is wrapped when a file's root is not an object.
var ErrNotObject = errors.New("root must be an object of sections")

// File is one successfully loaded document.
type File struct {
	Name string
	Path string
	Data *document.Value
}

// LoadError names the file that aborted a load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadAll reads and parses every path in order. The first failure is returned as a
// *LoadError and no files are returned with it.
func LoadAll(paths []string) ([]File, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files given")
	}
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// LoadFile reads one file. Errors are *LoadError.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, &LoadError{Path: path, Err: err}
	}
	v, err := Parse(data, DetectFormat(path, data))
	if err != nil {
		return File{}, &LoadError{Path: path, Err: err}
	}
	if v.Kind() != document.ObjectKind {
		return File{}, &LoadError{Path: path, Err: fmt.Errorf("%w, got %s", ErrNotObject, v.Kind())}
	}
	return File{Name: filepath.Base(path), Path: path, Data: v}, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, f Format) (*document.Value, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.New("empty input")
	}
	switch f {
	case FormatYAML:
		v, err := document.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return v, nil
	case FormatTOML:
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		return document.FromInterface(raw)
	default:
		return document.ParseJSON(data)
	}
}

// DetectFormat picks a format from the file extension, falling back to the content.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	input := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(input, "{") || strings.HasPrefix(input, "["):
		if isLikelyTOML(input) {
			return FormatTOML
		}
		return FormatJSON
	case isLikelyTOML(input):
		return FormatTOML
	default:
		return FormatYAML
	}
}

var (
	// [server], [[items]], ["table name"], [database.credentials]; not JSON arrays.
	tomlSection = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// name = "value", database.host = "localhost"; not YAML's key: value.
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

func isLikelyTOML(input string) bool {
	sections, pairs, lines := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines++
		if tomlSection.MatchString(line) {
			sections++
		}
		if tomlKeyValue.MatchString(line) {
			pairs++
		}
	}
	return sections > 0 || (lines > 0 && pairs > lines/2)
}
