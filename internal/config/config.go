// Package config loads confviz settings: the embedded defaults with an optional user
// YAML file merged over them.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// AppName is used for the XDG config directory.
const AppName = "confviz"

// Config is the merged configuration.
type Config struct {
	App     App     `yaml:"app"`
	Search  Search  `yaml:"search"`
	Diff    Diff    `yaml:"diff"`
	UI      UI      `yaml:"ui"`
	Heatmap Heatmap `yaml:"heatmap"`
	Watch   Watch   `yaml:"watch"`
}

type App struct {
	About About `yaml:"about"`
}

type About struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Search struct {
	Eager *bool `yaml:"eager"`
}

type Diff struct {
	Format string `yaml:"format"`
}

type UI struct {
	TreeWidth  *int  `yaml:"tree_width"`
	Indent     *int  `yaml:"indent"`
	LabelWidth *int  `yaml:"label_width"`
	Theme      Theme `yaml:"theme"`
}

// Theme holds lipgloss colour strings: ANSI numbers or #RRGGBB.
type Theme struct {
	TabActive   string `yaml:"tab_active"`
	TabInactive string `yaml:"tab_inactive"`
	Group       string `yaml:"group"`
	Label       string `yaml:"label"`
	Value       string `yaml:"value"`
	Edited      string `yaml:"edited"`
	Match       string `yaml:"match"`
	Cursor      string `yaml:"cursor"`
	Tooltip     string `yaml:"tooltip"`
	Error       string `yaml:"error"`
	Border      string `yaml:"border"`
}

type Heatmap struct {
	ZeroColor string `yaml:"zero_color"`
	MaxColor  string `yaml:"max_color"`
}

type Watch struct {
	DebounceMS *int `yaml:"debounce_ms"`
}

// DefaultYAML returns a copy of the embedded defaults.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, fmt.Errorf("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults with the file at path merged over them. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return Merge(cfg, user), nil
}

// Merge layers the set fields of over onto base.
func Merge(base, over Config) Config {
	cfg := base
	setString(&cfg.App.About.Name, over.App.About.Name)
	setString(&cfg.App.About.Description, over.App.About.Description)
	if over.Search.Eager != nil {
		cfg.Search.Eager = over.Search.Eager
	}
	setString(&cfg.Diff.Format, over.Diff.Format)
	if over.UI.TreeWidth != nil {
		cfg.UI.TreeWidth = over.UI.TreeWidth
	}
	if over.UI.Indent != nil {
		cfg.UI.Indent = over.UI.Indent
	}
	if over.UI.LabelWidth != nil {
		cfg.UI.LabelWidth = over.UI.LabelWidth
	}
	t, o := &cfg.UI.Theme, over.UI.Theme
	setString(&t.TabActive, o.TabActive)
	setString(&t.TabInactive, o.TabInactive)
	setString(&t.Group, o.Group)
	setString(&t.Label, o.Label)
	setString(&t.Value, o.Value)
	setString(&t.Edited, o.Edited)
	setString(&t.Match, o.Match)
	setString(&t.Cursor, o.Cursor)
	setString(&t.Tooltip, o.Tooltip)
	setString(&t.Error, o.Error)
	setString(&t.Border, o.Border)
	setString(&cfg.Heatmap.ZeroColor, over.Heatmap.ZeroColor)
	setString(&cfg.Heatmap.MaxColor, over.Heatmap.MaxColor)
	if over.Watch.DebounceMS != nil {
		cfg.Watch.DebounceMS = over.Watch.DebounceMS
	}
	return cfg
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// EagerSearch reports whether every section is rendered before a search.
func (c Config) EagerSearch() bool {
	return c.Search.Eager == nil || *c.Search.Eager
}

// TreeWidth is the tree pane width in columns.
func (c Config) TreeWidth() int { return intOr(c.UI.TreeWidth, 32) }

// Indent is the number of spaces per nesting level.
func (c Config) Indent() int { return intOr(c.UI.Indent, 2) }

// LabelWidth is the width field labels are padded to; 0 disables padding.
func (c Config) LabelWidth() int { return intOr(c.UI.LabelWidth, 0) }

// Debounce is the delay between a file change and the reload.
func (c Config) Debounce() time.Duration {
	return time.Duration(intOr(c.Watch.DebounceMS, 200)) * time.Millisecond
}

func intOr(p *int, def int) int {
	if p == nil || *p < 0 {
		return def
	}
	return *p
}

// ResolvePath returns explicit if set, otherwise $XDG_CONFIG_HOME/confviz/config.yaml
// (or ~/.config/confviz/config.yaml) when that file exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, AppName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", AppName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// Marshal renders cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
