// Package tui lets host programs open the confviz viewer on their own files, either
// interactively or as a rendered text frame.
package tui

import (
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/oakwood-commons/confviz/internal/config"
	"github.com/oakwood-commons/confviz/internal/diff"
	"github.com/oakwood-commons/confviz/internal/tooltips"
	"github.com/oakwood-commons/confviz/internal/ui"
)

const defaultFallbackTermWidth = 120

// Config holds host-provided settings.
type Config struct {
	// ConfigFile is a confviz YAML config; empty uses the built-in defaults only.
	ConfigFile string
	// Tooltips are layered over the built-in table, keyed by field path.
	Tooltips map[string]string
	// DiffFormat is "merge-patch" (default) or "lines".
	DiffFormat string
	Width      int
	Height     int
	NoColor    bool
	// Watch reloads the files when they change on disk. Ignored by Snapshot.
	Watch bool
	// StartKeys are applied before a snapshot, e.g. "/timeout<enter>".
	StartKeys []string
	Logger    logr.Logger
}

// DetectTerminalSize probes stdout, stderr and stdin, then COLUMNS, and finally falls
// back to 120x24.
func DetectTerminalSize() (width int, height int) {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 24
		}
	}
	return defaultFallbackTermWidth, 24
}

func newModel(cfg Config, watch bool) (*ui.Model, error) {
	c, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	tips, err := tooltips.Default()
	if err != nil {
		return nil, err
	}
	if len(cfg.Tooltips) > 0 {
		tips = tips.Merge(tooltips.Table(cfg.Tooltips))
	}
	format := diff.Format(cfg.DiffFormat)
	if format == "" {
		format = diff.Format(c.Diff.Format)
	}
	differ, err := diff.New(format)
	if err != nil {
		return nil, err
	}
	return ui.NewModel(ui.Options{
		Config:   c,
		Tooltips: tips,
		Differ:   differ,
		Logger:   cfg.Logger,
		NoColor:  cfg.NoColor,
		Watch:    watch,
	}), nil
}

// Run opens paths in the interactive viewer and blocks until the user quits. A load
// failure is shown in the viewer rather than returned. Host applications can pass
// tea.ProgramOption values to control IO.
func Run(paths []string, cfg Config, opts ...tea.ProgramOption) error {
	m, err := newModel(cfg, cfg.Watch)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		if err := m.Load(paths); err != nil {
			m.ShowError(err)
		}
	}
	return ui.Run(m, cfg.Width, cfg.Height, opts...)
}

// Snapshot loads paths and renders one frame of the viewer. Width and height default
// to the detected terminal size.
func Snapshot(paths []string, cfg Config) (string, error) {
	m, err := newModel(cfg, false)
	if err != nil {
		return "", err
	}
	defer func() { _ = m.Close() }()
	if len(paths) > 0 {
		if err := m.Load(paths); err != nil {
			return "", err
		}
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		dw, dh := DetectTerminalSize()
		if w <= 0 {
			w = dw
		}
		if h <= 0 {
			h = dh
		}
	}
	return ui.Snapshot(m, ui.SnapshotConfig{
		Width:     w,
		Height:    h,
		NoColor:   cfg.NoColor,
		StartKeys: cfg.StartKeys,
	}), nil
}

// WithIO returns program options that read from in and write to out.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	var opts []tea.ProgramOption
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
