package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/confviz/internal/config"
	"github.com/oakwood-commons/confviz/internal/diff"
	"github.com/oakwood-commons/confviz/internal/limiter"
	"github.com/oakwood-commons/confviz/internal/tooltips"
	"github.com/oakwood-commons/confviz/internal/ui"
	"github.com/oakwood-commons/confviz/internal/workspace"
	"github.com/oakwood-commons/confviz/pkg/core"
	"github.com/oakwood-commons/confviz/pkg/logger"
	"github.com/oakwood-commons/confviz/pkg/settings"
)

var (
	cliParams = settings.NewCliParams()

	debug          bool
	searchTerm     string
	renderSnapshot bool
	snapshotWidth  int
	snapshotHeight int
	startKeys      []string
	diffFormat     = newDiffFormatValue(diff.FormatMergePatch)
	searchWindow   limiter.Config
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [files...]",
	Short: "Browse, search and compare JSON configuration files",
	Long: `confviz opens one or more configuration files (JSON, YAML or TOML) in a terminal UI.
The first file is the base: each of its top-level keys becomes a tab. With a second file
a Compare tab shows the structural delta and a Heatmap tab scores every section of every
further file against the base.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Example:       "\n  confviz base.json\n  confviz base.json staging.json prod.json\n  confviz base.json --search timeout\n  confviz diff base.json prod.json\n",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cliParams.MinLogLevel = 0
		if debug {
			cliParams.MinLogLevel = -1
		}
		cliParams.DiffFormat = diffFormat.String()
		if v := os.Getenv("NO_COLOR"); v != "" {
			cliParams.NoColor = true
		}

		sink := logger.Stderr
		switch {
		case cliParams.LogFile != "":
			sink = logger.File
		case !cmd.HasParent() && !renderSnapshot && searchTerm == "":
			// the TUI owns the terminal
			sink = logger.Discard
		}
		lgr, err := logger.Setup(logger.Options{Level: cliParams.MinLogLevel, Sink: sink, Path: cliParams.LogFile})
		if err != nil {
			return err
		}
		l := lgr.WithValues("command", cmd.Name())

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = logger.WithLogger(ctx, &l)
		ctx = settings.IntoContext(ctx, cliParams)
		cmd.SetContext(ctx)
		return nil
	},
	RunE: runRoot,
}

func init() { //nolint:gochecknoinits
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cliParams.ConfigFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/confviz/config.yaml)")
	pf.StringVar(&cliParams.Tooltips, "tooltips", "", "YAML or JSON file of path: description tooltips, layered over the built-in ones")
	pf.BoolVar(&debug, "debug", false, "log at debug level")
	pf.StringVar(&cliParams.LogFile, "log-file", "", "append JSON logs to this file")
	pf.BoolVar(&cliParams.NoColor, "no-color", false, "disable colour output")
	pf.Var(diffFormat, "diff-format", "delta format for Compare and diff: "+formatList())

	f := rootCmd.Flags()
	f.StringVar(&searchTerm, "search", "", "print the fields matching a query (text, path, or ?expression) and exit")
	f.BoolVar(&renderSnapshot, "snapshot", false, "render a single TUI frame and exit; honors --width/--height")
	f.IntVar(&snapshotWidth, "width", 0, "screen width in columns (default: terminal width)")
	f.IntVar(&snapshotHeight, "height", 0, "screen height in rows (default: terminal height)")
	f.BoolVar(&cliParams.Watch, "watch", false, "reload the files when they change on disk")
	f.IntVar(&searchWindow.Limit, "limit", 0, "print at most N --search matches (0 = all)")
	f.IntVar(&searchWindow.Offset, "offset", 0, "skip the first N --search matches")
	f.IntVar(&searchWindow.Tail, "tail", 0, "print only the last N --search matches")
	f.StringArrayVar(&startKeys, "press", nil, `keys to apply before a snapshot, e.g. --press "/timeout<enter>"`)

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd, configCmd, diffCmd, heatmapCmd, treeCmd, reportCmd)
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

// runEnv is what every command needs after flags are parsed.
type runEnv struct {
	cfg    config.Config
	tips   tooltips.Table
	format diff.Format
	differ diff.Differ
	log    logr.Logger
}

func newRunEnv(cmd *cobra.Command) (*runEnv, error) {
	log := logr.Discard()
	if l := logger.FromContext(cmd.Context()); l != nil {
		log = *l
	}

	path := config.ResolvePath(cliParams.ConfigFile)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("config resolved", "path", path)

	tips, err := tooltips.Load(cliParams.Tooltips)
	if err != nil {
		return nil, err
	}

	format := diff.Format(cfg.Diff.Format)
	if flag := cmd.Flag("diff-format"); (flag != nil && flag.Changed) || format == "" {
		format = diff.Format(cliParams.DiffFormat)
	}
	differ, err := diff.New(format)
	if err != nil {
		return nil, err
	}
	return &runEnv{cfg: cfg, tips: tips, format: format, differ: differ, log: log}, nil
}

func (e *runEnv) workspaceOptions() workspace.Options {
	return workspace.Options{
		Tooltips:    e.tips,
		Differ:      e.differ,
		EagerSearch: true,
		Logger:      e.log,
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if searchTerm != "" {
		if len(args) == 0 {
			return errors.New("--search needs at least one file")
		}
		if err := searchWindow.Validate(); err != nil {
			return err
		}
		engine, err := core.New(
			core.WithDiffFormat(string(env.format)),
			core.WithTooltips(env.tips),
			core.WithLogger(env.log),
		)
		if err != nil {
			return err
		}
		session, err := engine.Open(args...)
		if err != nil {
			return err
		}
		return printSearch(out, session, searchTerm)
	}

	m := ui.NewModel(ui.Options{
		Config:   env.cfg,
		Tooltips: env.tips,
		Differ:   env.differ,
		Logger:   env.log,
		NoColor:  cliParams.NoColor,
		Watch:    cliParams.Watch && !renderSnapshot,
	})
	var loadErr error
	if len(args) > 0 {
		loadErr = m.Load(args)
	}

	if renderSnapshot {
		if loadErr != nil {
			return loadErr
		}
		w, h := snapshotWidth, snapshotHeight
		if w <= 0 || h <= 0 {
			w, h = ui.TerminalSize(w, h)
		}
		_, err := fmt.Fprintln(out, ui.Snapshot(m, ui.SnapshotConfig{
			Width:     w,
			Height:    h,
			NoColor:   cliParams.NoColor,
			StartKeys: startKeys,
		}))
		return err
	}

	if loadErr != nil {
		m.ShowError(loadErr)
	}
	return ui.Run(m, snapshotWidth, snapshotHeight)
}

func printSearch(w io.Writer, session *core.Session, query string) error {
	matches, err := session.Search(query)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(matches) == 0 {
		_, err := fmt.Fprintf(w, "no matches for %q\n", query)
		return err
	}
	path := color.New(color.FgCyan)
	if useColor(w) {
		path.EnableColor()
	} else {
		path.DisableColor()
	}
	shown := limiter.Apply(searchWindow, matches)
	for _, m := range shown {
		if _, err := fmt.Fprintf(w, "%s = %s\n", path.Sprint(m.Path), m.Value); err != nil {
			return err
		}
	}
	if len(shown) < len(matches) {
		_, err = fmt.Fprintf(w, "(%d of %d matches)\n", len(shown), len(matches))
	}
	return err
}

// useColor reports whether w is a terminal and colour was not turned off.
func useColor(w io.Writer) bool {
	if cliParams.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func formatList() string {
	names := make([]string, len(diff.Formats))
	for i, f := range diff.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}
