// Package settings carries build metadata and the per-run options shared by the
// confviz commands.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "confviz"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, build version and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds options for a single execution.
type Run struct {
	MinLogLevel int8
	// LogFile receives logs; empty means stderr for subcommands and nowhere for the TUI.
	LogFile    string
	ConfigFile string
	Tooltips   string
	NoColor    bool
	Watch      bool
	DiffFormat string
}

// NewCliParams returns the defaults used before flags are parsed.
func NewCliParams() *Run {
	return &Run{DiffFormat: "merge-patch"}
}
