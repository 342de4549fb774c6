package formatter

import (
	"strings"

	"github.com/fatih/color"
)

// DiffOptions controls diff colouring.
type DiffOptions struct {
	// From and To name the compared files in the header; no header when both are empty.
	From, To string
	NoColor  bool
}

// ColorizeDiff colours structural diff text for a terminal. Added lines are green and
// removed lines, including merge-patch deletions, red. Empty text means no differences.
func ColorizeDiff(diffText string, opts DiffOptions) string {
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	head := color.New(color.Bold)
	for _, c := range []*color.Color{add, del, head} {
		if opts.NoColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	var lines []string
	if opts.From != "" || opts.To != "" {
		lines = append(lines, head.Sprint("--- "+opts.From), head.Sprint("+++ "+opts.To))
	}
	if diffText == "" {
		return strings.Join(append(lines, "No differences."), "\n")
	}
	for _, line := range strings.Split(diffText, "\n") {
		trimmed := strings.TrimRight(strings.TrimSpace(line), ",")
		switch {
		case strings.HasPrefix(line, "+ "):
			line = add.Sprint(line)
		case strings.HasPrefix(line, "- "), strings.HasSuffix(trimmed, ": null"):
			line = del.Sprint(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
