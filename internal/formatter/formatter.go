// Package formatter renders loaded documents and comparisons as plain text for the
// non-interactive commands: ASCII trees, Mermaid graphs, score tables, coloured diffs
// and Markdown/HTML reports.
package formatter

import (
	"strconv"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/confviz/internal/document"
)

const ellipsis = "..."

// formatKeyValue joins a label and a value. An empty key shows only the value.
func formatKeyValue(key, value string) string {
	if key == "" {
		return value
	}
	return key + ": " + value
}

// scalarText is the display form of a leaf, clipped to maxLen columns when maxLen > 0.
func scalarText(v *document.Value, maxLen int) string {
	s := v.Text()
	if v.Kind() == document.StringKind && s == "" {
		s = `""`
	}
	if maxLen > 0 && runewidth.StringWidth(s) > maxLen {
		if maxLen <= len(ellipsis) {
			return ellipsis
		}
		return runewidth.Truncate(s, maxLen, ellipsis)
	}
	return s
}

// emptyText returns "{}" or "[]" for empty containers, and "" otherwise.
func emptyText(v *document.Value) string {
	switch {
	case v.Kind() == document.ObjectKind && len(v.Keys()) == 0:
		return "{}"
	case v.Kind() == document.ArrayKind && v.Len() == 0:
		return "[]"
	}
	return ""
}

func indexLabel(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
