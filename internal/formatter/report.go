package formatter

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/confviz/internal/diff"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

// Report collects what a comparison report shows.
type Report struct {
	Title    string
	Files    []loader.File
	Heatmap  *diff.Heatmap
	DiffText string
	// Compared is false for a single file; the heatmap and diff are then omitted.
	Compared bool
}

// Markdown renders the report.
func (r Report) Markdown() string {
	var b strings.Builder
	title := r.Title
	if title == "" {
		title = "Configuration report"
	}
	fmt.Fprintf(&b, "# %s\n\n", mdEscape(title))

	b.WriteString("## Files\n\n| # | Name | Path | Sections |\n|---|---|---|---|\n")
	for i, f := range r.Files {
		fmt.Fprintf(&b, "| %d | %s | `%s` | %d |\n", i+1, mdEscape(f.Name), f.Path, len(f.Data.Keys()))
	}

	if len(r.Files) > 0 {
		b.WriteString("\n## Sections\n\n")
		for _, s := range r.Files[0].Data.Keys() {
			v, _ := r.Files[0].Data.Get(s)
			fmt.Fprintf(&b, "- **%s** (%s)\n", mdEscape(s), v.Kind())
		}
	}

	if !r.Compared {
		return b.String()
	}

	if h := r.Heatmap; h != nil {
		b.WriteString("\n## Difference heatmap\n\n| Section |")
		for _, f := range h.Files {
			fmt.Fprintf(&b, " %s |", mdEscape(f))
		}
		b.WriteString("\n|---|" + strings.Repeat("---:|", len(h.Files)) + "\n")
		for i, s := range h.Sections {
			fmt.Fprintf(&b, "| %s |", mdEscape(s))
			for _, score := range h.Cells[i] {
				fmt.Fprintf(&b, " %d |", score)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\nLargest section difference: %d\n", h.Max)
	}

	fmt.Fprintf(&b, "\n## Changes from %s to %s\n\n", mdEscape(r.Files[0].Name), mdEscape(r.Files[1].Name))
	if r.DiffText == "" {
		b.WriteString("No differences.\n")
	} else {
		b.WriteString("```diff\n" + r.DiffText + "\n```\n")
	}
	return b.String()
}

// HTML renders the report as a standalone page.
func (r Report) HTML() []byte {
	return MarkdownToHTML(r.Markdown(), r.Title)
}

// MarkdownToHTML converts md into a complete HTML page.
func MarkdownToHTML(md, title string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: title,
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func mdEscape(s string) string {
	return strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`").Replace(s)
}
