package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/confviz/internal/diff"
	"github.com/oakwood-commons/confviz/internal/document"
	"github.com/oakwood-commons/confviz/pkg/loader"
)

const sample = `{
	"shared": {"timeout": 30, "name": "", "tags": []},
	"web": {"hosts": ["a", {"port": 80}]},
	"flag": true
}`

func TestFormatTreeKeepsOrder(t *testing.T) {
	out := FormatTree(document.MustParseJSON(sample), TreeOptions{Root: "base.json"})

	if !strings.HasPrefix(out, "base.json") {
		t.Fatalf("expected root label first, got:\n%s", out)
	}
	for _, want := range []string{"timeout: 30", `name: ""`, "tags: []", "[0]: a", "port: 80", "flag: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "shared") > strings.Index(out, "web") {
		t.Errorf("sections out of source order:\n%s", out)
	}
}

func TestFormatTreeDepthAndValues(t *testing.T) {
	doc := document.MustParseJSON(sample)

	out := FormatTree(doc, TreeOptions{MaxDepth: 2})
	assert.Contains(t, out, "timeout: 30")
	assert.Contains(t, out, "[1]: ...")
	assert.NotContains(t, out, "port")

	out = FormatTree(doc, TreeOptions{NoValues: true})
	assert.NotContains(t, out, "30")
	assert.Contains(t, out, "timeout")
}

func TestFormatTreeClipsLongStrings(t *testing.T) {
	doc := document.MustParseJSON(`{"s": {"long": "abcdefghijklmnop"}}`)
	out := FormatTree(doc, TreeOptions{MaxStringLen: 8})
	assert.Contains(t, out, "long: abcde...")
}

func TestFormatMermaid(t *testing.T) {
	out := FormatMermaid(document.MustParseJSON(`{"s": {"q": "say \"hi\""}}`), "cfg", MermaidOptions{Direction: "LR"})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "graph LR", lines[0])
	assert.Contains(t, out, `n0["cfg"]`)
	assert.Contains(t, out, `n1["s"]`)
	assert.Contains(t, out, `n2["q: say 'hi'"]`)
	assert.Contains(t, out, "n0 --> n1")
	assert.Contains(t, out, "n1 --> n2")
}

func TestRenderHeatmap(t *testing.T) {
	h := diff.BuildHeatmap([]string{"a.json", "b.json"}, []*document.Value{
		document.MustParseJSON(`{"s": {"x": 1}, "t": {"y": 1}}`),
		document.MustParseJSON(`{"s": {"x": 2}, "t": {"y": 1}}`),
	})
	require.NotNil(t, h)

	var buf bytes.Buffer
	RenderHeatmap(h, &buf, HeatmapOptions{})
	out := buf.String()
	assert.Contains(t, out, "SECTION")
	assert.Contains(t, out, "B.JSON")
	assert.NotContains(t, out, "A.JSON")
	assert.Contains(t, out, "TOTAL")
	assert.NotContains(t, out, "\x1b[")

	buf.Reset()
	RenderHeatmap(h, &buf, HeatmapOptions{EnableColors: true})
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestColorizeDiff(t *testing.T) {
	out := ColorizeDiff("  a\n- b\n+ c", DiffOptions{From: "x.json", To: "y.json", NoColor: true})
	assert.Equal(t, "--- x.json\n+++ y.json\n  a\n- b\n+ c", out)

	colored := ColorizeDiff("+ c", DiffOptions{})
	assert.Contains(t, colored, "\x1b[32m")

	removed := ColorizeDiff("{\n  \"gone\": null\n}", DiffOptions{})
	assert.Contains(t, removed, "\x1b[31m")

	assert.Equal(t, "No differences.", ColorizeDiff("", DiffOptions{NoColor: true}))
}

func TestReportMarkdownAndHTML(t *testing.T) {
	a := document.MustParseJSON(`{"shared": {"timeout": 30}}`)
	b := document.MustParseJSON(`{"shared": {"timeout": 45}}`)
	files := []loader.File{{Name: "a.json", Path: "/tmp/a.json", Data: a}, {Name: "b.json", Path: "/tmp/b.json", Data: b}}
	r := Report{
		Title:    "Nightly",
		Files:    files,
		Heatmap:  diff.BuildHeatmap([]string{"a.json", "b.json"}, []*document.Value{a, b}),
		DiffText: "{\n  \"shared\": {\n    \"timeout\": 45\n  }\n}",
		Compared: true,
	}

	md := r.Markdown()
	assert.Contains(t, md, "# Nightly")
	assert.Contains(t, md, "| 1 | a.json | `/tmp/a.json` | 1 |")
	assert.Contains(t, md, "| shared | 1 |")
	assert.Contains(t, md, "```diff")

	page := string(r.HTML())
	assert.Contains(t, page, "<title>Nightly</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, `id="difference-heatmap"`)
}

func TestReportSingleFileOmitsComparison(t *testing.T) {
	r := Report{Files: []loader.File{{Name: "a.json", Path: "a.json", Data: document.MustParseJSON(`{"s": 1}`)}}}
	md := r.Markdown()
	assert.Contains(t, md, "# Configuration report")
	assert.Contains(t, md, "- **s** (number)")
	assert.NotContains(t, md, "heatmap")
}
