package panel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/confviz/internal/document"
	"github.com/oakwood-commons/confviz/internal/navigator"
)

type stubTips map[string]string

func (s stubTips) Lookup(path string) (string, bool) {
	t, ok := s[path]
	return t, ok
}

func TestRenderObjectSection(t *testing.T) {
	doc := document.MustParseJSON(`{"shared": {"timeout": 30}}`)
	v, _ := doc.Get("shared")
	p := Render("shared", v, nil)

	require.Len(t, p.Rows, 2)
	assert.Equal(t, GroupRow, p.Rows[0].Kind)
	assert.Equal(t, "Object", p.Rows[0].Label)
	assert.Equal(t, "shared", p.Rows[0].Path)

	fields := p.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, "timeout", fields[0].Label)
	assert.Equal(t, "30", fields[0].Value())
	assert.Equal(t, "shared.timeout", fields[0].Path)
	assert.Equal(t, 1, fields[0].Depth)
}

func TestRenderNestedGroupsAndLists(t *testing.T) {
	v := document.MustParseJSON(`{"db": {"host": "x"}, "ports": [80, {"tls": true}], "note": null}`)
	p := Render("svc", v, nil)

	var labels []string
	for _, r := range p.Rows {
		labels = append(labels, strings.Repeat("-", r.Depth)+r.Label)
	}
	assert.Equal(t, []string{
		"Object",
		"-db",
		"--host",
		"-ports [List]",
		"--[0]",
		"--[1]",
		"---tls",
		"-note",
	}, labels)

	assert.Equal(t, 4, p.IndexOf("svc.ports[0]"))
	assert.Equal(t, "true", p.Rows[p.IndexOf("svc.ports[1].tls")].Value())
	assert.Equal(t, "null", p.Rows[p.IndexOf("svc.note")].Value())
	assert.Equal(t, -1, p.IndexOf("svc.nope"))
}

func TestRenderRootListAndScalar(t *testing.T) {
	p := Render("items", document.MustParseJSON(`["a"]`), nil)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, "List", p.Rows[0].Label)
	assert.Equal(t, "items[0]", p.Rows[1].Path)

	p = Render("flag", document.Bool(true), nil)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, FieldRow, p.Rows[0].Kind)
	assert.Equal(t, "flag", p.Rows[0].Label)
	assert.Equal(t, "true", p.Rows[0].Value())
}

func TestRenderPathsMatchTree(t *testing.T) {
	doc := document.MustParseJSON(`{"s": {"a.b": 1, "a": {"b": [2, 3]}, "": "x"}}`)
	v, _ := doc.Get("s")
	p := Render("s", v, nil)

	seen := map[string]bool{}
	for _, r := range p.Rows {
		require.False(t, seen[r.Path], "duplicate path %q", r.Path)
		seen[r.Path] = true
	}
	navigator.Walk(navigator.BuildSectionTrees(doc), func(n *navigator.Node) bool {
		assert.True(t, seen[n.Path], "tree path %q not rendered", n.Path)
		return true
	})
}

func TestTooltipsAttachByExactPath(t *testing.T) {
	v := document.MustParseJSON(`{"timeout": 1, "retries": 2}`)
	p := Render("shared", v, stubTips{"shared": "Shared settings", "shared.timeout": "Seconds"})
	assert.Equal(t, "Shared settings", p.Rows[0].Tooltip)
	assert.Equal(t, "Seconds", p.Rows[p.IndexOf("shared.timeout")].Tooltip)
	assert.Empty(t, p.Rows[p.IndexOf("shared.retries")].Tooltip)
}

func TestEditingIsLocal(t *testing.T) {
	doc := document.MustParseJSON(`{"s": {"k": "v"}}`)
	v, _ := doc.Get("s")
	p := Render("s", v, nil)
	row := p.Fields()[0]

	row.SetValue("changed")
	assert.True(t, row.Edited())
	assert.Equal(t, "v", row.Original())

	k, _ := v.Get("k")
	assert.Equal(t, "v", k.Text())
}

func TestHighlights(t *testing.T) {
	p := Render("s", document.MustParseJSON(`{"a": 1, "b": 2}`), nil)
	p.Fields()[1].SetHighlighted(true)
	assert.True(t, p.Fields()[1].Highlighted())
	p.ClearHighlights()
	for _, r := range p.Rows {
		assert.False(t, r.Highlighted())
	}
}

func TestTextIndentsAndClamps(t *testing.T) {
	p := Render("s", document.MustParseJSON(`{"name": "a long value here"}`), nil)
	out := p.Text(2, 0, 0)
	assert.Equal(t, "▸ Object\n  name: a long value here", out)

	line := FormatRow(p.Rows[1], 2, 0, 10)
	assert.LessOrEqual(t, len([]rune(line)), 10)
	assert.True(t, strings.HasSuffix(line, "…"))
}
