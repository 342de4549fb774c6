package search

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/confviz/internal/document"
	"github.com/oakwood-commons/confviz/internal/navigator"
	"github.com/oakwood-commons/confviz/internal/panel"
)

type fakeSource struct {
	doc    *document.Value
	panels map[string]*panel.Panel
}

func newFakeSource(t *testing.T, js string, realize ...string) *fakeSource {
	t.Helper()
	src := &fakeSource{doc: document.MustParseJSON(js), panels: map[string]*panel.Panel{}}
	for _, s := range realize {
		v, ok := src.doc.Get(s)
		require.True(t, ok, s)
		src.panels[s] = panel.Render(s, v, nil)
	}
	return src
}

func (f *fakeSource) Sections() []string             { return f.doc.Keys() }
func (f *fakeSource) Realized(s string) *panel.Panel { return f.panels[s] }

func (f *fakeSource) typed(path string) any {
	v, err := navigator.Lookup(f.doc, path)
	if err != nil {
		return nil
	}
	return v.Interface()
}

const sample = `{
	"shared": {"timeout": 30, "host": "Alpha.example"},
	"mobile": {"retries": 3, "label": "beta"},
	"web": {"title": "alphabet"}
}`

func TestQueryUniqueValue(t *testing.T) {
	src := newFakeSource(t, sample, "shared", "mobile", "web")
	ix := NewIndex(src, nil, logr.Discard())

	res, err := ix.Query("BETA")
	require.NoError(t, err)
	require.Equal(t, []Result{{Section: "mobile", Path: "mobile.label"}}, res)

	row := src.panels["mobile"].Rows[src.panels["mobile"].IndexOf("mobile.label")]
	assert.True(t, row.Highlighted())
}

func TestQueryMatchesPathAndKeepsOrder(t *testing.T) {
	src := newFakeSource(t, sample, "shared", "mobile", "web")
	ix := NewIndex(src, nil, logr.Discard())

	res, err := ix.Query("alpha")
	require.NoError(t, err)
	assert.Equal(t, []Result{
		{Section: "shared", Path: "shared.host"},
		{Section: "web", Path: "web.title"},
	}, res)

	res, err = ix.Query("retries")
	require.NoError(t, err)
	assert.Equal(t, []Result{{Section: "mobile", Path: "mobile.retries"}}, res)
}

func TestEmptyQueryClearsHighlights(t *testing.T) {
	src := newFakeSource(t, sample, "shared", "mobile", "web")
	ix := NewIndex(src, nil, logr.Discard())

	_, err := ix.Query("alpha")
	require.NoError(t, err)

	res, err := ix.Query("   ")
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Empty(t, ix.Last())
	for _, p := range src.panels {
		for _, r := range p.Rows {
			assert.False(t, r.Highlighted(), r.Path)
		}
	}
}

func TestUnrealizedSectionsAreSkipped(t *testing.T) {
	src := newFakeSource(t, sample, "shared")
	ix := NewIndex(src, nil, logr.Discard())

	res, err := ix.Query("beta")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSearchSeesEditedText(t *testing.T) {
	src := newFakeSource(t, sample, "web")
	ix := NewIndex(src, nil, logr.Discard())
	src.panels["web"].Fields()[0].SetValue("renamed")

	res, err := ix.Query("renamed")
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestExpressionQuery(t *testing.T) {
	src := newFakeSource(t, sample, "shared", "mobile", "web")
	ix := NewIndex(src, src.typed, logr.Discard())

	res, err := ix.Query(`? _ > 5`)
	require.NoError(t, err)
	assert.Equal(t, []Result{{Section: "shared", Path: "shared.timeout"}}, res)

	res, err = ix.Query(`?section == "web"`)
	require.NoError(t, err)
	assert.Equal(t, []Result{{Section: "web", Path: "web.title"}}, res)

	_, err = ix.Query(`? key ==`)
	assert.Error(t, err)
	_, err = ix.Query(`?`)
	assert.Error(t, err)
}
