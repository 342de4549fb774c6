package diff

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/confviz/internal/document"
)

var (
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
)

func docs(js ...string) []*document.Value {
	out := make([]*document.Value, len(js))
	for i, s := range js {
		out[i] = document.MustParseJSON(s)
	}
	return out
}

func TestHeatmapSingleChange(t *testing.T) {
	h := BuildHeatmap([]string{"base.json", "other.json"}, docs(`{"a": {"x": 1}}`, `{"a": {"x": 2}}`))
	require.NotNil(t, h)
	assert.Equal(t, []string{"a"}, h.Sections)
	assert.Equal(t, []string{"other.json"}, h.Files)
	score, ok := h.Score("a", "other.json")
	require.True(t, ok)
	assert.Equal(t, 1, score)
	assert.Equal(t, red, h.Color(0, 0, white, red))
}

func TestHeatmapIdenticalIsUniform(t *testing.T) {
	same := `{"b": {"x": 1}, "a": [1, 2]}`
	h := BuildHeatmap([]string{"1", "2", "3"}, docs(same, same, same))
	require.NotNil(t, h)
	assert.Equal(t, 0, h.Max)
	for r := range h.Sections {
		for c := range h.Files {
			assert.Equal(t, 0, h.Cells[r][c])
			assert.Equal(t, white, h.Color(r, c, white, red))
		}
	}
}

func TestHeatmapUnionSortedAndScaled(t *testing.T) {
	h := BuildHeatmap(
		[]string{"base", "two", "three"},
		docs(
			`{"zeta": 1, "alpha": {"x": 1, "y": 2}}`,
			`{"zeta": 1, "alpha": {"x": 5, "y": 6}}`,
			`{"zeta": 2, "mid": true}`,
		),
	)
	require.NotNil(t, h)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, h.Sections)
	assert.Equal(t, []string{"two", "three"}, h.Files)
	assert.Equal(t, [][]int{{2, 1}, {0, 1}, {0, 1}}, h.Cells)
	assert.Equal(t, 2, h.Max)
	assert.InDelta(t, 0.5, h.Intensity(1, 1), 1e-9)

	mid := h.Color(1, 1, white, red).(color.RGBA)
	assert.Equal(t, uint8(0xff), mid.R)
	assert.Equal(t, uint8(0x80), mid.G)

	_, ok := h.Score("nope", "two")
	assert.False(t, ok)
}

func TestHeatmapNeedsTwoFiles(t *testing.T) {
	assert.Nil(t, BuildHeatmap([]string{"one"}, docs(`{"a": 1}`)))
	assert.Nil(t, BuildHeatmap(nil, nil))
}
