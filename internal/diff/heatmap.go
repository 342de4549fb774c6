package diff

import (
	"image/color"
	"sort"

	"github.com/oakwood-commons/confviz/internal/document"
)

// Heatmap holds section scores of every file after the first against the first.
type Heatmap struct {
	// Sections are the rows, sorted.
	Sections []string
	// Files are the column names in load order, excluding the base file.
	Files []string
	// Cells[row][col] is the score of Sections[row] in Files[col].
	Cells [][]int
	Max   int
}

// BuildHeatmap scores each section present in any document. names and docs are
// parallel and docs[0] is the base. Fewer than two documents yields nil.
func BuildHeatmap(names []string, docs []*document.Value) *Heatmap {
	if len(docs) < 2 || len(names) != len(docs) {
		return nil
	}
	seen := map[string]bool{}
	var sections []string
	for _, d := range docs {
		for _, k := range d.Keys() {
			if !seen[k] {
				seen[k] = true
				sections = append(sections, k)
			}
		}
	}
	sort.Strings(sections)

	h := &Heatmap{
		Sections: sections,
		Files:    append([]string(nil), names[1:]...),
		Cells:    make([][]int, len(sections)),
	}
	base := docs[0]
	for r, s := range sections {
		row := make([]int, len(docs)-1)
		a, _ := base.Get(s)
		for c, other := range docs[1:] {
			b, _ := other.Get(s)
			row[c] = Score(a, b)
			h.Max = max(h.Max, row[c])
		}
		h.Cells[r] = row
	}
	return h
}

// Score returns the cell for section and file, or false when either is unknown.
func (h *Heatmap) Score(section, file string) (int, bool) {
	r := indexOf(h.Sections, section)
	c := indexOf(h.Files, file)
	if r < 0 || c < 0 {
		return 0, false
	}
	return h.Cells[r][c], true
}

// Intensity is the cell's share of the largest score, in [0,1]. Everything is 0 when
// no cell differs.
func (h *Heatmap) Intensity(row, col int) float64 {
	if h.Max == 0 {
		return 0
	}
	return float64(h.Cells[row][col]) / float64(h.Max)
}

// Color blends linearly from zero to full by the cell's intensity.
func (h *Heatmap) Color(row, col int, zero, full color.Color) color.Color {
	return Blend(zero, full, h.Intensity(row, col))
}

// Blend mixes a and b, t=0 giving a and t=1 giving b.
func Blend(a, b color.Color, t float64) color.RGBA {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	mix := func(x, y uint32) uint8 {
		fx, fy := float64(x>>8), float64(y>>8)
		return uint8(fx + (fy-fx)*t + 0.5)
	}
	return color.RGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: 0xff}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
