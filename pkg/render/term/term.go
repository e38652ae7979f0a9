// Package term draws hinge patterns as character grids for terminal previews.
//
// Terminal cells are roughly twice as tall as they are wide, so one row
// covers twice the distance of one column and the panel keeps its aspect
// ratio on screen. The frame is drawn with '+', '-' and '|', cuts with '#'.
package term

import (
	"math"

	"github.com/matzehuels/hingecut/pkg/geom"
	"github.com/matzehuels/hingecut/pkg/hinge"
)

// Cell characters.
const (
	Cut    = '#'
	Corner = '+'
	HEdge  = '-'
	VEdge  = '|'
	Empty  = ' '
)

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2.0

// Rasterize renders p into at most cols x rows characters. The first
// returned line is the top of the panel. It returns nil when the grid would
// be smaller than 2x2.
func Rasterize(p *hinge.Pattern, cols, rows int) []string {
	g := newGrid(p.Panel, cols, rows)
	if g == nil {
		return nil
	}

	frame := geom.Edges(p.Frame)
	for _, e := range frame {
		ch := rune(VEdge)
		if e.P1.Y == e.P2.Y {
			ch = HEdge
		}
		g.line(e, ch)
	}
	for _, e := range frame {
		g.set(e.P1, Corner)
	}
	for _, s := range p.Segments {
		g.line(s, Cut)
	}
	return g.lines()
}

type grid struct {
	cells [][]rune
	w, h  int
	scale float64 // millimetres per column
}

func newGrid(panel hinge.Panel, cols, rows int) *grid {
	if cols < 2 || rows < 2 || panel.Width <= 0 || panel.Height <= 0 {
		return nil
	}
	scale := math.Max(panel.Width/float64(cols), panel.Height/(cellAspect*float64(rows)))
	w := min(cols, max(2, int(math.Ceil(panel.Width/scale))))
	h := min(rows, max(2, int(math.Ceil(panel.Height/(cellAspect*scale)))))

	cells := make([][]rune, h)
	for r := range cells {
		cells[r] = make([]rune, w)
		for c := range cells[r] {
			cells[r][c] = Empty
		}
	}
	return &grid{cells: cells, w: w, h: h, scale: scale}
}

// cell maps a panel point to (column, row), clamped to the grid.
func (g *grid) cell(p geom.Point) (int, int) {
	c := int(math.Round(p.X / g.scale))
	r := g.h - 1 - int(math.Round(p.Y/(cellAspect*g.scale)))
	return clamp(c, 0, g.w-1), clamp(r, 0, g.h-1)
}

func (g *grid) set(p geom.Point, ch rune) {
	c, r := g.cell(p)
	g.cells[r][c] = ch
}

func (g *grid) line(s geom.Segment, ch rune) {
	c1, r1 := g.cell(s.P1)
	c2, r2 := g.cell(s.P2)
	n := max(abs(c2-c1), abs(r2-r1))
	if n == 0 {
		g.cells[r1][c1] = ch
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c := c1 + int(math.Round(float64(c2-c1)*t))
		r := r1 + int(math.Round(float64(r2-r1)*t))
		g.cells[r][c] = ch
	}
}

func (g *grid) lines() []string {
	out := make([]string, g.h)
	for r, row := range g.cells {
		out[r] = string(row)
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
