package hinge

import (
	"math"

	"github.com/matzehuels/hingecut/pkg/geom"
)

// RawSlot is the unclipped geometry of one slot.
type RawSlot struct {
	Column int     // column index, 0-based from the left
	Row    int     // step index within the column
	X      float64 // column line
	StartY float64
	MidY   float64
	EndY   float64

	// Segments holds one cut for Straight and four for Chevron.
	Segments []geom.Segment
}

// Layout is the raw output of the layout engine.
type Layout struct {
	Columns int
	Slots   []RawSlot

	// Truncated is set when an iteration bound stopped a loop whose
	// geometric condition still held.
	Truncated bool
}

// ColumnX returns the x coordinate of column i.
func ColumnX(i int, separation float64) float64 {
	return separation * float64(i+1)
}

// PlanLayout computes raw slot geometry for already validated parameters.
//
// Columns run left to right while x <= Width - Separation + Epsilon; the
// Epsilon tolerance keeps a column whose position lands on the margin after
// float rounding (e.g. 100 - 1.5 computed as 98.50000000000001). Slots within
// a column run upwards while the running offset is below Height. Slots
// entirely outside the panel are skipped.
//
// Both loops also stop at a count one past what the panel size allows. For
// validated input the geometric condition always ends them first, so
// Truncated stays false; the bound only guards against float drift.
func PlanLayout(panel Panel, params Params, cfg Config) Layout {
	return planLayout(panel, params, cfg, boundsFor(panel, params))
}

// layoutBounds caps the column and per-column row iterations.
type layoutBounds struct {
	cols, rows int
}

func boundsFor(panel Panel, params Params) layoutBounds {
	return layoutBounds{
		cols: int(math.Ceil(panel.Width/params.Separation)) + 1,
		rows: int(math.Ceil(panel.Height/params.Period())) + 1,
	}
}

func planLayout(panel Panel, params Params, cfg Config, bounds layoutBounds) Layout {
	cfg = cfg.WithDefaults()
	if params.Separation <= 0 || params.Period() <= 0 {
		panic("hinge: layout called with unvalidated parameters")
	}

	var out Layout
	limitX := panel.Width - params.Separation + cfg.Epsilon

	i := 0
	for ; i < bounds.cols; i++ {
		x := ColumnX(i, params.Separation)
		if x > limitX {
			break
		}
		if layoutColumn(&out, panel, params, i, x, bounds.rows) {
			out.Truncated = true
		}
	}
	if i == bounds.cols && ColumnX(i, params.Separation) <= limitX {
		out.Truncated = true
	}
	out.Columns = i
	return out
}

// layoutColumn appends the slots of column i and reports whether the row
// bound stopped it early.
func layoutColumn(out *Layout, panel Panel, params Params, i int, x float64, maxRows int) bool {
	period := params.Period()
	shift := params.PhaseShift(i)

	k := 0
	for ; k < maxRows; k++ {
		y := shift + float64(k)*period
		if y >= panel.Height {
			return false
		}
		startY := y + params.Gap
		endY := startY + params.CutLength
		if endY <= 0 || startY >= panel.Height {
			continue
		}
		midY := startY + params.CutLength/2
		out.Slots = append(out.Slots, RawSlot{
			Column:   i,
			Row:      k,
			X:        x,
			StartY:   startY,
			MidY:     midY,
			EndY:     endY,
			Segments: slotSegments(params, x, startY, midY, endY),
		})
	}
	return shift+float64(k)*period < panel.Height
}

func slotSegments(params Params, x, startY, midY, endY float64) []geom.Segment {
	if params.Variant != Chevron {
		return []geom.Segment{geom.Seg(x, startY, x, endY)}
	}
	half := params.CutWidth / 2
	return []geom.Segment{
		geom.Seg(x-half, startY, x, midY),
		geom.Seg(x+half, startY, x, midY),
		geom.Seg(x-half, endY, x, midY),
		geom.Seg(x+half, endY, x, midY),
	}
}
