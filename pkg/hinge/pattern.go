package hinge

import (
	"fmt"

	"github.com/matzehuels/hingecut/pkg/geom"
)

// Pattern is a complete, clipped cutting pattern.
type Pattern struct {
	Panel  Panel  `json:"panel"`
	Params Params `json:"params"`

	// Frame is the closed panel outline, nil unless Params.IncludeFrame.
	Frame []geom.Point `json:"frame,omitempty"`

	// Segments holds the accepted cuts: columns left to right, slots in
	// increasing y within a column.
	Segments []geom.Segment `json:"segments"`

	Stats    Stats    `json:"stats"`
	Warnings []string `json:"warnings,omitempty"`
}

// Stats summarizes a generated pattern.
type Stats struct {
	Columns   int     `json:"columns"`
	Slots     int     `json:"slots"`
	Segments  int     `json:"segments"`
	Clipped   int     `json:"clipped"`    // segments truncated at the panel edge
	Dropped   int     `json:"dropped"`    // raw segments rejected by the clipper
	CutLength float64 `json:"cut_length"` // total length of all cuts, frame excluded
}

// Lines returns the output sequence: the four frame edges (if any) followed
// by the cut segments.
func (p *Pattern) Lines() []geom.Segment {
	frame := geom.Edges(p.Frame)
	out := make([]geom.Segment, 0, len(frame)+len(p.Segments))
	out = append(out, frame...)
	return append(out, p.Segments...)
}

// sink accumulates accepted segments in generation order.
type sink struct {
	pattern *Pattern
	eps     float64
}

func newSink(panel Panel, params Params, eps float64) *sink {
	p := &Pattern{Panel: panel, Params: params}
	if params.IncludeFrame {
		p.Frame = panel.Bounds().Polyline()
	}
	return &sink{pattern: p, eps: eps}
}

// addSlot clips each raw segment independently and keeps the survivors.
func (s *sink) addSlot(slot RawSlot, height float64) {
	kept := 0
	for _, raw := range slot.Segments {
		seg, ok := Clip(raw, height, s.eps)
		if !ok {
			s.pattern.Stats.Dropped++
			continue
		}
		if seg != raw {
			s.pattern.Stats.Clipped++
		}
		s.pattern.Segments = append(s.pattern.Segments, seg)
		s.pattern.Stats.CutLength += seg.Length()
		kept++
	}
	if kept > 0 {
		s.pattern.Stats.Slots++
	}
}

func (s *sink) warn(format string, args ...any) {
	s.pattern.Warnings = append(s.pattern.Warnings, fmt.Sprintf(format, args...))
}

// Generate validates the parameters, lays out the slots, clips them to the
// panel and returns the resulting pattern.
//
// On validation failure it returns a nil pattern and an
// *errors.ValidationError. The result is deterministic: identical inputs
// always yield an identical, identically ordered segment sequence.
func Generate(panel Panel, params Params, cfg Config) (*Pattern, error) {
	cfg = cfg.WithDefaults()
	params, err := Validate(panel, params, cfg)
	if err != nil {
		return nil, err
	}

	return assemble(panel, params, cfg, PlanLayout(panel, params, cfg)), nil
}

// assemble clips a raw layout into a pattern and attaches warnings.
func assemble(panel Panel, params Params, cfg Config, layout Layout) *Pattern {
	out := newSink(panel, params, cfg.Epsilon)
	for _, slot := range layout.Slots {
		out.addSlot(slot, panel.Height)
	}
	out.pattern.Stats.Columns = layout.Columns
	out.pattern.Stats.Segments = len(out.pattern.Segments)

	if layout.Truncated {
		out.warn("layout stopped at its iteration bound; pattern may be incomplete")
	}
	if layout.Columns == 0 {
		out.warn("panel width %g leaves no room for a column at pitch %g", panel.Width, params.Separation)
	}
	return out.pattern
}
