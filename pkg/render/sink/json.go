package sink

import (
	"encoding/json"

	"github.com/matzehuels/hingecut/pkg/geom"
	"github.com/matzehuels/hingecut/pkg/hinge"
)

type jsonOutput struct {
	Units    string        `json:"units"`
	Panel    hinge.Panel   `json:"panel"`
	Params   hinge.Params  `json:"params"`
	Frame    []geom.Point  `json:"frame,omitempty"`
	Segments []jsonSegment `json:"segments"`
	Stats    hinge.Stats   `json:"stats"`
	Warnings []string      `json:"warnings,omitempty"`
}

// jsonSegment is [x1, y1, x2, y2].
type jsonSegment [4]float64

// RenderJSON exports the pattern for external tools. Segments are encoded as
// compact [x1, y1, x2, y2] arrays in output order.
func RenderJSON(p *hinge.Pattern) ([]byte, error) {
	out := jsonOutput{
		Units:    "mm",
		Panel:    p.Panel,
		Params:   p.Params,
		Frame:    p.Frame,
		Segments: make([]jsonSegment, len(p.Segments)),
		Stats:    p.Stats,
		Warnings: p.Warnings,
	}
	for i, s := range p.Segments {
		out.Segments[i] = jsonSegment{s.P1.X, s.P1.Y, s.P2.X, s.P2.Y}
	}
	return json.MarshalIndent(out, "", "  ")
}
