package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/hingecut/pkg/geom"
	"github.com/matzehuels/hingecut/pkg/hinge"
)

const (
	DefaultLayer = "HINGE"

	// ACI colour index used for the cut layer (1 = red).
	DefaultColor = 1
)

type DXFOption func(*dxfRenderer)

type dxfRenderer struct {
	layer string
	color int
}

// WithLayer puts every entity on the named layer.
func WithLayer(name string) DXFOption {
	return func(r *dxfRenderer) {
		if name = strings.TrimSpace(name); name != "" {
			r.layer = strings.ToUpper(name)
		}
	}
}

// WithColor sets the AutoCAD colour index (1-255) of the layer.
func WithColor(aci int) DXFOption {
	return func(r *dxfRenderer) {
		if aci >= 1 && aci <= 255 {
			r.color = aci
		}
	}
}

// RenderDXF writes the pattern as an ASCII DXF (AutoCAD R12) drawing in
// millimetres with the panel origin at (0,0).
//
// The frame becomes a closed POLYLINE and every cut a LINE, all on a single
// layer, which is the subset that laser and CNC CAM software reads reliably.
func RenderDXF(p *hinge.Pattern, opts ...DXFOption) []byte {
	r := dxfRenderer{layer: DefaultLayer, color: DefaultColor}
	for _, opt := range opts {
		opt(&r)
	}

	w := &dxfWriter{}
	r.header(w, p.Panel)
	r.tables(w)

	w.section("ENTITIES")
	if len(p.Frame) > 0 {
		r.polyline(w, p.Frame)
	}
	for _, s := range p.Segments {
		r.line(w, s)
	}
	w.pair(0, "ENDSEC")
	w.pair(0, "EOF")
	return w.buf.Bytes()
}

func (r dxfRenderer) header(w *dxfWriter, panel hinge.Panel) {
	w.section("HEADER")
	w.pair(9, "$ACADVER")
	w.pair(1, "AC1009")
	w.pair(9, "$INSUNITS")
	w.pair(70, "4")
	w.pair(9, "$EXTMIN")
	w.point(0, 0)
	w.pair(9, "$EXTMAX")
	w.point(panel.Width, panel.Height)
	w.pair(0, "ENDSEC")
}

func (r dxfRenderer) tables(w *dxfWriter) {
	w.section("TABLES")
	w.pair(0, "TABLE")
	w.pair(2, "LAYER")
	w.pair(70, "1")
	w.pair(0, "LAYER")
	w.pair(2, r.layer)
	w.pair(70, "0")
	w.pair(62, fmt.Sprint(r.color))
	w.pair(6, "CONTINUOUS")
	w.pair(0, "ENDTAB")
	w.pair(0, "ENDSEC")
}

// polyline writes a closed outline. A repeated closing point is dropped
// because the closed flag already joins the last vertex to the first.
func (r dxfRenderer) polyline(w *dxfWriter, pts []geom.Point) {
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	w.pair(0, "POLYLINE")
	w.pair(8, r.layer)
	w.pair(66, "1")
	w.pair(70, "1")
	w.point(0, 0)
	for _, pt := range pts {
		w.pair(0, "VERTEX")
		w.pair(8, r.layer)
		w.point(pt.X, pt.Y)
	}
	w.pair(0, "SEQEND")
	w.pair(8, r.layer)
}

func (r dxfRenderer) line(w *dxfWriter, s geom.Segment) {
	w.pair(0, "LINE")
	w.pair(8, r.layer)
	w.point(s.P1.X, s.P1.Y)
	w.pair(11, num(s.P2.X))
	w.pair(21, num(s.P2.Y))
	w.pair(31, "0")
}

// dxfWriter emits group code/value pairs, one per line each.
type dxfWriter struct {
	buf bytes.Buffer
}

func (w *dxfWriter) pair(code int, value string) {
	fmt.Fprintf(&w.buf, "%3d\n%s\n", code, value)
}

func (w *dxfWriter) section(name string) {
	w.pair(0, "SECTION")
	w.pair(2, name)
}

// point writes a primary 3-D coordinate (codes 10/20/30) with z = 0.
func (w *dxfWriter) point(x, y float64) {
	w.pair(10, num(x))
	w.pair(20, num(y))
	w.pair(30, "0")
}
