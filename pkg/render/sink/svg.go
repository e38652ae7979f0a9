package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/hingecut/pkg/hinge"
)

const (
	DefaultStroke      = "#ff0000"
	DefaultStrokeWidth = 0.1
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	stroke      string
	strokeWidth float64
	background  string
}

// WithStroke sets the cut line colour. Most laser drivers map pure red to
// vector cutting.
func WithStroke(color string) SVGOption { return func(r *svgRenderer) { r.stroke = color } }

// WithStrokeWidth sets the cut line width in millimetres.
func WithStrokeWidth(w float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.strokeWidth = w
		}
	}
}

// WithBackground fills the canvas with color. Empty leaves it transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG renders the pattern at 1:1 scale in millimetres.
//
// The panel origin is the bottom-left corner: y grows upwards as in the
// pattern, and a group transform flips it into SVG's y-down space.
func RenderSVG(p *hinge.Pattern, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := num(p.Panel.Width), num(p.Panel.Height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%smm" height="%smm" viewBox="0 0 %s %s">`+"\n",
		w, h, w, h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="%s" height="%s" fill="%s"/>`+"\n", w, h, escapeAttr(r.background))
	}

	fmt.Fprintf(&buf, `  <g id="cut" transform="translate(0 %s) scale(1 -1)" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round">`+"\n",
		h, escapeAttr(r.stroke), num(r.strokeWidth))
	if len(p.Frame) > 0 {
		renderPolyline(&buf, p)
	}
	for _, s := range p.Segments {
		fmt.Fprintf(&buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(s.P1.X), num(s.P1.Y), num(s.P2.X), num(s.P2.Y))
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{stroke: DefaultStroke, strokeWidth: DefaultStrokeWidth}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderPolyline(buf *bytes.Buffer, p *hinge.Pattern) {
	pts := make([]string, len(p.Frame))
	for i, pt := range p.Frame {
		pts[i] = num(pt.X) + "," + num(pt.Y)
	}
	fmt.Fprintf(buf, `    <polyline id="frame" points="%s"/>`+"\n", strings.Join(pts, " "))
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
