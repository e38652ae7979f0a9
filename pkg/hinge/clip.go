package hinge

import "github.com/matzehuels/hingecut/pkg/geom"

// Clip truncates s to the horizontal band 0 <= y <= height.
//
// It returns false when the segment lies entirely above or below the band, or
// when the clipped result is shorter than eps. Endpoints already inside the
// band are returned untouched, so clipping an in-range segment is a no-op.
// Only the vertical extent is clipped; columns are kept inside the panel
// horizontally by the layout.
func Clip(s geom.Segment, height, eps float64) (geom.Segment, bool) {
	y1, y2 := s.P1.Y, s.P2.Y
	if (y1 < 0 && y2 < 0) || (y1 > height && y2 > height) {
		return geom.Segment{}, false
	}

	if y1 != y2 {
		s.P1 = clipEndpoint(s.P1, s.P2, height)
		s.P2 = clipEndpoint(s.P2, s.P1, height)
	}

	if s.Degenerate(eps) {
		return geom.Segment{}, false
	}
	return s, true
}

// clipEndpoint moves p onto the nearest band edge along the line through p
// and q. q is assumed to differ from p in y.
func clipEndpoint(p, q geom.Point, height float64) geom.Point {
	switch {
	case p.Y < 0:
		return geom.Pt(interpolateX(p, q, 0), 0)
	case p.Y > height:
		return geom.Pt(interpolateX(p, q, height), height)
	}
	return p
}

// interpolateX returns x on the line through p and q at y = yb.
func interpolateX(p, q geom.Point, yb float64) float64 {
	return p.X + (q.X-p.X)*(yb-p.Y)/(q.Y-p.Y)
}
