// Package geom provides the 2D value types shared by the pattern generator and
// its renderers: points, line segments and axis-aligned rectangles.
//
// All types are plain values with no identity. Coordinates are in whatever
// unit the caller works in (millimeters throughout hingecut).
package geom

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// AlmostEqual reports whether p and q coincide within eps on both axes.
func AlmostEqual(p, q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Segment is an ordered pair of points.
type Segment struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// Seg builds a segment from raw coordinates.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{P1: Point{x1, y1}, P2: Point{x2, y2}}
}

// Length returns the distance between the endpoints.
func (s Segment) Length() float64 { return Dist(s.P1, s.P2) }

// Degenerate reports whether the segment is shorter than eps.
func (s Segment) Degenerate(eps float64) bool { return s.Length() < eps }

// Reverse swaps the endpoints.
func (s Segment) Reverse() Segment { return Segment{P1: s.P2, P2: s.P1} }

// MinY and MaxY return the vertical extent of the segment.
func (s Segment) MinY() float64 { return math.Min(s.P1.Y, s.P2.Y) }
func (s Segment) MaxY() float64 { return math.Max(s.P1.Y, s.P2.Y) }

func (s Segment) String() string {
	return fmt.Sprintf("%v-%v", s.P1, s.P2)
}

// Rect is an axis-aligned rectangle spanning Min to Max.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectWH returns the rectangle [0,w] x [0,h].
func RectWH(w, h float64) Rect { return Rect{Max: Point{w, h}} }

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r, allowing eps of slack on every edge.
func (r Rect) Contains(p Point, eps float64) bool {
	return p.X >= r.Min.X-eps && p.X <= r.Max.X+eps &&
		p.Y >= r.Min.Y-eps && p.Y <= r.Max.Y+eps
}

// ContainsSegment reports whether both endpoints of s lie inside r.
func (r Rect) ContainsSegment(s Segment, eps float64) bool {
	return r.Contains(s.P1, eps) && r.Contains(s.P2, eps)
}

// Polyline returns the closed outline of r starting and ending at Min,
// running counter-clockwise.
func (r Rect) Polyline() []Point {
	return []Point{
		r.Min,
		{r.Max.X, r.Min.Y},
		r.Max,
		{r.Min.X, r.Max.Y},
		r.Min,
	}
}

// Edges returns the segments between consecutive points of a polyline.
func Edges(pts []Point) []Segment {
	if len(pts) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		out = append(out, Segment{P1: pts[i-1], P2: pts[i]})
	}
	return out
}
