package geom

import (
	"math"
	"testing"
)

func TestSegmentLength(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want float64
	}{
		{"vertical", Seg(1, 0, 1, 10), 10},
		{"horizontal", Seg(0, 2, 5, 2), 5},
		{"diagonal 3-4-5", Seg(0, 0, 3, 4), 5},
		{"zero", Seg(2, 2, 2, 2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.Length(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentDegenerate(t *testing.T) {
	if !Seg(0, 0, 0, 5e-5).Degenerate(1e-4) {
		t.Error("segment shorter than eps should be degenerate")
	}
	if Seg(0, 0, 0, 2e-4).Degenerate(1e-4) {
		t.Error("segment longer than eps should not be degenerate")
	}
}

func TestSegmentExtent(t *testing.T) {
	s := Seg(0, 7, 1, -3)
	if s.MinY() != -3 || s.MaxY() != 7 {
		t.Errorf("MinY/MaxY = %v/%v, want -3/7", s.MinY(), s.MaxY())
	}
	if r := s.Reverse(); r.P1 != s.P2 || r.P2 != s.P1 {
		t.Errorf("Reverse() = %v", r)
	}
}

func TestRectContains(t *testing.T) {
	r := RectWH(100, 50)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"origin", Pt(0, 0), true},
		{"far corner", Pt(100, 50), true},
		{"inside", Pt(40, 20), true},
		{"below", Pt(10, -0.1), false},
		{"right", Pt(100.1, 10), false},
		{"within slack", Pt(100+1e-9, 50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p, 1e-6); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectPolyline(t *testing.T) {
	r := RectWH(10, 4)
	pts := r.Polyline()
	if len(pts) != 5 {
		t.Fatalf("Polyline() returned %d points, want 5", len(pts))
	}
	if pts[0] != pts[4] {
		t.Error("polyline should be closed")
	}

	edges := Edges(pts)
	if len(edges) != 4 {
		t.Fatalf("Edges() returned %d segments, want 4", len(edges))
	}
	var perimeter float64
	for _, e := range edges {
		perimeter += e.Length()
	}
	if perimeter != 28 {
		t.Errorf("perimeter = %v, want 28", perimeter)
	}
}

func TestEdgesShortInput(t *testing.T) {
	if Edges(nil) != nil {
		t.Error("Edges(nil) should be nil")
	}
	if Edges([]Point{{1, 1}}) != nil {
		t.Error("Edges of a single point should be nil")
	}
}

func TestAlmostEqual(t *testing.T) {
	if !AlmostEqual(Pt(1, 1), Pt(1+1e-7, 1-1e-7), 1e-6) {
		t.Error("points within eps should be equal")
	}
	if AlmostEqual(Pt(1, 1), Pt(1.01, 1), 1e-6) {
		t.Error("points beyond eps should differ")
	}
}
