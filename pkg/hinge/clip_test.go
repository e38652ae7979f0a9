package hinge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/hingecut/pkg/geom"
)

func TestClip(t *testing.T) {
	const h = 50.0

	tests := []struct {
		name   string
		in     geom.Segment
		want   geom.Segment
		wantOK bool
	}{
		{"inside unchanged", geom.Seg(3, 10, 3, 40), geom.Seg(3, 10, 3, 40), true},
		{"touching both edges", geom.Seg(3, 0, 3, 50), geom.Seg(3, 0, 3, 50), true},
		{"bottom truncated", geom.Seg(7, -5, 7, 10), geom.Seg(7, 0, 7, 10), true},
		{"top truncated", geom.Seg(7, 40, 7, 66), geom.Seg(7, 40, 7, 50), true},
		{"both ends truncated", geom.Seg(1, -10, 1, 60), geom.Seg(1, 0, 1, 50), true},
		{"reversed direction", geom.Seg(2, 60, 2, 45), geom.Seg(2, 50, 2, 45), true},
		{"slanted bottom", geom.Seg(0, -5, 15, 10), geom.Seg(5, 0, 15, 10), true},
		{"slanted top", geom.Seg(10, 40, 0, 60), geom.Seg(10, 40, 5, 50), true},
		{"entirely below", geom.Seg(1, -10, 1, -1), geom.Segment{}, false},
		{"entirely above", geom.Seg(1, 51, 1, 80), geom.Segment{}, false},
		{"horizontal inside", geom.Seg(0, 20, 10, 20), geom.Seg(0, 20, 10, 20), true},
		{"horizontal below", geom.Seg(0, -1, 10, -1), geom.Segment{}, false},
		{"ends on bottom edge", geom.Seg(4, -8, 4, 0), geom.Segment{}, false},
		{"sliver after clipping", geom.Seg(4, 49.99995, 4, 70), geom.Segment{}, false},
		{"zero length", geom.Seg(4, 4, 4, 4), geom.Segment{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clip(tt.in, h, DefaultEpsilon)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assertSegment(t, tt.want, got)
			}
		})
	}
}

func TestClip_ExactBottomEdge(t *testing.T) {
	// A slot from -5 to 10 starts exactly on y = 0 after clipping.
	got, ok := Clip(geom.Seg(12.5, -5, 12.5, 10), 50, DefaultEpsilon)
	assert.True(t, ok)
	assert.Equal(t, 0.0, got.P1.Y)
	assert.Equal(t, 12.5, got.P1.X)
	assert.Equal(t, geom.Pt(12.5, 10), got.P2)
}

func TestClip_Idempotent(t *testing.T) {
	segs := []geom.Segment{
		geom.Seg(0, -5, 15, 10),
		geom.Seg(3, 45, 4, 62),
		geom.Seg(9, -30, 9, 80),
		geom.Seg(1, 1, 2, 2),
	}
	for _, s := range segs {
		once, ok := Clip(s, 50, DefaultEpsilon)
		if !assert.True(t, ok) {
			continue
		}
		twice, ok := Clip(once, 50, DefaultEpsilon)
		assert.True(t, ok)
		assert.Equal(t, once, twice, "clipping %v twice", s)
	}
}
