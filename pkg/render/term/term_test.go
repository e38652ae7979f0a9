package term

import (
	"strings"
	"testing"

	"github.com/matzehuels/hingecut/pkg/hinge"
)

func generate(t *testing.T, panel hinge.Panel, params hinge.Params) *hinge.Pattern {
	t.Helper()
	p, err := hinge.Generate(panel, params, hinge.DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return p
}

func TestRasterize(t *testing.T) {
	p := generate(t, hinge.Panel{Width: 6, Height: 20},
		hinge.Params{CutLength: 8, Gap: 2, Separation: 2, IncludeFrame: true})

	lines := Rasterize(p, 12, 20)
	if len(lines) != 20 {
		t.Fatalf("got %d rows, want 20", len(lines))
	}
	for i, l := range lines {
		if len(l) != 12 {
			t.Fatalf("row %d has %d columns, want 12", i, len(l))
		}
	}

	tests := []struct {
		name     string
		row, col int
		want     byte
	}{
		{"bottom-left corner", 19, 0, Corner},
		{"top-right corner", 0, 11, Corner},
		{"left edge", 10, 0, VEdge},
		{"top edge", 0, 5, HEdge},
		{"first column cut", 13, 4, Cut},
		{"bridge between slots", 8, 4, Empty},
		{"odd column cut on bottom edge", 19, 8, Cut},
		{"material between columns", 10, 6, Empty},
	}
	for _, tt := range tests {
		if got := lines[tt.row][tt.col]; got != tt.want {
			t.Errorf("%s: cell (%d,%d) = %q, want %q\n%s", tt.name, tt.row, tt.col, got, tt.want, strings.Join(lines, "\n"))
		}
	}
}

func TestRasterizeKeepsAspect(t *testing.T) {
	// A 100x50 panel is twice as wide as tall; with cells twice as tall as
	// wide that is four times as many columns as rows.
	p := generate(t, hinge.Panel{Width: 100, Height: 50},
		hinge.Params{CutLength: 30, Gap: 3, Separation: 1.5, IncludeFrame: true})

	lines := Rasterize(p, 80, 80)
	if len(lines) != 20 {
		t.Errorf("got %d rows, want 20", len(lines))
	}
	if len(lines[0]) != 80 {
		t.Errorf("got %d columns, want 80", len(lines[0]))
	}
}

func TestRasterizeWithoutFrame(t *testing.T) {
	p := generate(t, hinge.Panel{Width: 6, Height: 20},
		hinge.Params{CutLength: 8, Gap: 2, Separation: 2})

	out := strings.Join(Rasterize(p, 12, 20), "")
	if strings.ContainsAny(out, "+-|") {
		t.Error("pattern without frame should draw no frame characters")
	}
	if !strings.ContainsRune(out, Cut) {
		t.Error("cuts should be drawn")
	}
}

func TestRasterizeTooSmall(t *testing.T) {
	p := generate(t, hinge.Panel{Width: 6, Height: 20},
		hinge.Params{CutLength: 8, Gap: 2, Separation: 2})
	if got := Rasterize(p, 1, 10); got != nil {
		t.Errorf("Rasterize(1 col) = %v, want nil", got)
	}
	if got := Rasterize(p, 10, 0); got != nil {
		t.Errorf("Rasterize(0 rows) = %v, want nil", got)
	}
}
