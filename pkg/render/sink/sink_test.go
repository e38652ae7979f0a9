package sink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/hingecut/pkg/hinge"
	"github.com/matzehuels/hingecut/pkg/render"
)

// testPattern has a frame and five straight cuts in two columns.
func testPattern(t *testing.T) *hinge.Pattern {
	t.Helper()
	p, err := hinge.Generate(
		hinge.Panel{Width: 6, Height: 20},
		hinge.Params{CutLength: 8, Gap: 2, Separation: 2, IncludeFrame: true},
		hinge.DefaultConfig(),
	)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(p.Segments) != 5 {
		t.Fatalf("test pattern has %d segments, want 5", len(p.Segments))
	}
	return p
}

func TestRenderSVG(t *testing.T) {
	p := testPattern(t)
	out := string(RenderSVG(p))

	for _, want := range []string{
		`width="6mm" height="20mm" viewBox="0 0 6 20"`,
		`transform="translate(0 20) scale(1 -1)"`,
		`stroke="#ff0000" stroke-width="0.1"`,
		`<polyline id="frame" points="0,0 6,0 6,20 0,20 0,0"/>`,
		`<line x1="2" y1="2" x2="2" y2="10"/>`,
		`<line x1="4" y1="0" x2="4" y2="5"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if n := strings.Count(out, "<line "); n != 5 {
		t.Errorf("SVG has %d lines, want 5", n)
	}
	if strings.Contains(out, "<rect") {
		t.Error("SVG should have no background by default")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("SVG should be closed")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	p := testPattern(t)
	p.Frame = nil
	out := string(RenderSVG(p,
		WithStroke("black"),
		WithStrokeWidth(0.25),
		WithBackground(`a"b`),
	))

	if !strings.Contains(out, `stroke="black" stroke-width="0.25"`) {
		t.Error("stroke options not applied")
	}
	if !strings.Contains(out, `fill="a&quot;b"`) {
		t.Error("background should be escaped")
	}
	if strings.Contains(out, "<polyline") {
		t.Error("pattern without frame should have no polyline")
	}

	out = string(RenderSVG(p, WithStrokeWidth(-1)))
	if !strings.Contains(out, `stroke-width="0.1"`) {
		t.Error("non-positive stroke width should keep the default")
	}
}

func TestRenderDXF(t *testing.T) {
	p := testPattern(t)
	out := string(RenderDXF(p))

	if !strings.HasPrefix(out, "  0\nSECTION\n  2\nHEADER\n") {
		t.Errorf("DXF should start with the header section:\n%.60s", out)
	}
	if !strings.HasSuffix(out, "  0\nEOF\n") {
		t.Error("DXF should end with EOF")
	}
	for _, want := range []string{
		"  9\n$ACADVER\n  1\nAC1009\n",
		"  9\n$INSUNITS\n 70\n4\n",
		"  0\nLAYER\n  2\nHINGE\n",
		"  0\nPOLYLINE\n  8\nHINGE\n 66\n1\n 70\n1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DXF missing %q", want)
		}
	}
	if n := strings.Count(out, "  0\nLINE\n"); n != 5 {
		t.Errorf("DXF has %d LINE entities, want 5", n)
	}
	if n := strings.Count(out, "  0\nVERTEX\n"); n != 4 {
		t.Errorf("DXF frame has %d vertices, want 4", n)
	}
}

func TestRenderDXFLines(t *testing.T) {
	p := testPattern(t)
	lines := parseDXFLines(t, RenderDXF(p, WithLayer("cut")))

	if len(lines) != len(p.Segments) {
		t.Fatalf("parsed %d lines, want %d", len(lines), len(p.Segments))
	}
	for i, s := range p.Segments {
		got := lines[i]
		if got.layer != "CUT" {
			t.Errorf("line %d on layer %q, want CUT", i, got.layer)
		}
		want := [4]float64{s.P1.X, s.P1.Y, s.P2.X, s.P2.Y}
		if got.coords != want {
			t.Errorf("line %d = %v, want %v", i, got.coords, want)
		}
	}
}

func TestDXFOptions(t *testing.T) {
	r := dxfRenderer{layer: DefaultLayer, color: DefaultColor}
	WithLayer("  ")(&r)
	WithColor(0)(&r)
	if r.layer != DefaultLayer || r.color != DefaultColor {
		t.Errorf("invalid options should be ignored, got %+v", r)
	}
	WithColor(5)(&r)
	if r.color != 5 {
		t.Errorf("WithColor(5) = %d", r.color)
	}
}

func TestRenderJSON(t *testing.T) {
	p := testPattern(t)
	data, err := RenderJSON(p)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Units != "mm" {
		t.Errorf("Units = %q, want mm", out.Units)
	}
	if out.Panel != p.Panel {
		t.Errorf("Panel = %+v, want %+v", out.Panel, p.Panel)
	}
	if out.Params.Variant != hinge.Straight {
		t.Errorf("Variant = %v", out.Params.Variant)
	}
	if len(out.Frame) != 5 {
		t.Errorf("Frame has %d points, want 5", len(out.Frame))
	}
	if len(out.Segments) != 5 {
		t.Fatalf("Segments count = %d, want 5", len(out.Segments))
	}
	if out.Segments[0] != (jsonSegment{2, 2, 2, 10}) {
		t.Errorf("Segments[0] = %v", out.Segments[0])
	}
	if out.Stats.Columns != 2 {
		t.Errorf("Stats.Columns = %d, want 2", out.Stats.Columns)
	}
	if !bytes.Contains(data, []byte(`"variant": "straight"`)) {
		t.Error("variant should be encoded by name")
	}
}

func TestRasterFormats(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	p := testPattern(t)

	png, err := RenderPNG(p, WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("RenderPNG output is not a PNG")
	}

	pdf, err := RenderPDF(p)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("RenderPDF output is not a PDF")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0000001, "0"},
		{1.5, "1.5"},
		{2.9999999999, "3"},
		{-12.25, "-12.25"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type dxfLine struct {
	layer  string
	coords [4]float64
}

// parseDXFLines reads the LINE entities back from a DXF document.
func parseDXFLines(t *testing.T, data []byte) []dxfLine {
	t.Helper()
	sc := bufio.NewScanner(bytes.NewReader(data))

	var pairs [][2]string
	for sc.Scan() {
		code := strings.TrimSpace(sc.Text())
		if !sc.Scan() {
			t.Fatalf("dangling group code %q", code)
		}
		pairs = append(pairs, [2]string{code, sc.Text()})
	}

	var lines []dxfLine
	var cur *dxfLine
	for _, p := range pairs {
		if p[0] == "0" {
			if cur != nil {
				lines = append(lines, *cur)
				cur = nil
			}
			if p[1] == "LINE" {
				cur = &dxfLine{}
			}
			continue
		}
		if cur == nil {
			continue
		}
		idx := map[string]int{"10": 0, "20": 1, "11": 2, "21": 3}
		if p[0] == "8" {
			cur.layer = p[1]
		} else if i, ok := idx[p[0]]; ok {
			v, err := strconv.ParseFloat(p[1], 64)
			if err != nil {
				t.Fatalf("bad coordinate %q", p[1])
			}
			cur.coords[i] = v
		}
	}
	return lines
}
