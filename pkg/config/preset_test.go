package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/hingecut/pkg/errors"
	"github.com/matzehuels/hingecut/pkg/hinge"
)

func TestDefault(t *testing.T) {
	p := Default()

	if got := p.HingePanel(); got != (hinge.Panel{Width: 100, Height: 50}) {
		t.Errorf("HingePanel() = %+v", got)
	}
	params, err := p.Params()
	if err != nil {
		t.Fatalf("Params() error: %v", err)
	}
	want := hinge.Params{CutLength: 30, Gap: 3, Separation: 1.5, Variant: hinge.Straight, IncludeFrame: true}
	if params != want {
		t.Errorf("Params() = %+v, want %+v", params, want)
	}
	if p.Config() != hinge.DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults", p.Config())
	}
}

func TestDecode(t *testing.T) {
	src := `
[panel]
width = 200
height = 80

[pattern]
variant = "chevron"
cut_length = 20.0
cut_width = 1.8
separation = 3
`
	p, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if p.Panel.Width != 200 || p.Panel.Height != 80 {
		t.Errorf("Panel = %+v", p.Panel)
	}
	params, err := p.Params()
	if err != nil {
		t.Fatal(err)
	}
	if params.Variant != hinge.Chevron || params.CutWidth != 1.8 || params.Separation != 3 {
		t.Errorf("Params() = %+v", params)
	}
	// Missing keys keep their defaults.
	if params.Gap != 3 || !params.IncludeFrame {
		t.Errorf("defaults not kept: %+v", params)
	}
	if p.Limits.SafeMargin != hinge.DefaultSafeMargin {
		t.Errorf("SafeMargin = %v", p.Limits.SafeMargin)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
		msg  string
	}{
		{"syntax", "[panel\nwidth = 1", errors.ErrCodeInvalidPreset, "parse preset"},
		{"unknown key", "[pattern]\ncut_lenght = 3\n", errors.ErrCodeInvalidPreset, "pattern.cut_lenght"},
		{"unknown section", "[laser]\npower = 3\n", errors.ErrCodeInvalidPreset, "laser.power"},
		{"wrong type", "[panel]\nwidth = \"wide\"\n", errors.ErrCodeInvalidPreset, "parse preset"},
		{"bad variant", "[pattern]\nvariant = \"zigzag\"\n", errors.ErrCodeInvalidVariant, "zigzag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.code)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q should mention %q", err, tt.msg)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	orig := FromParams(
		hinge.Panel{Width: 120, Height: 60},
		hinge.Params{CutLength: 25, Gap: 2.5, Separation: 4, CutWidth: 3, Variant: hinge.Chevron},
		hinge.Config{Epsilon: 1e-3, SafeMargin: 0.8, MinPitch: 1, MaxSegments: 5000},
	)

	var buf bytes.Buffer
	if err := Write(&buf, orig); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# hingecut preset") {
		t.Error("preset should start with a header comment")
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got != orig {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hinge.toml")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Write(f, Default()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p != Default() {
		t.Errorf("Load() = %+v, want defaults", p)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !os.IsNotExist(err) {
		t.Errorf("Load(missing) error = %v, want not-exist", err)
	}
}

func TestLoadedPresetGenerates(t *testing.T) {
	p := Default()
	params, err := p.Params()
	if err != nil {
		t.Fatal(err)
	}
	pattern, err := hinge.Generate(p.HingePanel(), params, p.Config())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if pattern.Stats.Segments != 130 {
		t.Errorf("default preset yields %d segments, want 130", pattern.Stats.Segments)
	}
}
