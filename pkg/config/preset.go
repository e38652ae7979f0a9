// Package config loads and writes hinge presets.
//
// A preset is a TOML file holding a complete pattern request:
//
//	[panel]
//	width = 100.0
//	height = 50.0
//
//	[pattern]
//	variant = "straight"
//	cut_length = 30.0
//	gap = 3.0
//	separation = 1.5
//	cut_width = 0.0
//	frame = true
//
//	[limits]
//	epsilon = 0.0001
//	safe_margin = 0.5
//	min_pitch = 0.5
//	max_segments = 250000
//
// Keys missing from a file keep their [Default] values. Unknown keys are
// rejected so that a typo never silently falls back to a default.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hingecut/pkg/errors"
	"github.com/matzehuels/hingecut/pkg/hinge"
)

// Preset is the on-disk form of a pattern request.
type Preset struct {
	Panel   PanelSection   `toml:"panel"`
	Pattern PatternSection `toml:"pattern"`
	Limits  LimitsSection  `toml:"limits"`
}

// PanelSection holds the sheet size in millimetres.
type PanelSection struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// PatternSection holds the slot field parameters.
type PatternSection struct {
	Variant    string  `toml:"variant"`
	CutLength  float64 `toml:"cut_length"`
	Gap        float64 `toml:"gap"`
	Separation float64 `toml:"separation"`
	CutWidth   float64 `toml:"cut_width"`
	Frame      bool    `toml:"frame"`
}

// LimitsSection overrides the generator tolerances. Zero keeps the default.
type LimitsSection struct {
	Epsilon     float64 `toml:"epsilon"`
	SafeMargin  float64 `toml:"safe_margin"`
	MinPitch    float64 `toml:"min_pitch"`
	MaxSegments int     `toml:"max_segments,omitempty"`
}

// Default returns the stock 100 x 50 mm straight hinge.
func Default() Preset {
	cfg := hinge.DefaultConfig()
	return Preset{
		Panel: PanelSection{Width: 100, Height: 50},
		Pattern: PatternSection{
			Variant:    hinge.Straight.String(),
			CutLength:  30,
			Gap:        3,
			Separation: 1.5,
			Frame:      true,
		},
		Limits: LimitsSection{
			Epsilon:     cfg.Epsilon,
			SafeMargin:  cfg.SafeMargin,
			MinPitch:    cfg.MinPitch,
			MaxSegments: cfg.MaxSegments,
		},
	}
}

// Load reads a preset file.
func Load(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, err
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode parses a preset on top of [Default].
func Decode(r io.Reader) (Preset, error) {
	p := Default()
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return Preset{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse preset")
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Preset{}, errors.New(errors.ErrCodeInvalidPreset, "unknown keys: %s", strings.Join(keys, ", "))
	}

	if _, err := hinge.ParseVariant(p.Pattern.Variant); err != nil {
		return Preset{}, errors.Wrap(errors.ErrCodeInvalidVariant, err, "pattern.variant")
	}
	return p, nil
}

// Write encodes p as TOML.
func Write(w io.Writer, p Preset) error {
	var buf bytes.Buffer
	buf.WriteString("# hingecut preset; lengths in millimetres\n\n")
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(p); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// HingePanel returns the panel described by the preset.
func (p Preset) HingePanel() hinge.Panel {
	return hinge.Panel{Width: p.Panel.Width, Height: p.Panel.Height}
}

// Params returns the pattern parameters. It fails only on an unknown variant.
func (p Preset) Params() (hinge.Params, error) {
	v, err := hinge.ParseVariant(p.Pattern.Variant)
	if err != nil {
		return hinge.Params{}, errors.Wrap(errors.ErrCodeInvalidVariant, err, "pattern.variant")
	}
	return hinge.Params{
		CutLength:    p.Pattern.CutLength,
		Gap:          p.Pattern.Gap,
		Separation:   p.Pattern.Separation,
		CutWidth:     p.Pattern.CutWidth,
		Variant:      v,
		IncludeFrame: p.Pattern.Frame,
	}, nil
}

// Config returns the generator tolerances.
func (p Preset) Config() hinge.Config {
	return hinge.Config{
		Epsilon:     p.Limits.Epsilon,
		SafeMargin:  p.Limits.SafeMargin,
		MinPitch:    p.Limits.MinPitch,
		MaxSegments: p.Limits.MaxSegments,
	}
}

// FromParams builds a preset from core values, the inverse of
// HingePanel/Params/Config.
func FromParams(panel hinge.Panel, params hinge.Params, cfg hinge.Config) Preset {
	return Preset{
		Panel: PanelSection{Width: panel.Width, Height: panel.Height},
		Pattern: PatternSection{
			Variant:    params.Variant.String(),
			CutLength:  params.CutLength,
			Gap:        params.Gap,
			Separation: params.Separation,
			CutWidth:   params.CutWidth,
			Frame:      params.IncludeFrame,
		},
		Limits: LimitsSection{
			Epsilon:     cfg.Epsilon,
			SafeMargin:  cfg.SafeMargin,
			MinPitch:    cfg.MinPitch,
			MaxSegments: cfg.MaxSegments,
		},
	}
}
