package hinge

import (
	"fmt"
	"strings"

	"github.com/matzehuels/hingecut/pkg/geom"
)

// Variant selects the slot shape.
type Variant int

const (
	// Straight slots are single vertical cuts.
	Straight Variant = iota
	// Chevron slots are two opposing V notches sharing an apex.
	Chevron
)

var variantNames = map[Variant]string{
	Straight: "straight",
	Chevron:  "chevron",
}

// String returns the lowercase variant name.
func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	_, ok := variantNames[v]
	return ok
}

// ParseVariant parses a variant name. Matching is case-insensitive and an
// empty string means [Straight].
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "straight":
		return Straight, nil
	case "chevron", "v":
		return Chevron, nil
	}
	return Straight, fmt.Errorf("unknown pattern variant: %q (must be straight or chevron)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("unknown pattern variant: %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Panel is the rectangular sheet being cut, spanning [0,Width] x [0,Height].
type Panel struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds returns the panel rectangle.
func (p Panel) Bounds() geom.Rect { return geom.RectWH(p.Width, p.Height) }

// Params describes the slot field.
type Params struct {
	CutLength    float64 `json:"cut_length"`          // slot length along the column
	Gap          float64 `json:"gap"`                 // bridge between slots of one column
	Separation   float64 `json:"separation"`          // column pitch
	CutWidth     float64 `json:"cut_width,omitempty"` // lateral spread of a chevron slot
	Variant      Variant `json:"variant"`
	IncludeFrame bool    `json:"include_frame,omitempty"`
}

// Period is the distance between the starts of consecutive slots in a column.
func (p Params) Period() float64 { return p.CutLength + p.Gap }

// PhaseShift returns the vertical offset of column i: zero for even columns
// and minus half a period for odd ones.
func (p Params) PhaseShift(i int) float64 {
	if i%2 == 0 {
		return 0
	}
	return -p.Period() / 2
}

// SegmentsPerSlot is the number of raw cuts a single slot produces.
func (p Params) SegmentsPerSlot() int {
	if p.Variant == Chevron {
		return 4
	}
	return 1
}

// Config holds the tolerances and limits applied during generation.
// A zero field falls back to its default.
type Config struct {
	// Epsilon is the minimum length of an emitted segment.
	Epsilon float64 `json:"epsilon,omitempty"`
	// SafeMargin is the material left between a chevron's spread and the
	// neighbouring column.
	SafeMargin float64 `json:"safe_margin,omitempty"`
	// MinPitch is the smallest accepted column separation.
	MinPitch float64 `json:"min_pitch,omitempty"`
	// MaxSegments caps the estimated size of a pattern.
	MaxSegments int `json:"max_segments,omitempty"`
}

const (
	DefaultEpsilon     = 1e-4
	DefaultSafeMargin  = 0.5
	DefaultMinPitch    = 0.5
	DefaultMaxSegments = 250000
)

// DefaultConfig returns the default tolerances.
func DefaultConfig() Config {
	return Config{
		Epsilon:     DefaultEpsilon,
		SafeMargin:  DefaultSafeMargin,
		MinPitch:    DefaultMinPitch,
		MaxSegments: DefaultMaxSegments,
	}
}

// WithDefaults returns c with every zero field replaced by its default.
func (c Config) WithDefaults() Config {
	if c.Epsilon <= 0 {
		c.Epsilon = DefaultEpsilon
	}
	if c.SafeMargin <= 0 {
		c.SafeMargin = DefaultSafeMargin
	}
	if c.MinPitch <= 0 {
		c.MinPitch = DefaultMinPitch
	}
	if c.MaxSegments <= 0 {
		c.MaxSegments = DefaultMaxSegments
	}
	return c
}

// MaxCutWidth returns the widest chevron spread accepted for the given pitch.
func (c Config) MaxCutWidth(separation float64) float64 {
	return separation - c.WithDefaults().SafeMargin
}
