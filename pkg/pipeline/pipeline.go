// Package pipeline runs the generate → render pipeline shared by the CLI and
// the HTTP service.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: validate the parameters and compute the clipped pattern
//  2. Render: write the pattern in each requested format (SVG, DXF, JSON, PNG, PDF)
//
// Generation is cheap and always runs. Rendered artifacts are cached under a
// key derived from the pattern inputs, because PNG and PDF output shell out
// to rsvg-convert.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Panel:   hinge.Panel{Width: 100, Height: 50},
//	    Params:  hinge.Params{CutLength: 30, Gap: 3, Separation: 1.5},
//	    Formats: []string{"dxf", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dxf := result.Artifacts["dxf"]
package pipeline

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hingecut/pkg/cache"
	"github.com/matzehuels/hingecut/pkg/errors"
	"github.com/matzehuels/hingecut/pkg/hinge"
	"github.com/matzehuels/hingecut/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDXF  = "dxf"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// DefaultFormat is what laser and CNC software import most readily.
const DefaultFormat = FormatDXF

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDXF:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatDXF:  "application/dxf",
	FormatJSON: "application/json",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// NeedsConverter reports whether format is produced through rsvg-convert.
func NeedsConverter(format string) bool {
	return format == FormatPNG || format == FormatPDF
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Generate options
	Panel  hinge.Panel  `json:"panel"`
	Params hinge.Params `json:"params"`
	Config hinge.Config `json:"config"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"`
	Background  string   `json:"background,omitempty"`
	Layer       string   `json:"layer,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has succeeded.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Pattern is the generated pattern.
	Pattern *hinge.Pattern

	// PatternHash identifies the pattern inputs; it is the cache key prefix
	// of every artifact.
	PatternHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Segments     int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, dxf, json, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated list such as "svg, DXF" into
// lowercase format names, dropping empties and duplicates.
func ParseFormats(s string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults validates the pattern parameters and formats and
// fills render defaults. On success Params holds the normalized parameters.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Config = o.Config.WithDefaults()

	params, err := hinge.Validate(o.Panel, o.Params, o.Config)
	if err != nil {
		return err
	}
	o.Params = params

	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Stroke == "" {
		o.Stroke = sink.DefaultStroke
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = sink.DefaultStrokeWidth
	}
	if o.Layer == "" {
		o.Layer = sink.DefaultLayer
	}
	if o.Scale <= 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PatternKeyOpts returns cache key options identifying the pattern.
func (o *Options) PatternKeyOpts() cache.PatternKeyOpts {
	return cache.PatternKeyOpts{
		Width:        o.Panel.Width,
		Height:       o.Panel.Height,
		CutLength:    o.Params.CutLength,
		Gap:          o.Params.Gap,
		Separation:   o.Params.Separation,
		CutWidth:     o.Params.CutWidth,
		Variant:      o.Params.Variant.String(),
		IncludeFrame: o.Params.IncludeFrame,
		Epsilon:      o.Config.Epsilon,
		SafeMargin:   o.Config.SafeMargin,
		MinPitch:     o.Config.MinPitch,
	}
}

// ArtifactKeyOpts returns cache key options for one format. Options that do
// not affect the format are left out so they don't split the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDXF:
		k.Layer = o.Layer
	case FormatSVG, FormatPDF:
		k.Stroke, k.StrokeWidth, k.Background = o.Stroke, o.StrokeWidth, o.Background
	case FormatPNG:
		k.Stroke, k.StrokeWidth, k.Background = o.Stroke, o.StrokeWidth, o.Background
		k.Scale = o.Scale
	}
	return k
}

// sortedFormats returns the formats in a stable order for logging.
func sortedFormats(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for f := range m {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
