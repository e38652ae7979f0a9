package hinge

import (
	"math"

	"github.com/matzehuels/hingecut/pkg/errors"
)

// Validate checks the panel and parameters against cfg and returns the
// normalized parameters.
//
// Validation never clamps: any value outside the safe range is reported as an
// *errors.ValidationError naming the field, the value and the violated limit.
// Checks run in a fixed order (dimensions, variant, pitch, slot width, size)
// and the first failure is returned.
func Validate(panel Panel, params Params, cfg Config) (Params, error) {
	cfg = cfg.WithDefaults()
	nan := math.NaN()

	positive := []struct {
		field string
		value float64
	}{
		{"width", panel.Width},
		{"height", panel.Height},
		{"cut_length", params.CutLength},
	}
	for _, f := range positive {
		if !finite(f.value) {
			return Params{}, errors.Invalid(errors.ErrCodeInvalidDimension, f.field, f.value, nan, "must be a finite number")
		}
		if f.value <= 0 {
			return Params{}, errors.Invalid(errors.ErrCodeInvalidDimension, f.field, f.value, 0, "must be greater than zero")
		}
	}

	nonNegative := []struct {
		field string
		value float64
	}{
		{"gap", params.Gap},
		{"cut_width", params.CutWidth},
	}
	for _, f := range nonNegative {
		if !finite(f.value) {
			return Params{}, errors.Invalid(errors.ErrCodeInvalidDimension, f.field, f.value, nan, "must be a finite number")
		}
		if f.value < 0 {
			return Params{}, errors.Invalid(errors.ErrCodeInvalidDimension, f.field, f.value, 0, "must not be negative")
		}
	}

	if !params.Variant.Valid() {
		return Params{}, errors.Invalid(errors.ErrCodeInvalidVariant, "variant", float64(params.Variant), nan, "unknown pattern variant")
	}

	if !finite(params.Separation) || params.Separation < cfg.MinPitch {
		return Params{}, errors.Invalid(errors.ErrCodePitchTooSmall, "separation", params.Separation, cfg.MinPitch, "column pitch below minimum")
	}

	switch params.Variant {
	case Chevron:
		if params.CutWidth >= params.Separation {
			return Params{}, errors.Invalid(errors.ErrCodeSlotWidthExceedsPitch, "cut_width", params.CutWidth, params.Separation,
				"slot spread reaches the neighbouring column")
		}
		if maxWidth := cfg.MaxCutWidth(params.Separation); params.CutWidth > maxWidth {
			return Params{}, errors.Invalid(errors.ErrCodeSlotWidthExceedsPitch, "cut_width", params.CutWidth, maxWidth,
				"slot spread leaves less than the safe margin to the neighbouring column")
		}
	case Straight:
		params.CutWidth = 0
	}

	if n := estimateSegments(panel, params); n > float64(cfg.MaxSegments) {
		return Params{}, errors.Invalid(errors.ErrCodePatternTooLarge, "segments", n, float64(cfg.MaxSegments),
			"pattern would exceed the segment limit")
	}

	return params, nil
}

// estimateSegments is an upper bound on the raw segment count, computed in
// floating point so that tiny pitches cannot overflow.
func estimateSegments(panel Panel, params Params) float64 {
	cols := math.Floor(panel.Width/params.Separation) + 1
	rows := math.Ceil((panel.Height+params.Period()/2)/params.Period()) + 1
	return cols * rows * float64(params.SegmentsPerSlot())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
