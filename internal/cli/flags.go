package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/hingecut/pkg/config"
	"github.com/matzehuels/hingecut/pkg/hinge"
)

// patternFlags are the pattern parameters shared by generate and preview.
// Resolution order is flag, then --config preset, then built-in default.
type patternFlags struct {
	presetPath string
	width      float64
	height     float64
	cutLength  float64
	gap        float64
	separation float64
	cutWidth   float64
	variant    string
	frame      bool
}

// register adds the parameter flags to cmd, seeded with the default preset.
func (f *patternFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fl := cmd.Flags()

	fl.StringVarP(&f.presetPath, "config", "c", "", "TOML preset to start from")
	fl.Float64Var(&f.width, "width", d.Panel.Width, "panel width (mm)")
	fl.Float64Var(&f.height, "height", d.Panel.Height, "panel height (mm)")
	fl.Float64VarP(&f.cutLength, "cut-length", "l", d.Pattern.CutLength, "slot length (mm)")
	fl.Float64VarP(&f.gap, "gap", "g", d.Pattern.Gap, "uncut bridge between slots in a column (mm)")
	fl.Float64VarP(&f.separation, "separation", "s", d.Pattern.Separation, "column pitch (mm)")
	fl.Float64VarP(&f.cutWidth, "cut-width", "w", d.Pattern.CutWidth, "chevron notch spread (mm)")
	fl.StringVar(&f.variant, "variant", d.Pattern.Variant, "slot shape: straight, chevron")
	fl.BoolVar(&f.frame, "frame", d.Pattern.Frame, "include the panel outline")
}

// resolve merges the preset file (if any) with the flags the user set.
func (f *patternFlags) resolve(cmd *cobra.Command) (config.Preset, error) {
	p := config.Default()
	if f.presetPath != "" {
		loaded, err := config.Load(f.presetPath)
		if err != nil {
			return config.Preset{}, err
		}
		p = loaded
	}

	fl := cmd.Flags()
	if fl.Changed("width") {
		p.Panel.Width = f.width
	}
	if fl.Changed("height") {
		p.Panel.Height = f.height
	}
	if fl.Changed("cut-length") {
		p.Pattern.CutLength = f.cutLength
	}
	if fl.Changed("gap") {
		p.Pattern.Gap = f.gap
	}
	if fl.Changed("separation") {
		p.Pattern.Separation = f.separation
	}
	if fl.Changed("cut-width") {
		p.Pattern.CutWidth = f.cutWidth
	}
	if fl.Changed("variant") {
		p.Pattern.Variant = f.variant
	}
	if fl.Changed("frame") {
		p.Pattern.Frame = f.frame
	}
	return p, nil
}

// inputs converts the resolved preset into generator inputs.
func (f *patternFlags) inputs(cmd *cobra.Command) (hinge.Panel, hinge.Params, hinge.Config, error) {
	p, err := f.resolve(cmd)
	if err != nil {
		return hinge.Panel{}, hinge.Params{}, hinge.Config{}, err
	}
	params, err := p.Params()
	if err != nil {
		return hinge.Panel{}, hinge.Params{}, hinge.Config{}, err
	}
	return p.HingePanel(), params, p.Config(), nil
}
