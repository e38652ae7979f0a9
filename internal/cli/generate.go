package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hingecut/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	pattern     patternFlags
	formats     string
	output      string
	noCache     bool
	refresh     bool
	layer       string
	stroke      string
	strokeWidth float64
	scale       float64
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a living-hinge cutting pattern",
		Long: `Generate a living-hinge cutting pattern.

Parameters come from flags, then from the --config preset, then from the
built-in 100 x 50 mm default. All lengths are in millimetres.

Output defaults to living_hinge.dxf in the current directory. With several
formats, --output is used as a base path and each format gets its own
extension. PNG and PDF need rsvg-convert on PATH.`,
		Example: `  hingecut generate
  hingecut generate --width 200 --height 80 -l 40 -g 4 -s 2 -f svg,dxf
  hingecut generate --variant chevron -w 1.2 -o lid.svg
  hingecut generate -c plywood.toml -f png --scale 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), cmd, &opts)
		},
	}

	opts.pattern.register(cmd)

	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.DefaultFormat, "output format(s): dxf, svg, json, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render and overwrite cached artifacts")
	cmd.Flags().StringVar(&opts.layer, "layer", "", "DXF layer name (default HINGE)")
	cmd.Flags().StringVar(&opts.stroke, "stroke", "", "SVG stroke colour (default #ff0000)")
	cmd.Flags().Float64Var(&opts.strokeWidth, "stroke-width", 0, "SVG stroke width in mm (default 0.1)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG pixels per millimetre (default 4)")

	return cmd
}

// runGenerate resolves the parameters, runs the pipeline and writes the
// artifacts.
func (c *CLI) runGenerate(ctx context.Context, cmd *cobra.Command, opts *generateOpts) error {
	panel, params, cfg, err := opts.pattern.inputs(cmd)
	if err != nil {
		return err
	}
	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		formats = []string{pipeline.DefaultFormat}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ctx = withLogger(ctx, c.Logger)
	popts := pipeline.Options{
		Panel:       panel,
		Params:      params,
		Config:      cfg,
		Formats:     formats,
		Stroke:      opts.stroke,
		StrokeWidth: opts.strokeWidth,
		Layer:       opts.layer,
		Scale:       opts.scale,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s hinge...", params.Variant))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	printSuccess("Generated %s hinge on %s panel",
		StyleHighlight.Render(result.Pattern.Params.Variant.String()),
		StyleHighlight.Render(fmt.Sprintf("%g x %g mm", panel.Width, panel.Height)))
	printStats(result.Pattern.Stats, result.CacheInfo.RenderHit)
	for _, w := range result.Pattern.Warnings {
		printWarning("%s", w)
	}

	return writeArtifacts(ctx, artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   formats,
		output:    opts.output,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	output    string
}

// writeArtifacts writes one file per format in the requested order.
func writeArtifacts(ctx context.Context, p artifactWriteParams) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	paths := outputPaths(p.output, p.formats)
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("no %s artifact produced", format)
		}
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "format", format, "path", path, "bytes", len(data))
		printFile(path)
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(p.formats)))
	return nil
}

// outputPaths maps each format to its file path. A single format writes to
// output verbatim; several formats share output as a base path with a known
// format extension stripped.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func basePath(output string) string {
	if output == "" {
		return defaultBaseName
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.ToLower(strings.TrimPrefix(ext, "."))] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
