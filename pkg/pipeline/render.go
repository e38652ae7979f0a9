package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/hingecut/pkg/hinge"
	"github.com/matzehuels/hingecut/pkg/render/sink"
)

// Render writes p in every format of opts.Formats.
func Render(ctx context.Context, p *hinge.Pattern, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := RenderFormat(p, format, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}

// RenderFormat writes p in a single format.
func RenderFormat(p *hinge.Pattern, format string, opts Options) ([]byte, error) {
	opts.SetRenderDefaults()
	svgOpts := buildSVGOptions(opts)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(p, svgOpts...), nil
	case FormatDXF:
		return sink.RenderDXF(p, sink.WithLayer(opts.Layer)), nil
	case FormatJSON:
		return sink.RenderJSON(p)
	case FormatPNG:
		return sink.RenderPNG(p, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		return sink.RenderPDF(p, sink.WithPDFSVGOptions(svgOpts...))
	}
	return nil, ValidateFormat(format)
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithStroke(opts.Stroke),
		sink.WithStrokeWidth(opts.StrokeWidth),
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}
