// Package render turns hinge patterns into files and previews.
//
// # Overview
//
//   - Format conversion from SVG to PDF/PNG (this package)
//   - Vector and data sinks: SVG, DXF, JSON, PNG, PDF (in [sink])
//   - Character-grid previews for terminals (in [term])
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert an SVG document using the external
// rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(pattern)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 4.0)
//
// [sink]: github.com/matzehuels/hingecut/pkg/render/sink
// [term]: github.com/matzehuels/hingecut/pkg/render/term
package render
