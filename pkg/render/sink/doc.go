// Package sink writes hinge patterns to output formats.
//
// # Overview
//
// A "sink" transforms a generated [hinge.Pattern] into bytes:
//
//   - SVG: true-scale vector drawing, sized in millimetres
//   - DXF: ASCII AutoCAD R12 drawing for laser and CNC CAM software
//   - JSON: pattern data for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster preview (requires rsvg-convert)
//
// All sinks keep the pattern's coordinate system: millimetres, origin at the
// bottom-left panel corner, y growing upwards. Output order matches the
// pattern: the frame outline first, then the cuts column by column.
//
// # Usage
//
//	svg := sink.RenderSVG(p, sink.WithStroke("#000"), sink.WithStrokeWidth(0.05))
//	dxf := sink.RenderDXF(p, sink.WithLayer("CUT"))
//	data, err := sink.RenderJSON(p)
//	png, err := sink.RenderPNG(p, sink.WithScale(8))
//
// [hinge.Pattern]: github.com/matzehuels/hingecut/pkg/hinge.Pattern
package sink
