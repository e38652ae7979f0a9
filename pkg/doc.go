// Package pkg provides the libraries behind hingecut, a living-hinge pattern
// generator.
//
// # Overview
//
// A living hinge is a field of staggered slots cut through a rigid sheet so
// that it bends. hingecut computes the slot field for a rectangular panel,
// clips it to the panel outline and writes it in formats laser cutters and
// CNC routers import.
//
// # Architecture
//
//	Panel + Params
//	      ↓
//	[hinge] Validate → PlanLayout → Clip → Pattern
//	      ↓
//	[render/sink] DXF / SVG / JSON   (PNG / PDF via [render])
//
// [pipeline] runs both stages with artifact caching and is shared by the CLI
// and [server].
//
// # Quick Start
//
//	p, err := hinge.Generate(
//	    hinge.Panel{Width: 100, Height: 50},
//	    hinge.Params{CutLength: 30, Gap: 3, Separation: 1.5, IncludeFrame: true},
//	    hinge.DefaultConfig(),
//	)
//	if err != nil {
//	    return err
//	}
//	dxf := sink.RenderDXF(p)
//
// # Main Packages
//
// [geom] - Points, segments and rectangles in millimetres.
//
// [hinge] - Parameter validation, slot layout, boundary clipping and the
// resulting [hinge.Pattern].
//
// [render/sink] - DXF R12, SVG and JSON writers plus PNG and PDF through
// rsvg-convert.
//
// [render/term] - Character-grid rasterizer for terminal previews.
//
// [config] - TOML presets.
//
// [cache] - File, Redis and null artifact caches with key derivation.
//
// [pipeline] - Generate → render orchestration with caching.
//
// [server] - HTTP service.
//
// [observability] - Hook registry for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and field-level validation errors.
package pkg
