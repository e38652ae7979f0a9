// Package hinge generates living-hinge cutting patterns.
//
// A living hinge is a field of parallel slots cut into a rigid sheet so that
// it bends along the slot direction. This package turns a few physical
// parameters into the exact set of straight cuts for a rectangular panel.
//
// # Pipeline
//
// Generation is a pure function made of four stages:
//
//  1. [Validate]: reject parameters outside the safe operating range
//  2. [PlanLayout]: walk the grid of columns and slots and emit raw geometry
//  3. [Clip]: truncate every raw segment to the panel's vertical extent
//  4. [Pattern]: accumulate accepted segments in generation order
//
// [Generate] runs all four and returns either a complete [Pattern] or a
// validation error, never a partial result.
//
// # Geometry
//
// Columns sit at x = Separation*(i+1) and stop one pitch before the right
// edge. Odd columns are shifted down by half a slot period so that the bridges
// of neighbouring columns never line up:
//
//	  |     |     |
//	  |           |
//	  |     |     |
//	        |
//	  |     |     |
//
// A [Straight] slot is a single vertical cut. A [Chevron] slot is two
// back-to-back V shapes sharing an apex on the column line, CutWidth wide.
//
// # Usage
//
//	p, err := hinge.Generate(
//	    hinge.Panel{Width: 100, Height: 50},
//	    hinge.Params{CutLength: 30, Gap: 3, Separation: 1.5, IncludeFrame: true},
//	    hinge.DefaultConfig(),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, s := range p.Lines() {
//	    fmt.Println(s)
//	}
package hinge
