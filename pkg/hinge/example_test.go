package hinge_test

import (
	"fmt"

	"github.com/matzehuels/hingecut/pkg/errors"
	"github.com/matzehuels/hingecut/pkg/geom"
	"github.com/matzehuels/hingecut/pkg/hinge"
)

func ExampleGenerate() {
	p, err := hinge.Generate(
		hinge.Panel{Width: 6, Height: 20},
		hinge.Params{CutLength: 8, Gap: 2, Separation: 2},
		hinge.DefaultConfig(),
	)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, s := range p.Segments {
		fmt.Println(s)
	}
	fmt.Printf("%d columns, %d clipped\n", p.Stats.Columns, p.Stats.Clipped)
	// Output:
	// (2, 2)-(2, 10)
	// (2, 12)-(2, 20)
	// (4, 0)-(4, 5)
	// (4, 7)-(4, 15)
	// (4, 17)-(4, 20)
	// 2 columns, 3 clipped
}

func ExampleGenerate_validation() {
	_, err := hinge.Generate(
		hinge.Panel{Width: 50, Height: 20},
		hinge.Params{CutLength: 8, Gap: 2, Separation: 3, CutWidth: 3, Variant: hinge.Chevron},
		hinge.DefaultConfig(),
	)
	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.UserMessage(err))
	// Output:
	// SLOT_WIDTH_EXCEEDS_PITCH
	// cut_width = 3: slot spread reaches the neighbouring column (limit 3)
}

func ExampleClip() {
	s, ok := hinge.Clip(geom.Seg(10, -5, 10, 10), 50, hinge.DefaultEpsilon)
	fmt.Println(s, ok)

	_, ok = hinge.Clip(geom.Seg(10, 60, 10, 70), 50, hinge.DefaultEpsilon)
	fmt.Println(ok)
	// Output:
	// (10, 0)-(10, 10) true
	// false
}
