package integrator

import (
	"math/rand/v2"

	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/material"
)

// FlatIntegrator shades the first hit with its material's base color and
// nothing else. Output is a deterministic function of the ray, which makes
// it the reference shader for image tests.
type FlatIntegrator struct {
	background Background
	fallback   core.Vec3
}

// NewFlatIntegrator creates an unlit integrator. Materials without a base
// color render as fallback.
func NewFlatIntegrator(background Background, fallback core.Vec3) *FlatIntegrator {
	return &FlatIntegrator{background: background, fallback: fallback}
}

func (f *FlatIntegrator) RayColor(ray core.Ray, world core.Hittable, depth int, random *rand.Rand) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := closestHit(world, ray)
	if !isHit {
		return f.background.Color(ray)
	}
	if colored, ok := hit.Material.(material.Colored); ok {
		return colored.BaseColor()
	}
	return f.fallback
}
