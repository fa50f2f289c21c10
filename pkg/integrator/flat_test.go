package integrator

import (
	"math/rand/v2"
	"testing"

	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/geometry"
	"github.com/df07/go-live-pathtracer/pkg/material"
)

type opaqueMaterial struct{}

func (opaqueMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func TestFlatIntegrator(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	bg := core.NewVec3(0.2, 0.3, 0.4)
	magenta := core.NewVec3(1, 0, 1)

	world := core.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewFlat(red)),
		geometry.NewSphere(core.NewVec3(3, 0, -2), 0.5, opaqueMaterial{}),
	)
	integrator := NewFlatIntegrator(UniformBackground(bg), magenta)

	tests := []struct {
		name     string
		ray      core.Ray
		depth    int
		expected core.Vec3
	}{
		{"hit base color", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 1, red},
		{"hit without base color", core.NewRay(core.NewVec3(3, 0, 0), core.NewVec3(0, 0, -1)), 1, magenta},
		{"miss", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 1, bg},
		{"zero depth", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := integrator.RayColor(tt.ray, world, tt.depth, nil); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
