package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/geometry"
	"github.com/df07/go-live-pathtracer/pkg/material"
)

// createTestWorld creates a simple world with a single sphere
func createTestWorld(m core.Material) core.Hittable {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, m)
	return core.NewHittableList(sphere)
}

func TestPathTracingDepthTermination(t *testing.T) {
	world := createTestWorld(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	integrator := NewPathTracingIntegrator(DefaultBackground())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if c := integrator.RayColor(ray, world, 0, core.NewRandom(42)); c != (core.Vec3{}) {
		t.Errorf("Expected black color for depth 0, got %v", c)
	}

	if c := integrator.RayColor(ray, world, 3, core.NewRandom(42)); c == (core.Vec3{}) {
		t.Error("Expected non-black color for positive depth")
	}
}

func TestPathTracingMissedRay(t *testing.T) {
	world := createTestWorld(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	background := DefaultBackground()
	integrator := NewPathTracingIntegrator(background)

	tests := []struct {
		name     string
		dir      core.Vec3
		expected core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), background.Top},
		{"straight down", core.NewVec3(0, -1, 0), background.Bottom},
		{"horizon", core.NewVec3(1, 0, 0), background.Top.Add(background.Bottom).Multiply(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.dir)
			c := integrator.RayColor(ray, world, 5, core.NewRandom(1))
			if c.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestPathTracingSpecularMirror(t *testing.T) {
	// A perfect mirror facing the camera sends the ray straight back into a
	// uniform sky, attenuated once by the albedo
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	world := createTestWorld(material.NewMetal(albedo, 0))
	sky := core.NewVec3(0.5, 0.5, 0.5)
	integrator := NewPathTracingIntegrator(UniformBackground(sky))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	c := integrator.RayColor(ray, world, 5, core.NewRandom(3))

	expected := albedo.MultiplyVec(sky)
	if c.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, c)
	}
}

func TestPathTracingAbsorbingMaterial(t *testing.T) {
	world := createTestWorld(material.NewFlat(core.NewVec3(1, 1, 1)))
	integrator := NewPathTracingIntegrator(DefaultBackground())

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if c := integrator.RayColor(ray, world, 5, core.NewRandom(3)); c != (core.Vec3{}) {
		t.Errorf("Expected black for absorbed ray, got %v", c)
	}
}

func TestPathTracingDeterministic(t *testing.T) {
	world := createTestWorld(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	integrator := NewPathTracingIntegrator(DefaultBackground()).WithRussianRoulette(2)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	color1 := integrator.RayColor(ray, world, 10, core.NewRandom(42))
	color2 := integrator.RayColor(ray, world, 10, core.NewRandom(42))
	if color1 != color2 {
		t.Errorf("Expected deterministic results, got %v and %v", color1, color2)
	}
}

func TestPathTracingRussianRouletteUnbiased(t *testing.T) {
	// A white diffuse sphere under a uniform sky converges to the sky color
	// with or without roulette; compare the two estimates loosely
	world := createTestWorld(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	sky := UniformBackground(core.NewVec3(1, 1, 1))
	plain := NewPathTracingIntegrator(sky)
	roulette := NewPathTracingIntegrator(sky).WithRussianRoulette(1)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	const samples = 20000
	random := core.NewRandom(99)
	var sumPlain, sumRoulette float64
	for i := 0; i < samples; i++ {
		sumPlain += plain.RayColor(ray, world, 8, random).X
		sumRoulette += roulette.RayColor(ray, world, 8, random).X
	}

	meanPlain := sumPlain / samples
	meanRoulette := sumRoulette / samples
	if math.Abs(meanPlain-meanRoulette) > 0.05 {
		t.Errorf("Roulette estimate %f differs from plain estimate %f", meanRoulette, meanPlain)
	}
}
