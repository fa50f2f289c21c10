package scene

import (
	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/geometry"
	"github.com/df07/go-live-pathtracer/pkg/integrator"
	"github.com/df07/go-live-pathtracer/pkg/material"
	"github.com/df07/go-live-pathtracer/pkg/renderer"
)

// NewDefaultScene is a small showcase of every material: three large spheres
// (diffuse, mirror, brushed gold) and a solid and a hollow glass ball resting
// on an infinite ground plane
func NewDefaultScene() *Scene {
	s := &Scene{
		Name: "basic",
		CameraConfig: renderer.CameraConfig{
			Center:      core.NewVec3(0, 0.75, 2),
			LookAt:      core.NewVec3(0, 0.5, -1),
			Up:          core.NewVec3(0, 1, 0),
			AspectRatio: 16.0 / 9.0,
			VFov:        40,
			Aperture:    0.05, // focus distance left at zero: focus on LookAt
		},
		Background: integrator.DefaultBackground(),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel: 4,
			MaxDepth:        50,
			// glass inside glass needs long paths before roulette kicks in
			RussianRouletteMinBounces: 20,
		},
	}

	glass := material.NewDielectric(1.5)
	hollow := core.NewVec3(-0.5, 0.25, -0.5)

	s.Add(
		geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0),
			material.NewLambertian(core.NewVec3(0.48, 0.48, 0))),

		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0)),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),

		// Hollow ball: outer shell, inward-facing inner shell, blue core
		geometry.NewSphere(hollow, 0.25, glass),
		geometry.NewSphere(hollow, -0.24, glass),
		geometry.NewSphere(hollow, 0.20, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
	)
	return s
}
