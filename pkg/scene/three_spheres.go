package scene

import (
	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/geometry"
	"github.com/df07/go-live-pathtracer/pkg/integrator"
	"github.com/df07/go-live-pathtracer/pkg/material"
	"github.com/df07/go-live-pathtracer/pkg/renderer"
)

// Colors of the three-sphere scene, exported for pixel-exact checks
var (
	ThreeSpheresRed   = core.NewVec3(1, 0, 0)
	ThreeSpheresGreen = core.NewVec3(0, 1, 0)
	ThreeSpheresBlue  = core.NewVec3(0, 0, 1)
)

// NewThreeSpheresScene places three flat-colored spheres in a row in front of
// a black background. With the flat integrator every pixel is exactly one of
// four colors, which makes it the reference scene for traversal checks.
func NewThreeSpheresScene() *Scene {
	s := &Scene{
		Name: "three-spheres",
		CameraConfig: renderer.CameraConfig{
			Center:      core.NewVec3(0, 0, 0),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			AspectRatio: 1.0,
			VFov:        90.0,
		},
		Background: integrator.UniformBackground(core.Vec3{}),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel: 1,
			MaxDepth:        1,
		},
		Unlit: true,
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(-1.2, 0, -3), 0.5, material.NewFlat(ThreeSpheresRed)),
		geometry.NewSphere(core.NewVec3(0, 0, -3), 0.5, material.NewFlat(ThreeSpheresGreen)),
		geometry.NewSphere(core.NewVec3(1.2, 0, -3), 0.5, material.NewFlat(ThreeSpheresBlue)),
	)
	return s
}
