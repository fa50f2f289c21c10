package scene

import (
	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/geometry"
	"github.com/df07/go-live-pathtracer/pkg/integrator"
	"github.com/df07/go-live-pathtracer/pkg/material"
	"github.com/df07/go-live-pathtracer/pkg/renderer"
)

// NewRandomScene builds the "Ray Tracing in One Weekend" cover: a huge ground
// sphere, a field of small random spheres and three large feature spheres.
// Diffuse spheres bounce upward during the shutter interval. The layout is a
// pure function of seed.
func NewRandomScene(seed uint64) *Scene {
	random := core.NewRandom(seed)

	s := &Scene{
		Name: "random",
		CameraConfig: renderer.CameraConfig{
			Center:        core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			AspectRatio:   16.0 / 9.0,
			VFov:          20.0,
			Aperture:      0.1,
			FocusDistance: 10.0,
			Time0:         0.0,
			Time1:         1.0,
		},
		Background: integrator.DefaultBackground(),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel: 4,
			MaxDepth:        50,
		},
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
				center1 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				s.Add(geometry.NewMovingSphere(center, center1, 0.0, 1.0, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(random, 0.5, 1)
				fuzz := 0.5 * random.Float64()
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
