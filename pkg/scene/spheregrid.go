package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/geometry"
	"github.com/df07/go-live-pathtracer/pkg/integrator"
	"github.com/df07/go-live-pathtracer/pkg/material"
	"github.com/df07/go-live-pathtracer/pkg/renderer"
)

// OKLab to LMS' and LMS to linear sRGB, from Björn Ottosson's reference
var (
	oklabToLMS = mgl64.Mat3FromRows(
		mgl64.Vec3{1, 0.3963377774, 0.2158037573},
		mgl64.Vec3{1, -0.1055613458, -0.0638541728},
		mgl64.Vec3{1, -0.0894841775, -1.2914855480},
	)
	lmsToLinearRGB = mgl64.Mat3FromRows(
		mgl64.Vec3{4.0767416621, -3.3077115913, 0.2309699292},
		mgl64.Vec3{-1.2684380046, 2.6097574011, -0.3413193965},
		mgl64.Vec3{-0.0041960863, -0.7034186147, 1.7076147010},
	)
)

// oklchToRGB converts lightness l in [0,1], chroma c and hue h in degrees to
// linear RGB, clipping out-of-gamut results
func oklchToRGB(l, c, h float64) core.Vec3 {
	hue := mgl64.DegToRad(h)
	lms := oklabToLMS.Mul3x1(mgl64.Vec3{l, c * math.Cos(hue), c * math.Sin(hue)})
	for i := range lms {
		lms[i] = lms[i] * lms[i] * lms[i]
	}
	rgb := lmsToLinearRGB.Mul3x1(lms)
	return core.NewVec3(
		mgl64.Clamp(rgb[0], 0, 1),
		mgl64.Clamp(rgb[1], 0, 1),
		mgl64.Clamp(rgb[2], 0, 1),
	)
}

// NewSphereGridScene lays gridSize x gridSize metal spheres over a 9x9 patch
// of ground. Hue sweeps along x and chroma along z.
func NewSphereGridScene(gridSize int) *Scene {
	gridSize = max(gridSize, 2)

	s := &Scene{
		Name: "sphere-grid",
		CameraConfig: renderer.CameraConfig{
			Center:      core.NewVec3(4.5, 6, 18),
			LookAt:      core.NewVec3(4.5, 0.8, 4.5),
			Up:          core.NewVec3(0, 1, 0),
			AspectRatio: 16.0 / 9.0,
			VFov:        40,
			Aperture:    0.02,
		},
		Background: integrator.DefaultBackground(),
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:           2,
			MaxDepth:                  40,
			RussianRouletteMinBounces: 12,
		},
	}

	s.Add(geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	const extent = 9.0
	last := float64(gridSize - 1)
	step := extent / last
	radius := mgl64.Clamp(step*0.35, 0.02, 0.35)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			fi, fj := float64(i), float64(j)
			center := core.NewVec3(fi*step, radius, fj*step)

			light := 0.65 + 0.1*math.Sin((fi+fj)*0.5)
			chroma := 0.05 + 0.2*fj/last
			color := oklchToRGB(light, chroma, 360*fi/last)

			fuzz := 0.05 + 0.05*float64((i+j)%3)
			s.Add(geometry.NewSphere(center, radius, material.NewMetal(color, fuzz)))
		}
	}
	return s
}
