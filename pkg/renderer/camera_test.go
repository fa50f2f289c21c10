package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestCameraForward(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        45.0,
	})

	if forward := camera.Forward(); !vecClose(forward, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected forward direction (0,0,-1), got %v", forward)
	}
}

func TestCameraGetRay_Corners(t *testing.T) {
	// 90 degree vertical fov at unit focus distance spans [-1,1] on both axes
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        90.0,
	})
	random := core.NewRandom(1)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"bottom left", 0, 0, core.NewVec3(-1, -1, -1)},
		{"top right", 1, 1, core.NewVec3(1, 1, -1)},
		{"top left", 0, 1, core.NewVec3(-1, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, random)
			if !vecClose(ray.Direction, tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Pinhole camera should not move the origin, got %v", ray.Origin)
			}
		})
	}
}

func TestCameraGetRay_LensAndShutter(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   1.0,
		VFov:          90.0,
		Aperture:      0.5,
		FocusDistance: 2.0,
		Time0:         0.0,
		Time1:         1.0,
	})
	random := core.NewRandom(5)

	focalPoint := core.NewVec3(0, 0, -2)
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, random)

		if ray.Origin.Length() > 0.25+1e-12 || ray.Origin.Z != 0 {
			t.Fatalf("Origin %v outside the lens disk", ray.Origin)
		}
		if ray.Time < 0 || ray.Time >= 1 {
			t.Fatalf("Ray time %f outside shutter interval", ray.Time)
		}
		// Every center ray passes through the focal point
		if p := ray.At(1); !vecClose(p, focalPoint, 1e-9) {
			t.Fatalf("Expected center ray through %v, got %v", focalPoint, p)
		}
	}
}
