package renderer

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera generates primary rays. (s, t) are viewport coordinates in [0,1]
// with t = 0 at the bottom edge.
type Camera interface {
	GetRay(s, t float64, random *rand.Rand) core.Ray
}

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction (usually {0,1,0})
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64   // Distance to the focal plane; 0 means |LookAt - Center|
	Time0, Time1  float64   // Shutter interval; rays are cast at uniform times within it
}

// PerspectiveCamera is a thin-lens perspective camera
type PerspectiveCamera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	time0, time1    float64
}

// NewCamera builds the camera basis from the configuration
func NewCamera(config CameraConfig) *PerspectiveCamera {
	theta := mgl64.DegToRad(config.VFov)
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	lookFrom := toMgl(config.Center)
	lookAt := toMgl(config.LookAt)

	w := lookFrom.Sub(lookAt).Normalize()
	u := toMgl(config.Up).Cross(w).Normalize()
	v := w.Cross(u)

	focusDist := config.FocusDistance
	if focusDist <= 0 {
		focusDist = lookFrom.Sub(lookAt).Len()
	}

	horizontal := u.Mul(focusDist * viewportWidth)
	vertical := v.Mul(focusDist * viewportHeight)
	lowerLeftCorner := lookFrom.
		Sub(horizontal.Mul(0.5)).
		Sub(vertical.Mul(0.5)).
		Sub(w.Mul(focusDist))

	return &PerspectiveCamera{
		origin:          config.Center,
		lowerLeftCorner: fromMgl(lowerLeftCorner),
		horizontal:      fromMgl(horizontal),
		vertical:        fromMgl(vertical),
		u:               fromMgl(u),
		v:               fromMgl(v),
		w:               fromMgl(w),
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
	}
}

// GetRay generates a ray for viewport coordinates (s, t)
func (c *PerspectiveCamera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	time := c.time0
	if c.time1 > c.time0 {
		time += (c.time1 - c.time0) * random.Float64()
	}

	return core.NewRayAt(origin, direction, time)
}

// Forward returns the unit viewing direction
func (c *PerspectiveCamera) Forward() core.Vec3 {
	return c.w.Negate()
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v.X(), v.Y(), v.Z())
}
