package integrator

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

// Closest hits nearer than this are treated as self-intersection
const shadowEpsilon = 0.001

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along ray, following at most
	// depth bounces. random is owned by the calling worker.
	RayColor(ray core.Ray, world core.Hittable, depth int, random *rand.Rand) core.Vec3
}

// Background is a vertical sky gradient seen by rays that escape the scene
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// DefaultBackground is the white-to-blue sky
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// UniformBackground returns a background with a single color
func UniformBackground(color core.Vec3) Background {
	return Background{Top: color, Bottom: color}
}

// Color returns the background color along the ray direction
func (b Background) Color(r core.Ray) core.Vec3 {
	if b.Top == b.Bottom {
		return b.Top
	}
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1] and blend bottom to top
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

func closestHit(world core.Hittable, ray core.Ray) (*core.HitRecord, bool) {
	return world.Hit(ray, shadowEpsilon, math.Inf(1))
}
