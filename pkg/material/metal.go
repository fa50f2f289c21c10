package material

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

// Metal is a specular reflector. Fuzz in [0, 1] widens the reflection lobe;
// zero is a perfect mirror.
type Metal struct {
	Albedo core.Vec3
	Fuzz   float64
}

// NewMetal clamps fuzz to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: math.Max(0, math.Min(fuzz, 1))}
}

// Scatter mirrors the incoming direction about the normal and offsets the
// result by a random point in a sphere of radius Fuzz. A direction pushed
// below the surface is absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	dir := reflect(rayIn.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		dir = dir.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzz))
	}
	if dir.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false
	}
	return core.ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, dir, rayIn.Time),
		Attenuation: m.Albedo,
	}, true
}

func (m *Metal) BaseColor() core.Vec3 {
	return m.Albedo
}
