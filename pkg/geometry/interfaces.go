package geometry

import (
	"math/rand/v2"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

var (
	_ core.Hittable = (*Sphere)(nil)
	_ core.Hittable = (*MovingSphere)(nil)
	_ core.Hittable = (*Plane)(nil)
)

// DummyMaterial absorbs everything. Useful for geometry-only scenes and tests.
type DummyMaterial struct{}

func (DummyMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}
