package material

import (
	"math/rand/v2"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

// Flat is an unlit material. It never scatters; its color is returned as-is
// by the unlit integrator.
type Flat struct {
	Color core.Vec3
}

// NewFlat creates a flat-colored material
func NewFlat(color core.Vec3) *Flat {
	return &Flat{Color: color}
}

// Scatter absorbs every ray
func (f *Flat) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func (f *Flat) BaseColor() core.Vec3 {
	return f.Color
}
