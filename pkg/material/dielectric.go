package material

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

// Dielectric is a clear refractive material such as glass or water. IOR is
// the index of refraction relative to air.
type Dielectric struct {
	IOR float64
}

func NewDielectric(ior float64) *Dielectric {
	return &Dielectric{IOR: ior}
}

// Scatter picks between reflection and refraction. Total internal reflection
// always reflects; otherwise reflection wins with the Schlick probability.
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	eta := d.IOR
	if hit.FrontFace {
		eta = 1 / d.IOR
	}

	in := rayIn.Direction.Normalize()
	cos := math.Min(-in.Dot(hit.Normal), 1)
	sin := math.Sqrt(1 - cos*cos)

	var dir core.Vec3
	if eta*sin > 1 || Reflectance(cos, eta) > random.Float64() {
		dir = reflect(in, hit.Normal)
	} else {
		dir = refract(in, hit.Normal, eta)
	}

	return core.ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, dir, rayIn.Time),
		Attenuation: d.BaseColor(),
	}, true
}

// BaseColor is white since clear glass absorbs nothing
func (d *Dielectric) BaseColor() core.Vec3 {
	return core.NewVec3(1, 1, 1)
}

// Reflectance is Schlick's approximation of the Fresnel term for a ray at
// cosine to the normal crossing an interface with ratio eta
func Reflectance(cosine, eta float64) float64 {
	r0 := (1 - eta) / (1 + eta)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

func sqrtAbs(x float64) float64 {
	return math.Sqrt(math.Abs(x))
}
