package material

import "github.com/df07/go-live-pathtracer/pkg/core"

// Colored is implemented by materials that expose a flat base color. Unlit
// shading uses it in place of scattering.
type Colored interface {
	BaseColor() core.Vec3
}

var (
	_ core.Material = (*Lambertian)(nil)
	_ core.Material = (*Metal)(nil)
	_ core.Material = (*Dielectric)(nil)
	_ core.Material = (*Flat)(nil)

	_ Colored = (*Lambertian)(nil)
	_ Colored = (*Metal)(nil)
	_ Colored = (*Dielectric)(nil)
	_ Colored = (*Flat)(nil)
)

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refract bends the unit vector uv through a surface using Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-sqrtAbs(1.0 - rOutPerp.LengthSquared()))
	return rOutPerp.Add(rOutParallel)
}
