package geometry

import (
	"math"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

// Sphere is a static sphere. A negative radius keeps the same surface but
// turns the normals inward, which models the inner wall of a hollow shell.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return hitSphere(ray, tMin, tMax, s.Center, s.Radius, s.Material)
}

// BoundingBox is the same for every time interval
func (s *Sphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// hitSphere returns the nearest root of |o + t*d - center|^2 = r^2 inside
// [tMin, tMax], using the half-b form of the quadratic
func hitSphere(ray core.Ray, tMin, tMax float64, center core.Vec3, radius float64, material core.Material) (*core.HitRecord, bool) {
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.LengthSquared()
	h := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	disc := h*h - a*c
	if disc < 0 {
		return nil, false
	}
	sq := math.Sqrt(disc)

	t := (-h - sq) / a
	if t < tMin || t > tMax {
		if t = (-h + sq) / a; t < tMin || t > tMax {
			return nil, false
		}
	}

	rec := &core.HitRecord{T: t, Point: ray.At(t), Material: material}
	rec.SetFaceNormal(ray, rec.Point.Subtract(center).Multiply(1/radius))
	return rec, true
}

func sphereBox(center core.Vec3, radius float64) core.AABB {
	r := math.Abs(radius)
	half := core.NewVec3(r, r, r)
	return core.NewAABB(center.Subtract(half), center.Add(half))
}
