package geometry

import (
	"math"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

// Plane is an infinite plane through Point with unit Normal. It has no
// bounding box, so scenes keep planes out of the BVH and test them linearly.
type Plane struct {
	Point    core.Vec3
	Normal   core.Vec3
	Material core.Material
}

// NewPlane normalizes normal before storing it
func NewPlane(point, normal core.Vec3, material core.Material) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize(), Material: material}
}

// Hit solves (o + t*d - p).n = 0 for t
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	dn := ray.Direction.Dot(p.Normal)
	if math.Abs(dn) < 1e-8 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / dn
	if t < tMin || t > tMax {
		return nil, false
	}

	rec := &core.HitRecord{T: t, Point: ray.At(t), Material: p.Material}
	rec.SetFaceNormal(ray, p.Normal)
	return rec, true
}

func (p *Plane) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}
