package core

import "math/rand/v2"

// Hittable is implemented by every scene primitive and by BVH nodes alike
type Hittable interface {
	// Hit reports the closest intersection with the ray in [tMin, tMax]
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)

	// BoundingBox returns the box enclosing the object over [time0, time1].
	// ok is false for unbounded objects.
	BoundingBox(time0, time1 float64) (box AABB, ok bool)
}

// Material interface for surfaces that scatter rays
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at intersection, facing the ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
