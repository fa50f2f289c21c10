package core

import "math"

// AABB is an axis-aligned box with Min <= Max on every axis. Boxes are plain
// values and are never modified once built.
type AABB struct {
	Min, Max Vec3
}

func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Surrounding returns the tightest box containing both a and b
func Surrounding(a, b AABB) AABB {
	return AABB{Min: minComponents(a.Min, b.Min), Max: maxComponents(a.Max, b.Max)}
}

// Union is Surrounding as a method
func (b AABB) Union(other AABB) AABB {
	return Surrounding(b, other)
}

// Hit runs the slab test: the ray's parameter interval is clipped against the
// pair of planes on each axis and the box is hit if anything is left.
func (b AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		o, d := ray.Origin.Axis(axis), ray.Direction.Axis(axis)

		if math.Abs(d) < 1e-8 {
			// Parallel to this slab: inside it or a miss
			if o < lo || o > hi {
				return false
			}
			continue
		}

		inv := 1 / d
		t0, t1 := (lo-o)*inv, (hi-o)*inv
		if inv < 0 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMax < tMin {
			return false
		}
	}
	return true
}

// Contains reports whether other lies entirely inside b
func (b AABB) Contains(other AABB) bool {
	return minComponents(b.Min, other.Min) == b.Min && maxComponents(b.Max, other.Max) == b.Max
}

func (b AABB) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}
