package core

// HittableList is an ordered collection of primitives. It is the input to BVH
// construction and doubles as the unaccelerated reference for tests.
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit tests every object and keeps the closest intersection
func (l *HittableList) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit *HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of every member's box. An empty list or a
// list holding an unbounded member has no box.
func (l *HittableList) BoundingBox(time0, time1 float64) (AABB, bool) {
	if len(l.Objects) == 0 {
		return AABB{}, false
	}

	var box AABB
	for i, object := range l.Objects {
		objectBox, ok := object.BoundingBox(time0, time1)
		if !ok {
			return AABB{}, false
		}
		if i == 0 {
			box = objectBox
		} else {
			box = Surrounding(box, objectBox)
		}
	}
	return box, true
}
