package core

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

var (
	// ErrNoBoundingBox is returned when an object handed to the BVH builder
	// cannot report a bounding box.
	ErrNoBoundingBox = errors.New("bvh: object has no bounding box")

	// ErrEmptyScene is returned when there is nothing to partition.
	ErrEmptyScene = errors.New("bvh: no objects to partition")

	// ErrInvalidRange is returned for a [start, end) range outside the object list.
	ErrInvalidRange = errors.New("bvh: invalid object range")
)

// ChildKind tags how a BVH node refers to one of its children
type ChildKind int

const (
	// OwnedSubtree is a child node created by, and belonging to, its parent.
	OwnedSubtree ChildKind = iota
	// SharedLeaf is a scene primitive owned by the caller's object list.
	SharedLeaf
)

func (k ChildKind) String() string {
	switch k {
	case OwnedSubtree:
		return "subtree"
	case SharedLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("ChildKind(%d)", int(k))
	}
}

// Child is one branch of a BVH node
type Child struct {
	Kind     ChildKind
	Hittable Hittable
}

// Node returns the child as a BVH node when it is an owned subtree
func (c Child) Node() (*BVHNode, bool) {
	if c.Kind != OwnedSubtree {
		return nil, false
	}
	node, ok := c.Hittable.(*BVHNode)
	return node, ok
}

// BVHNode is a node of the Bounding Volume Hierarchy. A node over a single
// object stores that object in both Left and Right so traversal never sees
// an empty branch.
type BVHNode struct {
	Left  Child
	Right Child
	Box   AABB // Surrounding(Left box, Right box), fixed at construction
}

// bvhBuilder carries per-build state. The first construction error is kept
// and construction carries on so the whole tree is visited once.
type bvhBuilder struct {
	time0, time1 float64
	random       *rand.Rand
	err          error
}

// NewBVH builds a BVH over all objects. The partition axis of each node is
// drawn from random, so a fixed seed gives a reproducible tree.
func NewBVH(objects []Hittable, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	return NewBVHRange(objects, 0, len(objects), time0, time1, random)
}

// NewBVHRange builds a BVH over objects[start:end]. The caller's slice is
// copied and never reordered.
func NewBVHRange(objects []Hittable, start, end int, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyScene
	}
	if start < 0 || end > len(objects) || start >= end {
		return nil, fmt.Errorf("%w: [%d, %d) of %d objects", ErrInvalidRange, start, end, len(objects))
	}
	if random == nil {
		random = rand.New(rand.NewPCG(0, 0))
	}

	working := make([]Hittable, end-start)
	copy(working, objects[start:end])

	b := &bvhBuilder{time0: time0, time1: time1, random: random}
	root := b.build(working, 0, len(working))
	if b.err != nil {
		return nil, b.err
	}
	return root, nil
}

// build partitions objects[start:end] around a randomly chosen axis
func (b *bvhBuilder) build(objects []Hittable, start, end int) *BVHNode {
	axis := b.random.IntN(3)
	span := end - start
	node := &BVHNode{}

	switch {
	case span == 1:
		node.Left = Child{Kind: SharedLeaf, Hittable: objects[start]}
		node.Right = node.Left
	case span == 2:
		first, second := objects[start], objects[start+1]
		if !b.less(first, second, axis) {
			first, second = second, first
		}
		node.Left = Child{Kind: SharedLeaf, Hittable: first}
		node.Right = Child{Kind: SharedLeaf, Hittable: second}
	default:
		sub := objects[start:end]
		sort.Slice(sub, func(i, j int) bool {
			return b.less(sub[i], sub[j], axis)
		})

		mid := start + span/2
		node.Left = Child{Kind: OwnedSubtree, Hittable: b.build(objects, start, mid)}
		node.Right = Child{Kind: OwnedSubtree, Hittable: b.build(objects, mid, end)}
	}

	leftBox, leftOK := node.Left.Hittable.BoundingBox(b.time0, b.time1)
	rightBox, rightOK := node.Right.Hittable.BoundingBox(b.time0, b.time1)
	if !leftOK || !rightOK {
		b.fail(fmt.Errorf("%w: computing node box over %d objects", ErrNoBoundingBox, span))
		return node
	}
	node.Box = Surrounding(leftBox, rightBox)

	return node
}

// less orders two objects by the minimum of their boxes along axis
func (b *bvhBuilder) less(a, c Hittable, axis int) bool {
	boxA, okA := a.BoundingBox(b.time0, b.time1)
	boxC, okC := c.BoundingBox(b.time0, b.time1)
	if !okA {
		b.fail(fmt.Errorf("%w: %T", ErrNoBoundingBox, a))
	}
	if !okC {
		b.fail(fmt.Errorf("%w: %T", ErrNoBoundingBox, c))
	}
	return boxA.Min.Axis(axis) < boxC.Min.Axis(axis)
}

func (b *bvhBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Hit tests the ray against the node box, then both children. A hit on the
// left narrows the interval used for the right.
func (n *BVHNode) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hittable.Hit(ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hittable.Hit(ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box computed at construction
func (n *BVHNode) BoundingBox(time0, time1 float64) (AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes   int     // Internal nodes, including the root
	Leaves       int     // Distinct leaf references; an aliased pair counts once
	AliasedNodes int     // Nodes whose two children are the same object
	MaxDepth     int     // Depth of the deepest node
	AvgDepth     float64 // Mean depth over leaf-holding nodes
}

// Stats walks the tree and collects structural statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	leafNodes := 0
	n.collectStats(0, &stats, &leafNodes)
	if leafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(leafNodes)
	}
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats, leafNodes *int) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if n.Left.Kind == SharedLeaf || n.Right.Kind == SharedLeaf {
		*leafNodes++
		stats.AvgDepth += float64(depth)
	}

	if n.Left.Kind == SharedLeaf && n.Right.Kind == SharedLeaf && n.Left.Hittable == n.Right.Hittable {
		stats.AliasedNodes++
		stats.Leaves++
		return
	}

	for _, child := range []Child{n.Left, n.Right} {
		if node, ok := child.Node(); ok {
			node.collectStats(depth+1, stats, leafNodes)
		} else {
			stats.Leaves++
		}
	}
}
