package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/integrator"
	"github.com/df07/go-live-pathtracer/pkg/log"
	"github.com/df07/go-live-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by Lookup for an unregistered scene ID
var ErrUnknownScene = errors.New("scene: unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Objects        []core.Hittable // Objects in the scene, bounded and unbounded
	CameraConfig   renderer.CameraConfig
	Background     integrator.Background
	SamplingConfig SamplingConfig

	// Unlit scenes are shaded with each surface's base color instead of
	// being path traced
	Unlit bool
}

// SamplingConfig holds the per-scene defaults the CLI falls back to when a
// flag is left unset
type SamplingConfig struct {
	SamplesPerPixel           int // Number of rays per pixel per frame
	MaxDepth                  int // Maximum ray bounce depth
	RussianRouletteMinBounces int // Bounces before Russian roulette can end a path; 0 disables it
}

// World is the renderable form of a scene: bounded objects inside a BVH,
// unbounded ones beside it
type World struct {
	Root      core.Hittable
	BVH       *core.BVHNode // nil when every object is unbounded
	Unbounded int
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...core.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// Camera builds the scene camera for a frame of the given size
func (s *Scene) Camera(width, height int) *renderer.PerspectiveCamera {
	config := s.CameraConfig
	config.AspectRatio = float64(width) / float64(height)
	return renderer.NewCamera(config)
}

// ApplyDefaults fills the sampling fields of opts that are still zero
func (s *Scene) ApplyDefaults(opts renderer.Options) renderer.Options {
	if opts.SamplesPerPixel == 0 {
		opts.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = s.SamplingConfig.MaxDepth
	}
	return opts
}

// Integrator returns the integrator the scene is meant to be rendered with: a
// path tracer configured with the scene background, or the flat integrator
// for unlit scenes
func (s *Scene) Integrator() integrator.Integrator {
	if s.Unlit {
		return integrator.NewFlatIntegrator(s.Background, core.NewVec3(1, 0, 1))
	}
	pt := integrator.NewPathTracingIntegrator(s.Background)
	if s.SamplingConfig.RussianRouletteMinBounces > 0 {
		pt = pt.WithRussianRoulette(s.SamplingConfig.RussianRouletteMinBounces)
	}
	return pt
}

// BuildWorld partitions the bounded objects into a BVH over the camera's
// shutter interval. Objects without a bounding box (planes) stay outside the
// tree and are tested linearly next to it, so the BVH builder's
// core.ErrNoBoundingBox never fires for a scene; only an empty scene fails.
func (s *Scene) BuildWorld(seed uint64, logger log.Logger) (*World, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if len(s.Objects) == 0 {
		return nil, fmt.Errorf("scene %q: %w", s.Name, core.ErrEmptyScene)
	}

	time0, time1 := s.CameraConfig.Time0, s.CameraConfig.Time1
	var bounded, unbounded []core.Hittable
	for _, object := range s.Objects {
		if _, ok := object.BoundingBox(time0, time1); ok {
			bounded = append(bounded, object)
		} else {
			unbounded = append(unbounded, object)
		}
	}

	world := &World{Unbounded: len(unbounded)}
	if len(bounded) > 0 {
		bvh, err := core.NewBVH(bounded, time0, time1, core.NewRandom(seed))
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", s.Name, err)
		}
		world.BVH = bvh

		stats := bvh.Stats()
		logger.Debugf("bvh built over %d objects: %d nodes, max depth %d, avg leaf depth %.2f",
			len(bounded), stats.TotalNodes, stats.MaxDepth, stats.AvgDepth)
	}

	switch {
	case world.BVH != nil && len(unbounded) == 0:
		world.Root = world.BVH
	case world.BVH != nil:
		world.Root = core.NewHittableList(append([]core.Hittable{world.BVH}, unbounded...)...)
	default:
		world.Root = core.NewHittableList(unbounded...)
	}
	if len(unbounded) > 0 {
		logger.Debugf("%d unbounded objects kept outside the bvh", len(unbounded))
	}
	return world, nil
}
