package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-live-pathtracer/pkg/core"
	"github.com/df07/go-live-pathtracer/pkg/geometry"
	"github.com/df07/go-live-pathtracer/pkg/integrator"
	"github.com/df07/go-live-pathtracer/pkg/renderer"
)

func TestBuildWorld_MatchesLinearScan(t *testing.T) {
	s := NewRandomScene(7)
	world, err := s.BuildWorld(1, nil)
	if err != nil {
		t.Fatalf("BuildWorld failed: %v", err)
	}
	if world.BVH == nil {
		t.Fatal("Expected a BVH over the bounded objects")
	}

	reference := core.NewHittableList(s.Objects...)
	random := core.NewRandom(99)
	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(13, 2, 3).Add(core.RandomVec3(random, -1, 1))
		target := core.RandomVec3(random, -11, 11)
		target.Y = 0.2 * random.Float64()
		ray := core.NewRayAt(origin, target.Subtract(origin), random.Float64())

		want, wantHit := reference.Hit(ray, 0.001, math.Inf(1))
		got, gotHit := world.Root.Hit(ray, 0.001, math.Inf(1))
		if wantHit != gotHit {
			t.Fatalf("ray %d: hit = %v, linear scan hit = %v", i, gotHit, wantHit)
		}
		if wantHit && math.Abs(want.T-got.T) > 1e-9 {
			t.Fatalf("ray %d: t = %v, linear scan t = %v", i, got.T, want.T)
		}
	}
}

func TestBuildWorld_KeepsPlanesOutsideBVH(t *testing.T) {
	s := NewDefaultScene()
	world, err := s.BuildWorld(0, nil)
	if err != nil {
		t.Fatalf("BuildWorld failed: %v", err)
	}
	if world.Unbounded != 1 {
		t.Errorf("Expected 1 unbounded object, got %d", world.Unbounded)
	}
	if world.BVH == nil {
		t.Fatal("Expected a BVH over the spheres")
	}
	if got := world.BVH.Stats().Leaves; got != len(s.Objects)-1 {
		t.Errorf("Expected %d BVH leaves, got %d", len(s.Objects)-1, got)
	}

	// Straight down from above the origin lands on the ground plane
	ray := core.NewRay(core.NewVec3(3, 1, 3), core.NewVec3(0, -1, 0))
	hit, ok := world.Root.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected the ground plane to be hit")
	}
	if math.Abs(hit.Point.Y) > 1e-9 {
		t.Errorf("Expected hit on y=0, got %v", hit.Point)
	}
}

func TestBuildWorld_EmptyScene(t *testing.T) {
	s := &Scene{Name: "empty"}
	_, err := s.BuildWorld(0, nil)
	if !errors.Is(err, core.ErrEmptyScene) {
		t.Errorf("Expected ErrEmptyScene, got %v", err)
	}
}

func TestBuildWorld_UnboundedOnlySkipsBVH(t *testing.T) {
	s := &Scene{Name: "floor"}
	s.Add(geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0), geometry.DummyMaterial{}))

	// Handed straight to the builder the plane is rejected
	if _, err := core.NewBVH(s.Objects, 0, 1, nil); !errors.Is(err, core.ErrNoBoundingBox) {
		t.Fatalf("Expected ErrNoBoundingBox from NewBVH, got %v", err)
	}

	world, err := s.BuildWorld(0, nil)
	if err != nil {
		t.Fatalf("BuildWorld failed: %v", err)
	}
	if world.BVH != nil {
		t.Error("Expected no BVH for a scene without bounded objects")
	}
	if world.Unbounded != 1 {
		t.Errorf("Expected 1 unbounded object, got %d", world.Unbounded)
	}
	if _, ok := world.Root.Hit(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), 0.001, math.Inf(1)); !ok {
		t.Error("Expected the plane to be hit through the world root")
	}
}

func TestRandomScene_Deterministic(t *testing.T) {
	a := NewRandomScene(42)
	b := NewRandomScene(42)
	if len(a.Objects) != len(b.Objects) {
		t.Fatalf("Object counts differ: %d vs %d", len(a.Objects), len(b.Objects))
	}
	for i := range a.Objects {
		boxA, _ := a.Objects[i].BoundingBox(0, 1)
		boxB, _ := b.Objects[i].BoundingBox(0, 1)
		if boxA != boxB {
			t.Fatalf("Object %d differs: %v vs %v", i, boxA, boxB)
		}
	}

	// Ground plus three feature spheres plus at least some of the 484 small ones
	if len(a.Objects) < 400 || len(a.Objects) > 488 {
		t.Errorf("Unexpected object count %d", len(a.Objects))
	}
}

func TestScene_ApplyDefaults(t *testing.T) {
	s := NewSphereGridScene(4)

	opts := s.ApplyDefaults(renderer.Options{Width: 10, Height: 10})
	if opts.SamplesPerPixel != s.SamplingConfig.SamplesPerPixel {
		t.Errorf("Expected spp %d, got %d", s.SamplingConfig.SamplesPerPixel, opts.SamplesPerPixel)
	}
	if opts.MaxDepth != s.SamplingConfig.MaxDepth {
		t.Errorf("Expected depth %d, got %d", s.SamplingConfig.MaxDepth, opts.MaxDepth)
	}

	opts = s.ApplyDefaults(renderer.Options{SamplesPerPixel: 9, MaxDepth: 3})
	if opts.SamplesPerPixel != 9 || opts.MaxDepth != 3 {
		t.Errorf("Explicit settings were overridden: %+v", opts)
	}

	// 16 spheres plus the ground
	if len(s.Objects) != 17 {
		t.Errorf("Expected 17 objects, got %d", len(s.Objects))
	}
}

func TestScene_CameraUsesFrameAspect(t *testing.T) {
	s := NewThreeSpheresScene()
	cam := s.Camera(200, 100)

	// With a 90 degree vertical fov at aspect 2 the right edge is at x = 2
	ray := cam.GetRay(1, 0.5, nil)
	dir := ray.Direction
	if math.Abs(dir.X/-dir.Z-2) > 1e-9 {
		t.Errorf("Expected right edge slope 2, got %v", dir.X/-dir.Z)
	}
}

func TestOklchToRGB_InGamut(t *testing.T) {
	for hue := 0.0; hue < 360; hue += 30 {
		c := oklchToRGB(0.65, 0.25, hue)
		for axis := 0; axis < 3; axis++ {
			if v := c.Axis(axis); v < 0 || v > 1 {
				t.Errorf("hue %v: component %d = %v out of [0,1]", hue, axis, v)
			}
		}
	}
}

func TestScene_IntegratorChoice(t *testing.T) {
	if _, ok := NewThreeSpheresScene().Integrator().(*integrator.FlatIntegrator); !ok {
		t.Error("Expected the unlit scene to use the flat integrator")
	}
	if _, ok := NewDefaultScene().Integrator().(*integrator.PathTracingIntegrator); !ok {
		t.Error("Expected the default scene to be path traced")
	}
}
