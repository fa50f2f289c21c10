package integrator

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-live-pathtracer/pkg/core"
)

// PathTracingIntegrator implements unidirectional path tracing with
// material-driven scattering
type PathTracingIntegrator struct {
	background Background

	// Bounces before Russian roulette may end a path; 0 disables it
	rrMinBounces int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{background: background}
}

// WithRussianRoulette enables probabilistic path termination after minBounces
func (pt *PathTracingIntegrator) WithRussianRoulette(minBounces int) *PathTracingIntegrator {
	pt.rrMinBounces = minBounces
	return pt
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, depth int, random *rand.Rand) core.Vec3 {
	return pt.rayColor(ray, world, depth, 0, core.NewVec3(1, 1, 1), random)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world core.Hittable, depth, bounce int, throughput core.Vec3, random *rand.Rand) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	shouldTerminate, rrCompensation := pt.applyRussianRoulette(bounce, throughput, random)
	if shouldTerminate {
		return core.Vec3{}
	}

	hit, isHit := closestHit(world, ray)
	if !isHit {
		return pt.background.Color(ray).Multiply(rrCompensation)
	}
	if hit.Material == nil {
		return core.Vec3{}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		return core.Vec3{}
	}

	newThroughput := throughput.MultiplyVec(scatter.Attenuation)
	incoming := pt.rayColor(scatter.Scattered, world, depth-1, bounce+1, newThroughput, random)
	return scatter.Attenuation.MultiplyVec(incoming).Multiply(rrCompensation)
}

// applyRussianRoulette determines if a path should end and returns the
// compensation factor for surviving paths
func (pt *PathTracingIntegrator) applyRussianRoulette(bounce int, throughput core.Vec3, random *rand.Rand) (bool, float64) {
	if pt.rrMinBounces <= 0 || bounce < pt.rrMinBounces {
		return false, 1.0
	}

	// survivalProb in [0.5, 0.95] keeps compensation between 1.05x and 2x
	survivalProb := math.Min(0.95, math.Max(0.5, luminance(throughput)))
	if random.Float64() > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}

func luminance(c core.Vec3) float64 {
	return 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
}
