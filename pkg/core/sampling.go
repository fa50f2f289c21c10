package core

import (
	"math"
	"math/rand/v2"
)

const seedStream = 0x9e3779b97f4a7c15

// NewRandom returns a generator seeded with seed
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedStream))
}

// SeedPCG resets src to the state NewRandom(seed) starts from, so a worker can
// reuse one generator across pixels.
func SeedPCG(src *rand.PCG, seed uint64) {
	src.Seed(seed, seed^seedStream)
}

// PixelSeed derives a deterministic seed for one pixel of one frame. The same
// (row, column, frame, samplesPerPixel) always yields the same seed.
func PixelSeed(row, column int, frame uint64, samplesPerPixel int) uint64 {
	h := splitmix64(uint64(row))
	h = splitmix64(h ^ uint64(column))
	h = splitmix64(h ^ frame)
	return splitmix64(h ^ uint64(samplesPerPixel))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// RandomInUnitSphere generates a random point inside a unit sphere
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
			Z: 2*random.Float64() - 1,
		}
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a uniformly distributed direction on the unit sphere
func RandomUnitVector(random *rand.Rand) Vec3 {
	z := 1.0 - 2.0*random.Float64()
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * random.Float64()
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 0)
		if p.Dot(p) < 1.0 {
			return p
		}
	}
}

// RandomVec3 returns a vector with components uniform in [lo, hi)
func RandomVec3(random *rand.Rand, lo, hi float64) Vec3 {
	return NewVec3(
		lo+(hi-lo)*random.Float64(),
		lo+(hi-lo)*random.Float64(),
		lo+(hi-lo)*random.Float64(),
	)
}
