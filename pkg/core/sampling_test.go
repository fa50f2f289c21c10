package core

import (
	"math/rand/v2"
	"testing"
)

func TestPixelSeed_Deterministic(t *testing.T) {
	a := PixelSeed(10, 20, 3, 8)
	b := PixelSeed(10, 20, 3, 8)
	if a != b {
		t.Fatalf("Expected identical seeds, got %d and %d", a, b)
	}

	variants := []uint64{
		PixelSeed(11, 20, 3, 8),
		PixelSeed(10, 21, 3, 8),
		PixelSeed(10, 20, 4, 8),
		PixelSeed(10, 20, 3, 9),
		PixelSeed(20, 10, 3, 8),
	}
	for i, v := range variants {
		if v == a {
			t.Errorf("variant %d collided with base seed", i)
		}
	}
}

func TestPixelSeed_FewCollisions(t *testing.T) {
	seen := make(map[uint64]struct{})
	for frame := uint64(0); frame < 4; frame++ {
		for row := 0; row < 64; row++ {
			for col := 0; col < 64; col++ {
				seen[PixelSeed(row, col, frame, 4)] = struct{}{}
			}
		}
	}
	if len(seen) != 4*64*64 {
		t.Errorf("Expected %d distinct seeds, got %d", 4*64*64, len(seen))
	}
}

func TestRandomInUnitShapes(t *testing.T) {
	random := NewRandom(42)
	for i := 0; i < 1000; i++ {
		if p := RandomInUnitSphere(random); p.LengthSquared() >= 1 {
			t.Fatalf("point %v outside unit sphere", p)
		}
		if p := RandomInUnitDisk(random); p.LengthSquared() >= 1 || p.Z != 0 {
			t.Fatalf("point %v outside unit disk", p)
		}
		if v := RandomUnitVector(random); v.Length() < 1-1e-9 || v.Length() > 1+1e-9 {
			t.Fatalf("vector %v is not unit length", v)
		}
	}
}

func TestSeedPCG_MatchesNewRandom(t *testing.T) {
	src := rand.NewPCG(1, 2)
	reused := rand.New(src)
	reused.Float64()

	SeedPCG(src, 77)
	fresh := NewRandom(77)
	for i := 0; i < 10; i++ {
		if a, b := reused.Uint64(), fresh.Uint64(); a != b {
			t.Fatalf("draw %d: reseeded %d != fresh %d", i, a, b)
		}
	}
}
