package terrain

import (
	"testing"

	"tilegen/internal/core"
	pcore "tilegen/pkg/core"
)

func fillForest(g *core.ByteGrid) {
	for i := range g.Cells() {
		g.Cells()[i] = uint8(Forest)
	}
}

func TestForestNeighborsInteriorAndCorner(t *testing.T) {
	g := core.NewByteGrid(5, 5)
	fillForest(g)
	g.Set(2, 2, uint8(Plain))
	g.Set(0, 0, uint8(Plain))

	if got := ForestNeighbors(g, 2, 2); got != 8 {
		t.Fatalf("interior count = %d, want 8", got)
	}
	if got := ForestNeighbors(g, 0, 0); got != 3 {
		t.Fatalf("corner count = %d, want 3", got)
	}
	if got := ForestNeighbors(g, 4, 2); got != 5 {
		t.Fatalf("edge count = %d, want 5", got)
	}

	g.Set(1, 1, uint8(Water))
	if got := ForestNeighbors(g, 2, 2); got != 7 {
		t.Fatalf("water neighbour counted as forest: %d", got)
	}
}

func TestForestStepIsSynchronous(t *testing.T) {
	g := core.NewByteGrid(5, 1)
	g.Set(0, 0, uint8(Forest))
	f := NewForestGrower(ForestParams{BirthThreshold: 1, Iterations: 1}, 5, 1)

	f.Step(g)

	want := []TileKind{Forest, Forest, Plain, Plain, Plain}
	for x, k := range want {
		if got := TileKind(g.At(x, 0)); got != k {
			t.Fatalf("cell %d = %v, want %v", x, got, k)
		}
	}
}

func TestForestSeedingExtremes(t *testing.T) {
	g := core.NewByteGrid(5, 5)
	NewForestGrower(ForestParams{SeedProb: 1}, 5, 5).Grow(g, pcore.NewRNG(1))
	if c := Count(g.Cells()); c.Forest != 25 {
		t.Fatalf("seed_prob=1 gave %d forest tiles, want 25", c.Forest)
	}

	g.Clear()
	NewForestGrower(ForestParams{SeedProb: 0, Iterations: 4, BirthThreshold: 0}, 5, 5).Seed(g, pcore.NewRNG(1))
	if c := Count(g.Cells()); c.Forest != 0 {
		t.Fatalf("seed_prob=0 seeded %d forest tiles", c.Forest)
	}
}

func TestForestZeroThresholdFillsAfterOneIteration(t *testing.T) {
	g := core.NewByteGrid(6, 4)
	g.Set(0, 0, uint8(Water))
	f := NewForestGrower(ForestParams{BirthThreshold: 0, Iterations: 1}, 6, 4)
	f.Step(g)
	c := Count(g.Cells())
	if c.Plain != 0 || c.Forest != 23 || c.Water != 1 {
		t.Fatalf("unexpected counts after one step: %+v", c)
	}
}

func TestForestGrowthIsMonotonic(t *testing.T) {
	p := ForestParams{SeedProb: 0.2, Iterations: 6, BirthThreshold: 3}
	g := core.NewByteGrid(24, 18)
	f := NewForestGrower(p, g.W, g.H)
	f.Seed(g, pcore.NewRNG(99))

	prev := append([]uint8(nil), g.Cells()...)
	for i := 0; i < p.Iterations; i++ {
		f.Step(g)
		for idx, v := range prev {
			if TileKind(v) == Forest && TileKind(g.Cells()[idx]) != Forest {
				t.Fatalf("iteration %d reverted forest at %d", i+1, idx)
			}
		}
		prev = append(prev[:0], g.Cells()...)
	}
}
