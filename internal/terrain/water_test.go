package terrain

import (
	"testing"

	"tilegen/internal/core"
	pcore "tilegen/pkg/core"
)

func TestDirectionRotation(t *testing.T) {
	east := Direction{1, 0}
	if got := east.Left(); got != (Direction{0, 1}) {
		t.Fatalf("east.Left() = %v", got)
	}
	if got := east.Right(); got != (Direction{0, -1}) {
		t.Fatalf("east.Right() = %v", got)
	}
	for _, d := range Cardinals {
		if d.Left().Right() != d {
			t.Fatalf("left then right should restore %v", d)
		}
		if d.Left().Left() != (Direction{-d.DX, -d.DY}) {
			t.Fatalf("two lefts should reverse %v", d)
		}
	}
}

func TestSourceCount(t *testing.T) {
	cases := []struct {
		w, h    int
		density float64
		want    int
	}{
		{10, 10, 0, 1},
		{10, 10, 0.001, 1},
		{10, 10, 0.05, 5},
		{75, 120, 0.002, 18},
		{3, 3, 1, 9},
	}
	for _, c := range cases {
		if got := SourceCount(c.w, c.h, c.density); got != c.want {
			t.Fatalf("SourceCount(%d,%d,%v) = %d, want %d", c.w, c.h, c.density, got, c.want)
		}
	}
}

func flatField(w, h int, v float64) *HeightField {
	vals := make([]float64, w*h)
	for i := range vals {
		vals[i] = v
	}
	return &HeightField{W: w, H: h, vals: vals, tmp: make([]float64, w*h)}
}

func TestTurnDownhillPrefersSteepDrop(t *testing.T) {
	g := core.NewByteGrid(3, 3)
	hf := flatField(3, 3, 0.5)
	hf.vals[2*3+1] = 0 // (1,2) is the lowest neighbour of the centre
	c := NewCarver(WaterParams{StopProb: 0.5, HeightInfluence: 10}, TurnHeightBiased, g, hf, pcore.NewRNG(1))

	for i := 0; i < 50; i++ {
		d, ok := c.turnDownhill(1, 1, Direction{1, 0})
		if !ok {
			t.Fatal("expected a candidate")
		}
		if d != (Direction{0, 1}) {
			t.Fatalf("expected left turn towards (1,2), got %v", d)
		}
	}
}

func TestTurnDownhillNeverReverses(t *testing.T) {
	g := core.NewByteGrid(3, 3)
	hf := flatField(3, 3, 0.5)
	hf.vals[1*3+0] = 0 // behind a walker heading east from the centre
	c := NewCarver(WaterParams{StopProb: 0.5, HeightInfluence: 10}, TurnHeightBiased, g, hf, pcore.NewRNG(2))

	for i := 0; i < 50; i++ {
		d, _ := c.turnDownhill(1, 1, Direction{1, 0})
		if d == (Direction{-1, 0}) {
			t.Fatal("walker reversed direction")
		}
	}
}

func TestTurnDownhillStopsWithoutCandidates(t *testing.T) {
	g := core.NewByteGrid(1, 1)
	c := NewCarver(WaterParams{StopProb: 0.5}, TurnHeightBiased, g, flatField(1, 1, 0), pcore.NewRNG(1))
	if _, ok := c.turnDownhill(0, 0, Direction{0, 1}); ok {
		t.Fatal("1x1 grid should offer no candidate")
	}
}

func TestTurnFixedRespectsBounds(t *testing.T) {
	g := core.NewByteGrid(4, 1)
	c := NewCarver(WaterParams{StopProb: 0.5, TurnProb: 0}, TurnFixed, g, flatField(4, 1, 0), pcore.NewRNG(1))
	if d, ok := c.turnFixed(1, 0, Direction{1, 0}); !ok || d != (Direction{1, 0}) {
		t.Fatalf("turn_prob=0 should go straight, got %v ok=%v", d, ok)
	}
	if _, ok := c.turnFixed(3, 0, Direction{1, 0}); ok {
		t.Fatal("walking off the east edge should stop")
	}
}

func TestSourceOnWaterIsSkipped(t *testing.T) {
	g := core.NewByteGrid(1, 1)
	c := NewCarver(WaterParams{StopProb: 1}, TurnHeightBiased, g, flatField(1, 1, 0), pcore.NewRNG(4))

	if _, _, ok := c.Source(); !ok {
		t.Fatal("first source on a dry tile must be placed")
	}
	if _, _, ok := c.Source(); ok {
		t.Fatal("source on an existing water tile must be skipped")
	}
}

func TestCarveStaysInBounds(t *testing.T) {
	rng := pcore.NewRNG(2024)
	policies := []TurnPolicy{TurnHeightBiased, TurnFixed}
	for trial := 0; trial < 60; trial++ {
		w := 1 + rng.IntN(20)
		h := 1 + rng.IntN(20)
		p := WaterParams{
			Density:         rng.Float64() * 0.2,
			TurnProb:        rng.Float64() * 0.5,
			StopProb:        0.01 + rng.Float64()*0.5,
			HeightInfluence: rng.Float64() * 5,
		}
		g := core.NewByteGrid(w, h)
		hf := NewHeightField(w, h, HeightSmoothed, rng)
		placed := NewCarver(p, policies[trial%2], g, hf, rng).Carve()

		if n := SourceCount(w, h, p.Density); placed < 1 || placed > n {
			t.Fatalf("trial %d: placed %d sources, want within [1,%d]", trial, placed, n)
		}
		if len(g.Cells()) != w*h {
			t.Fatalf("trial %d: grid resized", trial)
		}
		for i, v := range g.Cells() {
			if TileKind(v) > Water {
				t.Fatalf("trial %d: invalid tile %d at %d", trial, v, i)
			}
		}
	}
}
