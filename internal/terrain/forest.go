package terrain

import (
	"tilegen/internal/core"
	pcore "tilegen/pkg/core"
)

// ForestGrower seeds forest tiles and grows them with a synchronous Moore
// neighbourhood birth rule. Grown tiles never revert.
type ForestGrower struct {
	p   ForestParams
	nxt *core.ByteGrid
}

// NewForestGrower prepares the automaton and its scratch buffer for a w×h grid.
func NewForestGrower(p ForestParams, w, h int) *ForestGrower {
	return &ForestGrower{p: p, nxt: core.NewByteGrid(w, h)}
}

// Seed turns each cell Forest with probability SeedProb.
func (f *ForestGrower) Seed(g *core.ByteGrid, rng *pcore.RNG) {
	cells := g.Cells()
	for i := range cells {
		if rng.Float64() < f.p.SeedProb {
			cells[i] = uint8(Forest)
		}
	}
}

// Step applies one growth iteration. Every cell reads the same snapshot.
func (f *ForestGrower) Step(g *core.ByteGrid) {
	f.nxt.CopyFrom(g)
	cur := g.Cells()
	nxt := f.nxt.Cells()
	threshold := f.p.BirthThreshold
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := y*g.W + x
			if TileKind(cur[idx]) != Plain {
				continue
			}
			if ForestNeighbors(g, x, y) >= threshold {
				nxt[idx] = uint8(Forest)
			}
		}
	}
	g.Swap(f.nxt)
}

// Grow seeds the grid and runs all configured iterations.
func (f *ForestGrower) Grow(g *core.ByteGrid, rng *pcore.RNG) {
	f.Seed(g, rng)
	for i := 0; i < f.p.Iterations; i++ {
		f.Step(g)
	}
}

// ForestNeighbors counts Forest tiles among the 8 Moore neighbours of (x, y).
// Neighbours outside the grid are absent.
func ForestNeighbors(g *core.ByteGrid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			if dx == 0 && dy == 0 {
				continue
			}
			if TileKind(g.At(nx, ny)) == Forest {
				n++
			}
		}
	}
	return n
}
