package terrain

import (
	"tilegen/internal/core"
	pcore "tilegen/pkg/core"
)

const scoreNoise = 0.1

// Direction is a unit step along one grid axis.
type Direction struct {
	DX, DY int
}

// Left returns d rotated 90° counter-clockwise.
func (d Direction) Left() Direction { return Direction{DX: -d.DY, DY: d.DX} }

// Right returns d rotated 90° clockwise.
func (d Direction) Right() Direction { return Direction{DX: d.DY, DY: -d.DX} }

// Cardinals lists the four axis directions in canonical order.
var Cardinals = [4]Direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// SourceCount returns the number of source attempts for a w×h map: the
// truncated product w·h·density, never less than one.
func SourceCount(w, h int, density float64) int {
	n := int(float64(w) * float64(h) * density)
	if n < 1 {
		n = 1
	}
	return n
}

// Carver places water sources and traces their branches into a grid.
type Carver struct {
	p      WaterParams
	policy TurnPolicy
	grid   *core.ByteGrid
	height *HeightField
	rng    *pcore.RNG
}

// NewCarver binds the water parameters to the grid it mutates and the height
// field it reads.
func NewCarver(p WaterParams, policy TurnPolicy, g *core.ByteGrid, hf *HeightField, rng *pcore.RNG) *Carver {
	return &Carver{p: p, policy: policy, grid: g, height: hf, rng: rng}
}

// Carve runs every source attempt and returns how many sources were placed.
func (c *Carver) Carve() int {
	placed := 0
	n := SourceCount(c.grid.W, c.grid.H, c.p.Density)
	for i := 0; i < n; i++ {
		if _, _, ok := c.Source(); ok {
			placed++
		}
	}
	return placed
}

// Source performs one source attempt. A source drawn on an existing water
// tile is dropped without retry and reports ok=false.
func (c *Carver) Source() (x, y int, ok bool) {
	x = c.rng.IntN(c.grid.W)
	y = c.rng.IntN(c.grid.H)
	if TileKind(c.grid.At(x, y)) == Water {
		return x, y, false
	}
	c.grid.Set(x, y, uint8(Water))

	dirs := Cardinals
	for k := len(dirs) - 1; k > 0; k-- {
		j := c.rng.IntN(k + 1)
		dirs[k], dirs[j] = dirs[j], dirs[k]
	}
	for b := 0; b < 2; b++ {
		c.walk(x, y, dirs[b])
	}
	return x, y, true
}

func (c *Carver) walk(x, y int, d Direction) {
	for {
		if c.rng.Float64() < c.p.StopProb {
			return
		}
		var ok bool
		if c.policy == TurnFixed {
			d, ok = c.turnFixed(x, y, d)
		} else {
			d, ok = c.turnDownhill(x, y, d)
		}
		if !ok {
			return
		}
		x += d.DX
		y += d.DY
		c.grid.Set(x, y, uint8(Water))
	}
}

// turnDownhill scores straight, left and right by elevation drop plus noise
// and keeps the first strictly highest candidate.
func (c *Carver) turnDownhill(x, y int, d Direction) (Direction, bool) {
	here := c.height.At(x, y)
	best := d
	bestScore := 0.0
	found := false
	for _, cand := range [3]Direction{d, d.Left(), d.Right()} {
		nx, ny := x+cand.DX, y+cand.DY
		if !c.grid.InBounds(nx, ny) {
			continue
		}
		score := 1.0 + c.p.HeightInfluence*(here-c.height.At(nx, ny))
		score += (c.rng.Float64()*2 - 1) * scoreNoise
		if !found || score > bestScore {
			best, bestScore, found = cand, score, true
		}
	}
	return best, found
}

// turnFixed rotates left with probability TurnProb and right with the same
// probability, then stops if the next cell leaves the grid.
func (c *Carver) turnFixed(x, y int, d Direction) (Direction, bool) {
	u := c.rng.Float64()
	if u < c.p.TurnProb {
		d = d.Left()
	} else if u < c.p.TurnProb*2 {
		d = d.Right()
	}
	return d, c.grid.InBounds(x+d.DX, y+d.DY)
}
