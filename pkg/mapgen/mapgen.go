// Package mapgen is the host-facing entry point: it generates a terrain tile
// map and hands ownership of the tile buffer to the caller.
package mapgen

import (
	"time"

	"tilegen/internal/terrain"
	"tilegen/pkg/core"
	"tilegen/pkg/packing"
)

type (
	// TileKind is the terrain category of one cell.
	TileKind = terrain.TileKind
	// ForestParams tunes forest seeding and growth.
	ForestParams = terrain.ForestParams
	// WaterParams tunes water sources and walks.
	WaterParams = terrain.WaterParams
	// TurnPolicy selects how water walks turn.
	TurnPolicy = terrain.TurnPolicy
	// HeightMode selects the base elevation draw.
	HeightMode = terrain.HeightMode
	// TileCounts tallies tiles by kind.
	TileCounts = terrain.TileCounts
)

const (
	Plain  = terrain.Plain
	Forest = terrain.Forest
	Water  = terrain.Water

	TurnHeightBiased = terrain.TurnHeightBiased
	TurnFixed        = terrain.TurnFixed

	HeightSmoothed = terrain.HeightSmoothed
	HeightSimplex  = terrain.HeightSimplex
)

var (
	ErrInvalidDimensions = terrain.ErrInvalidDimensions
	ErrResourceExhausted = terrain.ErrResourceExhausted
	ErrInvalidParams     = terrain.ErrInvalidParams
)

type options struct {
	seed    int64
	hasSeed bool
	rng     *core.RNG
	height  HeightMode
	turn    TurnPolicy
}

// Option customizes a Generate call.
type Option func(*options)

// WithSeed makes generation reproducible. Without a seed or RNG the current
// time is used.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed, o.hasSeed = seed, true }
}

// WithRNG draws all randomness from r. It takes precedence over WithSeed.
func WithRNG(r *core.RNG) Option {
	return func(o *options) { o.rng = r }
}

// WithTurnPolicy selects the water turning policy.
func WithTurnPolicy(p TurnPolicy) Option {
	return func(o *options) { o.turn = p }
}

// WithHeightMode selects the base elevation draw.
func WithHeightMode(m HeightMode) Option {
	return func(o *options) { o.height = m }
}

// Map is a finished tile grid owned by the caller until Release.
type Map struct {
	width, height int
	seed          int64
	tiles         []uint8
	packed        []byte
	attempts      int
	placed        int
}

// Generate builds a width×height map. Nothing is allocated when the
// dimensions or parameters are rejected, and no partial map is returned.
func Generate(width, height int, forest ForestParams, water WaterParams, opts ...Option) (*Map, error) {
	o := options{height: HeightSmoothed, turn: TurnHeightBiased}
	for _, opt := range opts {
		opt(&o)
	}
	seed := o.seed
	if !o.hasSeed {
		seed = time.Now().UnixNano()
	}
	cfg := terrain.Config{
		Width:      width,
		Height:     height,
		Seed:       seed,
		Forest:     forest,
		Water:      water,
		HeightMode: o.height,
		TurnPolicy: o.turn,
	}
	rng := o.rng
	if rng == nil {
		rng = core.NewRNG(seed)
	}
	res, err := terrain.GenerateWithRNG(cfg, rng)
	if err != nil {
		return nil, err
	}
	return &Map{
		width:    width,
		height:   height,
		seed:     seed,
		tiles:    res.Grid.Cells(),
		attempts: res.SourceAttempts,
		placed:   res.SourcesPlaced,
	}, nil
}

// Width returns the map width, or 0 after Release.
func (m *Map) Width() int {
	if m == nil || m.tiles == nil {
		return 0
	}
	return m.width
}

// Height returns the map height, or 0 after Release.
func (m *Map) Height() int {
	if m == nil || m.tiles == nil {
		return 0
	}
	return m.height
}

// Seed returns the seed the map was generated from. It is meaningless when
// the map was generated WithRNG.
func (m *Map) Seed() int64 {
	if m == nil {
		return 0
	}
	return m.seed
}

// Tiles returns the row-major tile values. The slice aliases the map's buffer
// and is nil after Release.
func (m *Map) Tiles() []uint8 {
	if m == nil {
		return nil
	}
	return m.tiles
}

// At returns the tile at (x, y). ok is false when (x, y) lies outside the
// map or the map has been released.
func (m *Map) At(x, y int) (kind TileKind, ok bool) {
	if m == nil || m.tiles == nil || x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, false
	}
	return TileKind(m.tiles[y*m.width+x]), true
}

// Counts tallies the map's tiles.
func (m *Map) Counts() TileCounts {
	return terrain.Count(m.Tiles())
}

// Sources reports the attempted and placed water source counts.
func (m *Map) Sources() (attempted, placed int) {
	if m == nil {
		return 0, 0
	}
	return m.attempts, m.placed
}

// Packed returns the 3-bit packed encoding and its size in bytes. The buffer
// is cached on the map and released with it.
func (m *Map) Packed() ([]byte, int) {
	if m == nil || m.tiles == nil {
		return nil, 0
	}
	if m.packed == nil {
		m.packed = packing.Pack(m.tiles)
	}
	return m.packed, len(m.packed)
}

// Release drops the map's buffers. It is safe to call more than once and on a
// nil map.
func (m *Map) Release() {
	if m == nil {
		return
	}
	m.tiles = nil
	m.packed = nil
}
