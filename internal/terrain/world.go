package terrain

import (
	"tilegen/internal/core"
	pcore "tilegen/pkg/core"
)

// Stage identifies which part of the pipeline the next Step runs.
type Stage uint8

const (
	StageForest Stage = iota
	StageWater
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageForest:
		return "forest"
	case StageWater:
		return "water"
	default:
		return "done"
	}
}

// World runs the generation pipeline one step at a time: each Step applies a
// forest growth iteration, then a single water source attempt. Running a World
// to completion yields the same tiles as Generate with the same seed.
type World struct {
	cfg Config

	grid   *core.ByteGrid
	forest *ForestGrower
	height *HeightField
	carver *Carver
	rng    *pcore.RNG
	seed   int64

	stage     Stage
	iteration int
	attempts  int
	sources   int
	placed    int
}

// NewWorld validates cfg and allocates the pipeline buffers. Call Reset before
// stepping.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &World{
		cfg:     cfg,
		grid:    core.NewByteGrid(cfg.Width, cfg.Height),
		forest:  NewForestGrower(cfg.Forest, cfg.Width, cfg.Height),
		sources: SourceCount(cfg.Width, cfg.Height, cfg.Water.Density),
		stage:   StageDone,
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "terrain" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells exposes the tile buffer.
func (w *World) Cells() []uint8 { return w.grid.Cells() }

// Grid exposes the tile grid.
func (w *World) Grid() *core.ByteGrid { return w.grid }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// HeightField exposes the elevation values, or nil before Reset.
func (w *World) HeightField() []float64 {
	if w.height == nil {
		return nil
	}
	return w.height.Values()
}

// Stage reports the stage the next Step will run.
func (w *World) Stage() Stage { return w.stage }

// Iteration reports how many forest growth iterations have run.
func (w *World) Iteration() int { return w.iteration }

// Sources reports the attempted and placed water source counts.
func (w *World) Sources() (attempted, placed int) { return w.attempts, w.placed }

// Seed returns the seed of the last Reset.
func (w *World) Seed() int64 { return w.seed }

// Done reports whether every stage has finished.
func (w *World) Done() bool { return w.stage == StageDone }

// Reset restarts generation from a fresh RNG. A zero seed uses the configured
// seed.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.seed = seed
	w.start(pcore.NewRNG(seed))
}

// start seeds the forest and draws the height field from rng. Growth consumes
// no randomness, so drawing the height field here keeps the draw order of a
// one-shot generation.
func (w *World) start(rng *pcore.RNG) {
	w.rng = rng
	w.grid.Clear()
	w.iteration = 0
	w.attempts = 0
	w.placed = 0

	w.forest.Seed(w.grid, rng)
	w.height = NewHeightField(w.cfg.Width, w.cfg.Height, w.cfg.HeightMode, rng)
	w.carver = NewCarver(w.cfg.Water, w.cfg.TurnPolicy, w.grid, w.height, rng)

	w.stage = StageForest
	w.advance()
}

// Step runs the next unit of work. It is a no-op once Done.
func (w *World) Step() {
	switch w.stage {
	case StageForest:
		w.forest.Step(w.grid)
		w.iteration++
	case StageWater:
		if _, _, ok := w.carver.Source(); ok {
			w.placed++
		}
		w.attempts++
	default:
		return
	}
	w.advance()
}

func (w *World) advance() {
	if w.stage == StageForest && w.iteration >= w.cfg.Forest.Iterations {
		w.stage = StageWater
	}
	if w.stage == StageWater && w.attempts >= w.sources {
		w.stage = StageDone
	}
}

func init() {
	core.Register("terrain", func(cfg map[string]string) (core.Sim, error) {
		w, err := NewWorld(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
