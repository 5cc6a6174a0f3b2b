package terrain

import (
	"tilegen/internal/core"
	pcore "tilegen/pkg/core"
)

// Result is a finished map together with water source statistics.
type Result struct {
	Grid           *core.ByteGrid
	SourceAttempts int
	SourcesPlaced  int
}

// Generate builds a map using an RNG seeded from cfg.Seed.
func Generate(cfg Config) (Result, error) {
	return GenerateWithRNG(cfg, pcore.NewRNG(cfg.Seed))
}

// GenerateWithRNG builds a map drawing every random value from rng. The
// caller must not share rng with a concurrent generation. A nil rng falls back
// to cfg.Seed.
func GenerateWithRNG(cfg Config, rng *pcore.RNG) (Result, error) {
	w, err := NewWorld(cfg)
	if err != nil {
		return Result{}, err
	}
	if rng == nil {
		rng = pcore.NewRNG(cfg.Seed)
	}
	w.seed = cfg.Seed
	w.start(rng)
	for !w.Done() {
		w.Step()
	}
	return Result{Grid: w.grid, SourceAttempts: w.attempts, SourcesPlaced: w.placed}, nil
}
