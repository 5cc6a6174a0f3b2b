// Package sweep evaluates terrain parameter combinations across many seeds and
// ranks them by how closely their tile coverage matches a target.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"tilegen/internal/terrain"
	pcore "tilegen/pkg/core"
)

// ParamSet is one point of the sweep grid.
type ParamSet struct {
	SeedProb       float64
	BirthThreshold int
	Density        float64
}

func (p ParamSet) String() string {
	return fmt.Sprintf("seed_prob=%.3f birth=%d density=%.4f", p.SeedProb, p.BirthThreshold, p.Density)
}

// Grid lists the values swept along each axis.
type Grid struct {
	SeedProbs       []float64
	BirthThresholds []int
	Densities       []float64
}

// Sets expands the grid into every combination.
func (g Grid) Sets() []ParamSet {
	var sets []ParamSet
	for _, sp := range g.SeedProbs {
		for _, bt := range g.BirthThresholds {
			for _, d := range g.Densities {
				sets = append(sets, ParamSet{SeedProb: sp, BirthThreshold: bt, Density: d})
			}
		}
	}
	return sets
}

// Target is the desired share of forest and water tiles.
type Target struct {
	Forest float64
	Water  float64
}

// Result aggregates the runs of one parameter set.
type Result struct {
	Params        ParamSet
	Runs          int
	Forest        float64
	Water         float64
	SourcesPlaced float64
	Score         float64
}

// Run generates a map for every (set, seed) pair on a pool of workers and
// returns the results ordered best first. Each job owns its RNG.
func Run(ctx context.Context, base terrain.Config, sets []ParamSet, seeds []int64, workers int, target Target) ([]Result, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("sweep: no seeds")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type outcome struct {
		res Result
		err error
	}
	jobs := make(chan ParamSet)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				res, err := runScenario(base, params, seeds, target)
				results <- outcome{res: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, params := range sets {
			select {
			case jobs <- params:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []Result
	var firstErr error
	for out := range results {
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
			}
			continue
		}
		all = append(all, out.res)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score < all[j].Score
		}
		return all[i].Params.String() < all[j].Params.String()
	})
	return all, nil
}

func runScenario(base terrain.Config, params ParamSet, seeds []int64, target Target) (Result, error) {
	cfg := base
	cfg.Forest.SeedProb = params.SeedProb
	cfg.Forest.BirthThreshold = params.BirthThreshold
	cfg.Water.Density = params.Density
	res, err := measure(cfg, seeds, target)
	if err != nil {
		return Result{}, fmt.Errorf("sweep %s: %w", params, err)
	}
	return res, nil
}

// measure averages coverage of cfg over seeds. The returned Params reflect cfg.
func measure(cfg terrain.Config, seeds []int64, target Target) (Result, error) {
	res := Result{Params: paramsOf(cfg)}
	tiles := float64(cfg.Width * cfg.Height)
	for _, seed := range seeds {
		cfg.Seed = seed
		out, err := terrain.GenerateWithRNG(cfg, pcore.NewRNG(seed))
		if err != nil {
			return Result{}, err
		}
		counts := terrain.Count(out.Grid.Cells())
		res.Forest += float64(counts.Forest) / tiles
		res.Water += float64(counts.Water) / tiles
		res.SourcesPlaced += float64(out.SourcesPlaced)
		res.Runs++
	}
	n := float64(res.Runs)
	res.Forest /= n
	res.Water /= n
	res.SourcesPlaced /= n
	res.Score = math.Abs(res.Forest-target.Forest) + math.Abs(res.Water-target.Water)
	return res, nil
}

func paramsOf(cfg terrain.Config) ParamSet {
	return ParamSet{SeedProb: cfg.Forest.SeedProb, BirthThreshold: cfg.Forest.BirthThreshold, Density: cfg.Water.Density}
}
