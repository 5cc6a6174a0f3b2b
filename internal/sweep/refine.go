package sweep

import (
	"context"
	"fmt"
	"math"
	"sync"

	"tilegen/internal/terrain"
)

// Record is an improvement accepted by Refine.
type Record struct {
	Pass      int
	Parameter string
	Value     string
	Result    Result
}

type axis struct {
	name   string
	values []float64
	get    func(terrain.Config) float64
	set    func(*terrain.Config, float64)
	format func(float64) string
}

var refineAxes = []axis{
	{
		name:   "seed_prob",
		values: []float64{0.01, 0.02, 0.04, 0.06, 0.08, 0.1, 0.15, 0.2, 0.3},
		get:    func(c terrain.Config) float64 { return c.Forest.SeedProb },
		set:    func(c *terrain.Config, v float64) { c.Forest.SeedProb = v },
	},
	{
		name:   "birth_threshold",
		values: []float64{1, 2, 3, 4, 5},
		get:    func(c terrain.Config) float64 { return float64(c.Forest.BirthThreshold) },
		set:    func(c *terrain.Config, v float64) { c.Forest.BirthThreshold = int(v) },
		format: func(v float64) string { return fmt.Sprintf("%d", int(v)) },
	},
	{
		name:   "iterations",
		values: []float64{0, 1, 2, 3, 4, 6},
		get:    func(c terrain.Config) float64 { return float64(c.Forest.Iterations) },
		set:    func(c *terrain.Config, v float64) { c.Forest.Iterations = int(v) },
		format: func(v float64) string { return fmt.Sprintf("%d", int(v)) },
	},
	{
		name:   "density",
		values: []float64{0.0005, 0.001, 0.002, 0.003, 0.005, 0.008, 0.012},
		get:    func(c terrain.Config) float64 { return c.Water.Density },
		set:    func(c *terrain.Config, v float64) { c.Water.Density = v },
	},
	{
		name:   "stop_prob",
		values: []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.032},
		get:    func(c terrain.Config) float64 { return c.Water.StopProb },
		set:    func(c *terrain.Config, v float64) { c.Water.StopProb = v },
	},
}

// Refine runs a coordinate-descent search from start: each pass tries every
// listed value of one parameter at a time and keeps the best improvement.
// It stops after passes rounds or when a pass changes nothing.
func Refine(ctx context.Context, start terrain.Config, seeds []int64, passes, workers int, target Target) (terrain.Config, Result, []Record, error) {
	if len(seeds) == 0 {
		return start, Result{}, nil, fmt.Errorf("sweep: no seeds")
	}
	if passes <= 0 {
		passes = 1
	}
	if workers <= 0 {
		workers = 1
	}

	current := start
	best, err := measure(current, seeds, target)
	if err != nil {
		return start, Result{}, nil, err
	}
	records := []Record{{Parameter: "baseline", Result: best}}

	for pass := 1; pass <= passes; pass++ {
		improved := false
		for _, ax := range refineAxes {
			if err := ctx.Err(); err != nil {
				return current, best, records, err
			}
			cfg, res, value, changed := evaluateAxis(current, best, ax, seeds, workers, target)
			if !changed {
				continue
			}
			current, best = cfg, res
			records = append(records, Record{Pass: pass, Parameter: ax.name, Value: value, Result: res})
			improved = true
		}
		if !improved {
			break
		}
	}
	return current, best, records, nil
}

func evaluateAxis(cfg terrain.Config, baseline Result, ax axis, seeds []int64, workers int, target Target) (terrain.Config, Result, string, bool) {
	type candidate struct {
		result Result
		valid  bool
	}
	candidates := make([]candidate, len(ax.values))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for idx, value := range ax.values {
		if math.Abs(value-ax.get(cfg)) <= 1e-9 {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, v float64) {
			defer wg.Done()
			defer func() { <-sem }()
			trial := cfg
			ax.set(&trial, v)
			res, err := measure(trial, seeds, target)
			if err != nil {
				return
			}
			candidates[i] = candidate{result: res, valid: true}
		}(idx, value)
	}
	wg.Wait()

	bestCfg, best := cfg, baseline
	bestValue, changed := "", false
	for idx, value := range ax.values {
		cand := candidates[idx]
		if !cand.valid || cand.result.Score >= best.Score {
			continue
		}
		trial := cfg
		ax.set(&trial, value)
		bestCfg, best, changed = trial, cand.result, true
		if ax.format != nil {
			bestValue = ax.format(value)
		} else {
			bestValue = fmt.Sprintf("%g", value)
		}
	}
	return bestCfg, best, bestValue, changed
}
