package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"tilegen/internal/sweep"
	"tilegen/internal/terrain"
)

func main() {
	base := terrain.DefaultConfig()
	base.Bind(flag.CommandLine)
	runs := flag.Int("runs", 8, "seeds evaluated per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "results to print")
	passes := flag.Int("passes", 0, "coordinate-descent passes run from the best grid result")
	forest := flag.Float64("target_forest", 0.35, "desired share of forest tiles")
	water := flag.Float64("target_water", 0.08, "desired share of water tiles")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := base.Validate(); err != nil {
		log.Error("invalid base config", "err", err)
		os.Exit(2)
	}

	grid := sweep.Grid{
		SeedProbs:       []float64{0.02, 0.05, 0.1, 0.15, 0.2},
		BirthThresholds: []int{1, 2, 3, 4},
		Densities:       []float64{0.001, 0.002, 0.004, 0.008},
	}
	sets := grid.Sets()
	seeds := make([]int64, *runs)
	for i := range seeds {
		seeds[i] = base.Seed + int64(i)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	target := sweep.Target{Forest: *forest, Water: *water}
	log.Info("sweeping", "sets", len(sets), "runs", len(seeds), "workers", *workers, "w", base.Width, "h", base.Height)
	start := time.Now()
	results, err := sweep.Run(ctx, base, sets, seeds, *workers, target)
	if err != nil {
		log.Error("sweep failed", "err", err)
		os.Exit(1)
	}

	fmt.Printf("Top %d results (elapsed %s):\n", min(*top, len(results)), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		r := results[i]
		fmt.Printf("%2d) score=%.4f forest=%.3f water=%.3f sources=%.1f %s\n",
			i+1, r.Score, r.Forest, r.Water, r.SourcesPlaced, r.Params)
	}

	if *passes <= 0 || len(results) == 0 {
		return
	}
	from := base
	p := results[0].Params
	from.Forest.SeedProb = p.SeedProb
	from.Forest.BirthThreshold = p.BirthThreshold
	from.Water.Density = p.Density
	cfg, best, trace, err := sweep.Refine(ctx, from, seeds, *passes, *workers, target)
	if err != nil {
		log.Error("refine failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("\nRefined: score=%.4f forest=%.3f water=%.3f\n", best.Score, best.Forest, best.Water)
	for _, rec := range trace[1:] {
		fmt.Printf("  pass %d: %s=%s -> score=%.4f\n", rec.Pass, rec.Parameter, rec.Value, rec.Result.Score)
	}
	fmt.Printf("  -seed_prob %g -birth_threshold %d -iterations %d -density %g -stop_prob %g\n",
		cfg.Forest.SeedProb, cfg.Forest.BirthThreshold, cfg.Forest.Iterations, cfg.Water.Density, cfg.Water.StopProb)
}
