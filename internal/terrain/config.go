package terrain

import (
	"flag"
	"fmt"
	"strconv"
)

// ForestParams tunes the forest seeding and growth automaton.
type ForestParams struct {
	SeedProb       float64 `json:"seed_prob" toml:"seed_prob"`
	Iterations     int     `json:"iterations" toml:"iterations"`
	BirthThreshold int     `json:"birth_threshold" toml:"birth_threshold"`
}

// WaterParams tunes source placement and the water walks.
type WaterParams struct {
	Density         float64 `json:"density" toml:"density"`
	TurnProb        float64 `json:"turn_prob" toml:"turn_prob"`
	StopProb        float64 `json:"stop_prob" toml:"stop_prob"`
	HeightInfluence float64 `json:"height_influence" toml:"height_influence"`
}

// HeightMode selects how the base elevation is drawn before smoothing.
type HeightMode string

const (
	// HeightSmoothed draws independent uniform values per cell.
	HeightSmoothed HeightMode = "smoothed"
	// HeightSimplex samples OpenSimplex noise, giving broader basins.
	HeightSimplex HeightMode = "simplex"
)

// TurnPolicy selects how a water walk chooses its next direction.
type TurnPolicy string

const (
	// TurnHeightBiased scores straight/left/right by elevation drop plus noise.
	TurnHeightBiased TurnPolicy = "height"
	// TurnFixed turns left or right with probability TurnProb each, ignoring terrain.
	TurnFixed TurnPolicy = "fixed"
)

// Config controls the map dimensions, seed and stage parameters.
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Seed int64 `json:"seed"`

	Forest ForestParams `json:"forest"`
	Water  WaterParams  `json:"water"`

	HeightMode HeightMode `json:"height_mode"`
	TurnPolicy TurnPolicy `json:"turn_policy"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  75,
		Height: 120,
		Seed:   1337,
		Forest: ForestParams{
			SeedProb:       0.05,
			Iterations:     3,
			BirthThreshold: 2,
		},
		Water: WaterParams{
			Density:         0.002,
			TurnProb:        0.3,
			StopProb:        0.004,
			HeightInfluence: 2.0,
		},
		HeightMode: HeightSmoothed,
		TurnPolicy: TurnHeightBiased,
	}
}

// Validate checks dimensions and parameter ranges.
func (c Config) Validate() error {
	if err := checkDimensions(c.Width, c.Height); err != nil {
		return err
	}
	return c.validateParams()
}

func (c Config) validateParams() error {
	f, w := c.Forest, c.Water
	switch {
	case !unit(f.SeedProb):
		return fmt.Errorf("%w: seed_prob %v not in [0,1]", ErrInvalidParams, f.SeedProb)
	case f.Iterations < 0:
		return fmt.Errorf("%w: iterations %d is negative", ErrInvalidParams, f.Iterations)
	case f.BirthThreshold < 0 || f.BirthThreshold > 8:
		return fmt.Errorf("%w: birth_threshold %d not in [0,8]", ErrInvalidParams, f.BirthThreshold)
	case !unit(w.Density):
		return fmt.Errorf("%w: density %v not in [0,1]", ErrInvalidParams, w.Density)
	case !unit(w.TurnProb):
		return fmt.Errorf("%w: turn_prob %v not in [0,1]", ErrInvalidParams, w.TurnProb)
	case !(w.StopProb > 0 && w.StopProb <= 1):
		return fmt.Errorf("%w: stop_prob %v not in (0,1]", ErrInvalidParams, w.StopProb)
	case !(w.HeightInfluence >= 0):
		return fmt.Errorf("%w: height_influence %v is negative", ErrInvalidParams, w.HeightInfluence)
	}
	switch c.HeightMode {
	case "", HeightSmoothed, HeightSimplex:
	default:
		return fmt.Errorf("%w: unknown height_mode %q", ErrInvalidParams, c.HeightMode)
	}
	switch c.TurnPolicy {
	case "", TurnHeightBiased, TurnFixed:
	default:
		return fmt.Errorf("%w: unknown turn_policy %q", ErrInvalidParams, c.TurnPolicy)
	}
	return nil
}

// unit reports whether v lies in [0,1]; NaN is rejected.
func unit(v float64) bool { return v >= 0 && v <= 1 }

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "map width in tiles")
	fs.IntVar(&c.Height, "h", c.Height, "map height in tiles")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.Float64Var(&c.Forest.SeedProb, "seed_prob", c.Forest.SeedProb, "probability a tile starts as forest")
	fs.IntVar(&c.Forest.Iterations, "iterations", c.Forest.Iterations, "forest growth iterations")
	fs.IntVar(&c.Forest.BirthThreshold, "birth_threshold", c.Forest.BirthThreshold, "forest neighbours needed for a plain tile to grow")
	fs.Float64Var(&c.Water.Density, "density", c.Water.Density, "water sources per tile")
	fs.Float64Var(&c.Water.TurnProb, "turn_prob", c.Water.TurnProb, "turn probability for the fixed turning policy")
	fs.Float64Var(&c.Water.StopProb, "stop_prob", c.Water.StopProb, "per-step probability that a water branch ends")
	fs.Float64Var(&c.Water.HeightInfluence, "height_influence", c.Water.HeightInfluence, "weight of the elevation drop when choosing a direction")
	fs.Func("height_mode", "base elevation: smoothed or simplex", func(v string) error {
		c.HeightMode = HeightMode(v)
		return nil
	})
	fs.Func("turn_policy", "water turning policy: height or fixed", func(v string) error {
		c.TurnPolicy = TurnPolicy(v)
		return nil
	})
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Apply(cfg)
}

// Apply overrides fields of c from flag-style key/value pairs. Values that
// do not parse or fall outside their range are ignored.
func (c Config) Apply(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["seed_prob"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && unit(parsed) {
			c.Forest.SeedProb = parsed
		}
	}
	if v, ok := cfg["iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Forest.Iterations = parsed
		}
	}
	if v, ok := cfg["birth_threshold"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 8 {
			c.Forest.BirthThreshold = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && unit(parsed) {
			c.Water.Density = parsed
		}
	}
	if v, ok := cfg["turn_prob"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && unit(parsed) {
			c.Water.TurnProb = parsed
		}
	}
	if v, ok := cfg["stop_prob"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 1 {
			c.Water.StopProb = parsed
		}
	}
	if v, ok := cfg["height_influence"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Water.HeightInfluence = parsed
		}
	}
	if v, ok := cfg["height_mode"]; ok {
		switch m := HeightMode(v); m {
		case HeightSmoothed, HeightSimplex:
			c.HeightMode = m
		}
	}
	if v, ok := cfg["turn_policy"]; ok {
		switch p := TurnPolicy(v); p {
		case TurnHeightBiased, TurnFixed:
			c.TurnPolicy = p
		}
	}
	return c
}
