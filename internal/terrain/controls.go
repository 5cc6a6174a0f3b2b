package terrain

import "tilegen/internal/core"

var worldControls = []core.ParameterControl{
	{Key: "seed_prob", Label: "Seed prob", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "iterations", Label: "Iterations", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 20, HasMin: true, HasMax: true},
	{Key: "birth_threshold", Label: "Birth threshold", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 8, HasMin: true, HasMax: true},
	{Key: "density", Label: "Water density", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, Max: 0.05, HasMin: true, HasMax: true},
	{Key: "stop_prob", Label: "Stop prob", Type: core.ParamTypeFloat, Step: 0.001, Min: 0.001, Max: 1, HasMin: true, HasMax: true},
	{Key: "turn_prob", Label: "Turn prob", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 0.5, HasMin: true, HasMax: true},
	{Key: "height_influence", Label: "Height influence", Type: core.ParamTypeFloat, Step: 0.25, Min: 0, Max: 10, HasMin: true, HasMax: true},
}

// ParameterControls lists the parameters the HUD may adjust.
func (w *World) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, len(worldControls))
	copy(out, worldControls)
	return out
}

// SetIntParameter updates an integer parameter and regenerates from the last
// seed. It reports false for unknown keys or out-of-range values.
func (w *World) SetIntParameter(key string, value int) bool {
	cfg := w.cfg
	switch key {
	case "iterations":
		cfg.Forest.Iterations = value
	case "birth_threshold":
		cfg.Forest.BirthThreshold = value
	default:
		return false
	}
	return w.reconfigure(cfg)
}

// SetFloatParameter updates a floating point parameter and regenerates from
// the last seed.
func (w *World) SetFloatParameter(key string, value float64) bool {
	cfg := w.cfg
	switch key {
	case "seed_prob":
		cfg.Forest.SeedProb = value
	case "density":
		cfg.Water.Density = value
	case "stop_prob":
		cfg.Water.StopProb = value
	case "turn_prob":
		cfg.Water.TurnProb = value
	case "height_influence":
		cfg.Water.HeightInfluence = value
	default:
		return false
	}
	return w.reconfigure(cfg)
}

func (w *World) reconfigure(cfg Config) bool {
	if err := cfg.validateParams(); err != nil {
		return false
	}
	w.cfg = cfg
	w.forest = NewForestGrower(cfg.Forest, cfg.Width, cfg.Height)
	w.sources = SourceCount(cfg.Width, cfg.Height, cfg.Water.Density)
	if w.rng != nil {
		w.Reset(w.seed)
	}
	return true
}
