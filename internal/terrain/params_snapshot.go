package terrain

import (
	"strconv"

	"tilegen/internal/core"
)

// Parameters reports the world's configuration for the overlay.
func (w *World) Parameters() core.ParameterSnapshot {
	return Snapshot(w.cfg)
}

// Snapshot describes cfg as grouped, display-ready parameters.
func Snapshot(cfg Config) core.ParameterSnapshot {
	heightMode := cfg.HeightMode
	if heightMode == "" {
		heightMode = HeightSmoothed
	}
	turnPolicy := cfg.TurnPolicy
	if turnPolicy == "" {
		turnPolicy = TurnHeightBiased
	}
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", cfg.Width),
				intParam("h", "Height", cfg.Height),
				int64Param("seed", "Seed", cfg.Seed),
				stringParam("height_mode", "Height mode", string(heightMode)),
			},
		},
		{
			Name: "Forest",
			Params: []core.Parameter{
				floatParam("seed_prob", "Seed probability", cfg.Forest.SeedProb),
				intParam("iterations", "Iterations", cfg.Forest.Iterations),
				intParam("birth_threshold", "Birth threshold", cfg.Forest.BirthThreshold),
			},
		},
		{
			Name: "Water",
			Params: []core.Parameter{
				floatParam("density", "Source density", cfg.Water.Density),
				stringParam("turn_policy", "Turn policy", string(turnPolicy)),
				floatParam("turn_prob", "Turn probability", cfg.Water.TurnProb),
				floatParam("stop_prob", "Stop probability", cfg.Water.StopProb),
				floatParam("height_influence", "Height influence", cfg.Water.HeightInfluence),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
