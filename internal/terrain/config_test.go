package terrain

import (
	"flag"
	"strings"
	"testing"
)

func TestFromMapParsesAndIgnoresInvalid(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                "64",
		"h":                "-3",
		"seed":             "9",
		"seed_prob":        "0.4",
		"iterations":       "x",
		"birth_threshold":  "12",
		"density":          "0.01",
		"stop_prob":        "0",
		"height_influence": "3.5",
		"height_mode":      "simplex",
		"turn_policy":      "sideways",
	})
	def := DefaultConfig()

	if cfg.Width != 64 || cfg.Height != def.Height || cfg.Seed != 9 {
		t.Fatalf("unexpected world fields: %+v", cfg)
	}
	if cfg.Forest.SeedProb != 0.4 || cfg.Forest.Iterations != def.Forest.Iterations || cfg.Forest.BirthThreshold != def.Forest.BirthThreshold {
		t.Fatalf("unexpected forest params: %+v", cfg.Forest)
	}
	if cfg.Water.Density != 0.01 || cfg.Water.StopProb != def.Water.StopProb || cfg.Water.HeightInfluence != 3.5 {
		t.Fatalf("unexpected water params: %+v", cfg.Water)
	}
	if cfg.HeightMode != HeightSimplex || cfg.TurnPolicy != def.TurnPolicy {
		t.Fatalf("unexpected modes: %q %q", cfg.HeightMode, cfg.TurnPolicy)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("FromMap should only produce valid configs: %v", err)
	}
}

func TestBindParsesFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-w", "10", "-stop_prob", "0.2", "-turn_policy", "fixed", "-height_mode", "simplex"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Width != 10 || cfg.Water.StopProb != 0.2 || cfg.TurnPolicy != TurnFixed || cfg.HeightMode != HeightSimplex {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestSnapshotListsEveryParameter(t *testing.T) {
	snap := Snapshot(DefaultConfig())
	keys := map[string]string{}
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			keys[p.Key] = p.Value
		}
	}
	for _, k := range []string{"w", "h", "seed", "seed_prob", "iterations", "birth_threshold", "density", "turn_prob", "stop_prob", "height_influence", "height_mode", "turn_policy"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("snapshot missing %q", k)
		}
	}
	if keys["turn_policy"] != string(TurnHeightBiased) {
		t.Fatalf("unexpected turn policy %q", keys["turn_policy"])
	}
}

func TestRenderText(t *testing.T) {
	cells := []uint8{uint8(Plain), uint8(Forest), uint8(Water), uint8(Water), uint8(Plain), uint8(Forest)}
	got := RenderText(cells, 3)
	want := ".T~\n~.T\n"
	if got != want {
		t.Fatalf("RenderText = %q, want %q", got, want)
	}
	if c := Count(cells); c.Plain != 2 || c.Forest != 2 || c.Water != 2 {
		t.Fatalf("unexpected counts %+v", c)
	}
	if !strings.HasPrefix(RenderText(cells, 6), ".T~~.T") {
		t.Fatal("single row render mismatch")
	}
}
