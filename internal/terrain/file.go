package terrain

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the sections of a terrain config file. Sections other
// than world, forest and water are left to other tools sharing the file.
type fileConfig struct {
	World struct {
		Width      int        `toml:"width"`
		Height     int        `toml:"height"`
		Seed       int64      `toml:"seed"`
		HeightMode HeightMode `toml:"height_mode"`
	} `toml:"world"`
	Forest ForestParams `toml:"forest"`
	Water  struct {
		WaterParams
		TurnPolicy TurnPolicy `toml:"turn_policy"`
	} `toml:"water"`
}

// LoadFile reads a TOML config file on top of DefaultConfig. Keys missing
// from the file keep their defaults; unknown keys inside the world, forest
// or water sections are rejected.
func LoadFile(path string) (Config, error) {
	return DefaultConfig().LoadFile(path)
}

// LoadFile overlays the TOML file at path onto c and validates the result.
func (c Config) LoadFile(path string) (Config, error) {
	var fc fileConfig
	fc.World.Width, fc.World.Height = c.Width, c.Height
	fc.World.Seed, fc.World.HeightMode = c.Seed, c.HeightMode
	fc.Forest = c.Forest
	fc.Water.WaterParams, fc.Water.TurnPolicy = c.Water, c.TurnPolicy

	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		switch key[0] {
		case "world", "forest", "water":
			return c, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidParams, strings.Join(key, "."), path)
		}
	}

	out := Config{
		Width:      fc.World.Width,
		Height:     fc.World.Height,
		Seed:       fc.World.Seed,
		Forest:     fc.Forest,
		Water:      fc.Water.WaterParams,
		HeightMode: fc.World.HeightMode,
		TurnPolicy: fc.Water.TurnPolicy,
	}
	if err := out.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return out, nil
}
