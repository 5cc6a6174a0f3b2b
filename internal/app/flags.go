package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Rate     int
	Seed     int64
	HUDWidth int
	Params   map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "terrain", Scale: 6, TPS: 60, Rate: 4, Seed: 1337, HUDWidth: 260, Params: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet. Generator
// parameters are passed as repeated -param key=value flags.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "generator to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "generation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for generator reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels, 0 to hide")
	fs.Func("param", "generator parameter as key=value (repeatable)", func(v string) error {
		key, value, ok := strings.Cut(v, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("param %q: want key=value", v)
		}
		if c.Params == nil {
			c.Params = map[string]string{}
		}
		c.Params[key] = strings.TrimSpace(value)
		return nil
	})
}
