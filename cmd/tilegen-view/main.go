//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"tilegen/internal/app"
	"tilegen/internal/core"
	_ "tilegen/internal/terrain"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.Build(cfg.Sim, cfg.Params)
	if err != nil {
		slog.Error("build generator", "sim", cfg.Sim, "err", err)
		os.Exit(1)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	size := sim.Size()
	hud := cfg.HUDWidth
	if hud < 0 {
		hud = 0
	}

	ebiten.SetWindowTitle("tilegen: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+hud, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("viewer exited", "err", err)
		os.Exit(1)
	}
}
