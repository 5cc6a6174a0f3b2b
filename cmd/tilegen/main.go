package main

import (
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"tilegen/internal/terrain"
	"tilegen/pkg/mapgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg := terrain.DefaultConfig()
	fs := flag.NewFlagSet("tilegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.Bind(fs)
	format := fs.String("format", "ascii", "output format: ascii, packed or base64")
	out := fs.String("out", "", "write the map to this file instead of stdout")
	verbose := fs.Bool("v", false, "log generation statistics")
	configPath := fs.String("config", "", "TOML file with world, forest and water sections; flags override it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if *configPath != "" {
		loaded, err := terrain.LoadFile(*configPath)
		if err != nil {
			log.Error("load config", "err", err)
			return err
		}
		cfg = loaded
		// Parse again so explicit flags win over the file.
		if err := fs.Parse(args); err != nil {
			return err
		}
	}

	opts := []mapgen.Option{mapgen.WithSeed(cfg.Seed)}
	if cfg.HeightMode != "" {
		opts = append(opts, mapgen.WithHeightMode(cfg.HeightMode))
	}
	if cfg.TurnPolicy != "" {
		opts = append(opts, mapgen.WithTurnPolicy(cfg.TurnPolicy))
	}
	m, err := mapgen.Generate(cfg.Width, cfg.Height, cfg.Forest, cfg.Water, opts...)
	if err != nil {
		log.Error("generate failed", "err", err)
		return err
	}
	defer m.Release()

	attempted, placed := m.Sources()
	counts := m.Counts()
	log.Info("map generated",
		"w", m.Width(), "h", m.Height(), "seed", m.Seed(),
		"plain", counts.Plain, "forest", counts.Forest, "water", counts.Water,
		"sources_attempted", attempted, "sources_placed", placed)

	var body []byte
	switch *format {
	case "ascii":
		body = []byte(terrain.RenderText(m.Tiles(), m.Width()))
	case "packed":
		body, _ = m.Packed()
	case "base64":
		packed, _ := m.Packed()
		body = []byte(base64.StdEncoding.EncodeToString(packed) + "\n")
	default:
		err := fmt.Errorf("unknown format %q", *format)
		log.Error("bad flag", "err", err)
		return err
	}

	if *out == "" {
		if _, err := stdout.Write(body); err != nil {
			log.Error("write output", "err", err)
			return err
		}
		return nil
	}
	return writeFile(*out, body, log)
}

func writeFile(path string, body []byte, log *slog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		log.Error("create output", "path", path, "err", err)
		return err
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		log.Error("write output", "path", path, "err", err)
		return err
	}
	if err := f.Close(); err != nil {
		log.Error("close output", "path", path, "err", err)
		return err
	}
	return nil
}
