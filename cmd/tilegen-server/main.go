package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	httpadapter "tilegen/internal/adapter/http"
	gormrepo "tilegen/internal/adapter/repo/gorm"
	"tilegen/internal/adapter/repo/memory"
	"tilegen/internal/maps"
	"tilegen/internal/ports"
	"tilegen/internal/terrain"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	repo := mustBuildRepo(log)
	defaults, err := defaultsFromEnv()
	if err != nil {
		log.Error("invalid defaults", "err", err)
		os.Exit(1)
	}
	maxTiles, err := maxTilesFromEnv()
	if err != nil {
		log.Error("invalid TILEGEN_MAX_TILES", "err", err)
		os.Exit(1)
	}

	h := httpadapter.Handler{
		Maps:     maps.Service{Repo: repo, Log: log},
		Defaults: defaults,
		Log:      log,
		MaxTiles: maxTiles,
	}

	addr := envOr("TILEGEN_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Info("tilegen server listening", "addr", addr, "w", defaults.Width, "h", defaults.Height, "max_tiles", maxTiles)
	s.Spin()
}

func mustBuildRepo(log *slog.Logger) ports.MapRepository {
	dsn := strings.TrimSpace(os.Getenv("TILEGEN_DB_DSN"))
	if dsn == "" {
		log.Warn("TILEGEN_DB_DSN not set, maps are kept in memory")
		return memory.NewMapRepo()
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Error("open postgres", "err", err)
		os.Exit(1)
	}
	if err := gormrepo.Migrate(db); err != nil {
		log.Error("migrate", "err", err)
		os.Exit(1)
	}
	return gormrepo.NewMapRepo(db)
}

// defaultsFromEnv builds generation defaults from the TOML file named by
// TILEGEN_CONFIG, then applies TILEGEN_PARAMS, a comma separated list of
// key=value pairs using the flag names.
func defaultsFromEnv() (terrain.Config, error) {
	cfg := terrain.DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("TILEGEN_CONFIG")); path != "" {
		loaded, err := terrain.LoadFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	raw := strings.TrimSpace(os.Getenv("TILEGEN_PARAMS"))
	if raw == "" {
		return cfg, nil
	}
	params := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		params[key] = strings.TrimSpace(value)
	}
	cfg = cfg.Apply(params)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("TILEGEN_PARAMS: %w", err)
	}
	return cfg, nil
}

// maxTilesFromEnv reads TILEGEN_MAX_TILES; unset means the handler default.
func maxTilesFromEnv() (int, error) {
	raw := strings.TrimSpace(os.Getenv("TILEGEN_MAX_TILES"))
	if raw == "" {
		return httpadapter.DefaultMaxTiles, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a positive integer", raw)
	}
	return n, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
