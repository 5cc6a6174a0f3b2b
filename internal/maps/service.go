package maps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tilegen/internal/ports"
	"tilegen/internal/terrain"
	"tilegen/pkg/mapgen"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

var ErrInvalidRequest = errors.New("invalid request")

// GenerateRequest names a map and the configuration to build it from. A zero
// Config.Seed picks a time-based seed, which is recorded on the result.
type GenerateRequest struct {
	Name   string
	Config terrain.Config
}

// Service generates maps and stores them in a repository.
type Service struct {
	Repo ports.MapRepository
	Log  *slog.Logger
	Now  func() time.Time
}

func (s Service) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

func (s Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Generate builds the requested map and saves it.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (ports.MapRecord, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ports.MapRecord{}, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	cfg := req.Config
	if cfg.Seed == 0 {
		cfg.Seed = s.now().UnixNano()
	}
	if cfg.HeightMode == "" {
		cfg.HeightMode = terrain.HeightSmoothed
	}
	if cfg.TurnPolicy == "" {
		cfg.TurnPolicy = terrain.TurnHeightBiased
	}

	start := time.Now()
	m, err := mapgen.Generate(cfg.Width, cfg.Height, cfg.Forest, cfg.Water,
		mapgen.WithSeed(cfg.Seed),
		mapgen.WithHeightMode(cfg.HeightMode),
		mapgen.WithTurnPolicy(cfg.TurnPolicy),
	)
	if err != nil {
		return ports.MapRecord{}, fmt.Errorf("generate map %q: %w", name, err)
	}
	defer m.Release()

	packed, size := m.Packed()
	rec := ports.MapRecord{
		Name:       name,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Seed:       cfg.Seed,
		Forest:     cfg.Forest,
		Water:      cfg.Water,
		HeightMode: cfg.HeightMode,
		TurnPolicy: cfg.TurnPolicy,
		Counts:     m.Counts(),
		Tiles:      append([]byte(nil), packed[:size]...),
		CreatedAt:  s.now().UTC(),
	}
	saved, err := s.Repo.Save(ctx, rec)
	if err != nil {
		return ports.MapRecord{}, fmt.Errorf("save map %q: %w", name, err)
	}

	attempted, placed := m.Sources()
	s.logger().Info("map generated",
		"id", saved.ID,
		"name", saved.Name,
		"width", saved.Width,
		"height", saved.Height,
		"seed", saved.Seed,
		"forest", saved.Counts.Forest,
		"water", saved.Counts.Water,
		"sources_attempted", attempted,
		"sources_placed", placed,
		"elapsed", time.Since(start),
	)
	return saved, nil
}

// Get loads a stored map including its packed tiles.
func (s Service) Get(ctx context.Context, id int64) (ports.MapRecord, error) {
	if id <= 0 {
		return ports.MapRecord{}, fmt.Errorf("%w: id must be positive", ErrInvalidRequest)
	}
	return s.Repo.Get(ctx, id)
}

// List returns recent maps, newest first.
func (s Service) List(ctx context.Context, limit int) ([]ports.MapRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.Repo.List(ctx, limit)
}

// Delete removes a stored map.
func (s Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidRequest)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger().Info("map deleted", "id", id)
	return nil
}
