package ports

import (
	"context"
	"errors"
	"time"

	"tilegen/internal/terrain"
)

var (
	ErrNotFound = errors.New("not found")
)

// MapRecord is a generated map as persisted by a repository. Tiles holds the
// 3-bit packed encoding.
type MapRecord struct {
	ID         int64
	Name       string
	Width      int
	Height     int
	Seed       int64
	Forest     terrain.ForestParams
	Water      terrain.WaterParams
	HeightMode terrain.HeightMode
	TurnPolicy terrain.TurnPolicy
	Counts     terrain.TileCounts
	Tiles      []byte
	CreatedAt  time.Time
}

// MapRepository stores generated maps.
type MapRepository interface {
	// Save persists rec and returns it with its assigned ID.
	Save(ctx context.Context, rec MapRecord) (MapRecord, error)
	Get(ctx context.Context, id int64) (MapRecord, error)
	// List returns the most recent maps first, without tile data.
	List(ctx context.Context, limit int) ([]MapRecord, error)
	// Delete removes a map; ErrNotFound when id does not exist.
	Delete(ctx context.Context, id int64) error
}
