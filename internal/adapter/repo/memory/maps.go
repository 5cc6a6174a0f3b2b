package memory

import (
	"context"
	"sort"
	"sync"

	"tilegen/internal/ports"
)

// MapRepo keeps maps in process memory. It is used when no database is
// configured and in tests.
type MapRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]ports.MapRecord
}

func NewMapRepo() *MapRepo {
	return &MapRepo{rows: map[int64]ports.MapRecord{}}
}

func (r *MapRepo) Save(_ context.Context, rec ports.MapRecord) (ports.MapRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = r.nextID
	rec.Tiles = append([]byte(nil), rec.Tiles...)
	r.rows[rec.ID] = rec
	return rec, nil
}

func (r *MapRepo) Get(_ context.Context, id int64) (ports.MapRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.rows[id]
	if !ok {
		return ports.MapRecord{}, ports.ErrNotFound
	}
	rec.Tiles = append([]byte(nil), rec.Tiles...)
	return rec, nil
}

func (r *MapRepo) List(_ context.Context, limit int) ([]ports.MapRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ports.MapRecord, 0, len(r.rows))
	for _, rec := range r.rows {
		rec.Tiles = nil
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MapRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
