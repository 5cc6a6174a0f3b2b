package mapgen

import (
	"errors"
	"slices"
	"testing"

	"tilegen/pkg/core"
	"tilegen/pkg/packing"
)

var (
	testForest = ForestParams{SeedProb: 0.08, Iterations: 3, BirthThreshold: 2}
	testWater  = WaterParams{Density: 0.004, TurnProb: 0.3, StopProb: 0.03, HeightInfluence: 2}
)

func TestGenerateSeededIsReproducible(t *testing.T) {
	a, err := Generate(32, 24, testForest, testWater, WithSeed(12))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	defer a.Release()
	b, err := Generate(32, 24, testForest, testWater, WithRNG(core.NewRNG(12)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	defer b.Release()

	if !slices.Equal(a.Tiles(), b.Tiles()) {
		t.Fatal("seed and equivalent RNG should produce identical tiles")
	}
	if a.Width() != 32 || a.Height() != 24 || len(a.Tiles()) != 32*24 {
		t.Fatalf("unexpected dimensions %dx%d (%d tiles)", a.Width(), a.Height(), len(a.Tiles()))
	}
	if a.Seed() != 12 {
		t.Fatalf("seed = %d, want 12", a.Seed())
	}
	if c := a.Counts(); c.Total() != 32*24 || c.Water == 0 {
		t.Fatalf("unexpected counts %+v", c)
	}
	attempted, placed := a.Sources()
	if placed < 1 || placed > attempted {
		t.Fatalf("unexpected source stats %d/%d", attempted, placed)
	}
}

func TestPackedRoundTrip(t *testing.T) {
	m, err := Generate(13, 7, testForest, testWater, WithSeed(3), WithTurnPolicy(TurnFixed), WithHeightMode(HeightSimplex))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	buf, size := m.Packed()
	if size != packing.PackedSize(13*7) || len(buf) != size {
		t.Fatalf("packed size %d (len %d), want %d", size, len(buf), packing.PackedSize(13*7))
	}
	tiles, err := packing.Unpack(buf, 13*7)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if !slices.Equal(tiles, m.Tiles()) {
		t.Fatal("packed encoding does not round trip")
	}
	if k, ok := m.At(0, 0); !ok || k != TileKind(m.Tiles()[0]) {
		t.Fatal("At disagrees with Tiles")
	}
	if k, ok := m.At(12, 6); !ok || k != TileKind(m.Tiles()[13*7-1]) {
		t.Fatal("At disagrees with Tiles at the last cell")
	}
}

func TestAtOutOfRange(t *testing.T) {
	m, err := Generate(5, 3, testForest, testWater, WithSeed(2))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 3}, {5, 2}} {
		if _, ok := m.At(p[0], p[1]); ok {
			t.Fatalf("At(%d,%d) should be out of range", p[0], p[1])
		}
	}
	m.Release()
	if _, ok := m.At(0, 0); ok {
		t.Fatal("At after Release should report !ok")
	}
	var nilMap *Map
	if _, ok := nilMap.At(0, 0); ok {
		t.Fatal("At on a nil map should report !ok")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	m, err := Generate(4, 4, testForest, testWater, WithSeed(1))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	m.Packed()
	m.Release()
	m.Release()
	if m.Tiles() != nil || m.Width() != 0 {
		t.Fatal("released map should expose no tiles")
	}
	if buf, size := m.Packed(); buf != nil || size != 0 {
		t.Fatal("released map should expose no packed buffer")
	}

	var nilMap *Map
	nilMap.Release()
	if nilMap.Tiles() != nil {
		t.Fatal("nil map should expose no tiles")
	}
}

func TestGenerateErrors(t *testing.T) {
	if m, err := Generate(0, 10, testForest, testWater); !errors.Is(err, ErrInvalidDimensions) || m != nil {
		t.Fatalf("expected ErrInvalidDimensions and nil map, got %v %v", m, err)
	}
	bad := testWater
	bad.StopProb = 0
	if _, err := Generate(5, 5, testForest, bad); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}
