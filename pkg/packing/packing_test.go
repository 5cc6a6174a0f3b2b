package packing

import (
	"errors"
	"slices"
	"testing"
)

func TestPackKnownLayout(t *testing.T) {
	// 010 001 000 010 -> 0100 0100 0010 (padded) -> 0x44 0x20
	got := Pack([]uint8{2, 1, 0, 2})
	want := []byte{0x44, 0x20}
	if !slices.Equal(got, want) {
		t.Fatalf("Pack = %#v, want %#v", got, want)
	}
}

func TestPackedSize(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 2: 1, 3: 2, 8: 3, 9: 4, 16: 6, 25: 10}
	for n, want := range cases {
		if got := PackedSize(n); got != want {
			t.Fatalf("PackedSize(%d) = %d, want %d", n, got, want)
		}
		if got := len(Pack(make([]uint8, n))); got != want {
			t.Fatalf("len(Pack(%d tiles)) = %d, want %d", n, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for n := 0; n <= 40; n++ {
		tiles := make([]uint8, n)
		for i := range tiles {
			tiles[i] = uint8((i*7 + n) % 3)
		}
		buf := Pack(tiles)
		got, err := Unpack(buf, n)
		if err != nil {
			t.Fatalf("n=%d: unpack: %v", n, err)
		}
		if !slices.Equal(got, tiles) {
			t.Fatalf("n=%d: round trip mismatch: %v != %v", n, got, tiles)
		}
		if n*BitsPerTile%8 != 0 {
			used := n * BitsPerTile % 8
			if last := buf[len(buf)-1]; last&(0xFF>>uint(used)) != 0 {
				t.Fatalf("n=%d: padding bits not zero in %08b", n, last)
			}
		}
	}
}

func TestUnpackShortBuffer(t *testing.T) {
	if _, err := Unpack([]byte{0xFF}, 3); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
	if _, err := Unpack(nil, -1); err == nil {
		t.Fatal("expected error for negative count")
	}
}
