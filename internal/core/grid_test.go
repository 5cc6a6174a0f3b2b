package core

import "testing"

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(4, 3)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 2, true},
		{4, 0, false},
		{0, 3, false},
		{-1, 1, false},
		{1, -1, false},
	}
	for _, c := range cases {
		if got := g.InBounds(c.x, c.y); got != c.want {
			t.Fatalf("InBounds(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestByteGridSwapKeepsIdentity(t *testing.T) {
	a := NewByteGrid(2, 2)
	b := NewByteGrid(2, 2)
	a.Set(1, 1, 7)
	b.Set(0, 0, 3)

	a.Swap(b)
	if a.At(0, 0) != 3 || a.At(1, 1) != 0 {
		t.Fatalf("swap did not move buffers: %v", a.Cells())
	}
	if b.At(1, 1) != 7 {
		t.Fatalf("swap lost original data: %v", b.Cells())
	}

	a.CopyFrom(b)
	if a.At(1, 1) != 7 || a.At(0, 0) != 0 {
		t.Fatalf("CopyFrom mismatch: %v", a.Cells())
	}
	a.Clear()
	for i, v := range a.Cells() {
		if v != 0 {
			t.Fatalf("cell %d not cleared", i)
		}
	}
}

func TestNewByteGridClampsDimensions(t *testing.T) {
	g := NewByteGrid(0, -3)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d (%d cells)", g.W, g.H, len(g.Cells()))
	}
}
