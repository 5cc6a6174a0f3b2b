package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 64; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d diverged: %v != %v", i, x, y)
		}
		if x, y := a.IntN(17), b.IntN(17); x != y {
			t.Fatalf("int draw %d diverged: %d != %d", i, x, y)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if v := r.Float64(); v < 0 || v >= 1 {
			t.Fatalf("Float64 out of range: %v", v)
		}
		if v := r.IntN(5); v < 0 || v >= 5 {
			t.Fatalf("IntN out of range: %d", v)
		}
	}
	if v := r.IntN(0); v != 0 {
		t.Fatalf("IntN(0) = %d, want 0", v)
	}
}
