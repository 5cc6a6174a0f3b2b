package render

import (
	"image/color"
	"testing"
)

func TestFillPaletteRGBAClampsIndex(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := make([]byte, 4*3)
	fillPaletteRGBA(buf, []uint8{0, 1, 7}, palette)

	want := []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d (buf=%v)", i, buf[i], want[i], buf)
		}
	}
}

func TestFillPaletteRGBAEmptyPaletteClears(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillPaletteRGBA(buf, []uint8{2, 1}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestFillHeightRGBANormalises(t *testing.T) {
	buf := make([]byte, 4*3)
	fillHeightRGBA(buf, []float64{0.2, 0.9, 0.55})

	low := elevationStops[0].col
	high := elevationStops[len(elevationStops)-1].col
	mid := elevationStops[2].col
	checks := []struct {
		px   int
		want color.RGBA
	}{{0, low}, {1, high}, {2, mid}}
	for _, c := range checks {
		got := color.RGBA{R: buf[4*c.px], G: buf[4*c.px+1], B: buf[4*c.px+2], A: buf[4*c.px+3]}
		if got != c.want {
			t.Fatalf("pixel %d = %v, want %v", c.px, got, c.want)
		}
	}
}

func TestFillHeightRGBAFlatField(t *testing.T) {
	buf := make([]byte, 4*2)
	fillHeightRGBA(buf, []float64{0.3, 0.3})
	mid := elevationStops[2].col
	if buf[0] != mid.R || buf[4] != mid.R || buf[7] != mid.A {
		t.Fatalf("flat field should use the mid stop: %v", buf)
	}
}

func TestElevationColorInterpolates(t *testing.T) {
	got := elevationColor(0.125)
	want := color.RGBA{R: 55, G: 83, B: 140, A: 158}
	if got != want {
		t.Fatalf("elevationColor(0.125) = %v, want %v", got, want)
	}
	if elevationColor(-1) != elevationStops[0].col || elevationColor(2) != elevationStops[4].col {
		t.Fatal("out-of-range input must clamp to the end stops")
	}
}
