package render

import (
	"image/color"
	"math"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillHeightRGBA shades elevation values with the elevation ramp. Values are
// normalised against the field's own range so flat fields sit mid-ramp.
func fillHeightRGBA(buf []byte, vals []float64) {
	if len(vals) == 0 {
		return
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	for i, v := range vals {
		t := 0.5
		if span > 0 {
			t = (v - lo) / span
		}
		col := elevationColor(t)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

var elevationStops = []struct {
	t   float64
	col color.RGBA
}{
	{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
	{0.25, color.RGBA{R: 70, G: 105, B: 160, A: 165}},
	{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 185}},
	{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 205}},
	{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 215}},
}

func elevationColor(t float64) color.RGBA {
	t = clamp01(t)
	for i := 1; i < len(elevationStops); i++ {
		curr := elevationStops[i]
		if t <= curr.t {
			prev := elevationStops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, local)
		}
	}
	return elevationStops[len(elevationStops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
