package terrain

import (
	"github.com/ojrac/opensimplex-go"

	"tilegen/pkg/core"
)

const (
	smoothingPasses = 3
	simplexScale    = 0.05
)

// HeightField is an elevation value in [0,1] per cell, used only to bias the
// water walks.
type HeightField struct {
	W, H int
	vals []float64
	tmp  []float64
}

// NewHeightField draws the base elevation for a w×h field and applies the
// smoothing passes.
func NewHeightField(w, h int, mode HeightMode, rng *core.RNG) *HeightField {
	hf := &HeightField{W: w, H: h, vals: make([]float64, w*h), tmp: make([]float64, w*h)}
	switch mode {
	case HeightSimplex:
		hf.fillSimplex(rng.Int64())
	default:
		for i := range hf.vals {
			hf.vals[i] = rng.Float64()
		}
	}
	hf.Smooth(smoothingPasses)
	return hf
}

// At returns the elevation at (x, y).
func (hf *HeightField) At(x, y int) float64 { return hf.vals[y*hf.W+x] }

// Values exposes the row-major elevation buffer.
func (hf *HeightField) Values() []float64 { return hf.vals }

// Smooth replaces each interior cell with the mean of its four axis
// neighbours, reading only values from before the pass. Border cells keep
// their drawn value; grids narrower than 3 in either axis are unchanged.
func (hf *HeightField) Smooth(passes int) {
	w, h := hf.W, hf.H
	if w < 3 || h < 3 {
		return
	}
	for p := 0; p < passes; p++ {
		copy(hf.tmp, hf.vals)
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				idx := y*w + x
				hf.tmp[idx] = (hf.vals[idx-w] + hf.vals[idx+w] + hf.vals[idx-1] + hf.vals[idx+1]) * 0.25
			}
		}
		hf.vals, hf.tmp = hf.tmp, hf.vals
	}
}

func (hf *HeightField) fillSimplex(seed int64) {
	noise := opensimplex.New(seed)
	for y := 0; y < hf.H; y++ {
		for x := 0; x < hf.W; x++ {
			v := 0.5 + 0.5*noise.Eval2(float64(x)*simplexScale, float64(y)*simplexScale)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			hf.vals[y*hf.W+x] = v
		}
	}
}
