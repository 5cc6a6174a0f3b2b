//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads tile and elevation data into images sized to the grid.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte

	heightImg *ebiten.Image
	heightBuf []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:   w,
		h:   h,
		img: ebiten.NewImage(w, h),
		buf: make([]byte, 4*w*h),
	}
}

// Blit colours cells through palette and draws them scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.img.WritePixels(gp.buf)
	dst.DrawImage(gp.img, scaled(scale))
}

// BlitHeight draws the elevation values as a grey overlay.
func (gp *GridPainter) BlitHeight(dst *ebiten.Image, vals []float64, scale int) {
	if len(vals) != gp.w*gp.h {
		return
	}
	if gp.heightImg == nil {
		gp.heightImg = ebiten.NewImage(gp.w, gp.h)
		gp.heightBuf = make([]byte, 4*gp.w*gp.h)
	}
	fillHeightRGBA(gp.heightBuf, vals)
	gp.heightImg.WritePixels(gp.heightBuf)
	dst.DrawImage(gp.heightImg, scaled(scale))
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }

func scaled(scale int) *ebiten.DrawImageOptions {
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	return op
}
