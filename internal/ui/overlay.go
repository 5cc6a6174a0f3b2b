//go:build ebiten

package ui

import (
	"image/color"

	"tilegen/internal/core"
	"tilegen/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type heightFieldProvider interface {
	HeightField() []float64
}

// Overlay draws the elevation layer and a progress readout on top of the map.
type Overlay struct {
	sim        core.Sim
	painter    *render.GridPainter
	scale      int
	showHeight bool
	showInfo   bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, painter *render.GridPainter, scale int) *Overlay {
	o := &Overlay{sim: sim, painter: painter, scale: scale, showInfo: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHeight = !o.showHeight
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.showInfo = !o.showInfo
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showHeight && o.painter != nil {
		if provider, ok := o.sim.(heightFieldProvider); ok {
			o.painter.BlitHeight(screen, provider.HeightField(), o.scale)
		}
	}
	if o.showInfo {
		o.drawInfo(screen, StatusLines(o.sim))
	}
}

func (o *Overlay) drawInfo(screen *ebiten.Image, lines []string) {
	const (
		pad        = 6
		lineHeight = 15
		baseline   = 12
	)
	face := basicfont.Face7x13
	width := 0
	for _, line := range lines {
		if w := text.BoundString(face, line).Dx(); w > width {
			width = w
		}
	}
	height := len(lines)*lineHeight + pad

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*pad), float64(height))
	op.ColorM.Scale(0, 0, 0, 0.6)
	screen.DrawImage(o.pixel, op)

	for i, line := range lines {
		text.Draw(screen, line, face, pad, pad+baseline+i*lineHeight, color.RGBA{R: 230, G: 230, B: 235, A: 255})
	}
}
