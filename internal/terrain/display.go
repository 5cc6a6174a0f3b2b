package terrain

import "image/color"

var terrainPalette = []color.RGBA{
	Plain:  {R: 222, G: 204, B: 120, A: 255},
	Forest: {R: 40, G: 110, B: 55, A: 255},
	Water:  {R: 52, G: 110, B: 200, A: 255},
}

// Palette exposes the color palette indexed by TileKind.
func (w *World) Palette() []color.RGBA {
	return terrainPalette
}

// Palette returns the color palette indexed by TileKind.
func Palette() []color.RGBA {
	return terrainPalette
}
