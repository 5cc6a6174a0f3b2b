package terrain

import "strings"

// TileKind enumerates the terrain category stored in each grid cell.
type TileKind uint8

const (
	Plain TileKind = iota
	Forest
	Water
)

func (k TileKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Forest:
		return "forest"
	case Water:
		return "water"
	default:
		return "unknown"
	}
}

// Glyph returns the single-character representation used by text renderings.
func (k TileKind) Glyph() byte {
	switch k {
	case Forest:
		return 'T'
	case Water:
		return '~'
	default:
		return '.'
	}
}

// TileCounts tallies tiles by kind.
type TileCounts struct {
	Plain  int `json:"plain"`
	Forest int `json:"forest"`
	Water  int `json:"water"`
}

// Total returns the number of tiles counted.
func (c TileCounts) Total() int { return c.Plain + c.Forest + c.Water }

// Count tallies the tile kinds present in cells.
func Count(cells []uint8) TileCounts {
	var c TileCounts
	for _, v := range cells {
		switch TileKind(v) {
		case Forest:
			c.Forest++
		case Water:
			c.Water++
		default:
			c.Plain++
		}
	}
	return c
}

// RenderText draws the row-major cells as one line of glyphs per row.
func RenderText(cells []uint8, width int) string {
	if width <= 0 || len(cells) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(cells) + len(cells)/width)
	for i, v := range cells {
		b.WriteByte(TileKind(v).Glyph())
		if (i+1)%width == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
