// Package packing encodes tile values as contiguous 3-bit fields, most
// significant bit first, with no padding between tiles.
package packing

import (
	"errors"
	"fmt"
)

// BitsPerTile is the width of one packed tile value.
const BitsPerTile = 3

const tileMask = 1<<BitsPerTile - 1

// ErrShortBuffer is returned when a buffer holds fewer bits than requested.
var ErrShortBuffer = errors.New("packing: buffer too short")

// PackedSize returns the number of bytes needed for n tiles.
func PackedSize(n int) int {
	if n <= 0 {
		return 0
	}
	return (n*BitsPerTile + 7) / 8
}

// Pack writes the low three bits of every tile into a new buffer. Unused low
// bits of the final byte are zero.
func Pack(tiles []uint8) []byte {
	out := make([]byte, PackedSize(len(tiles)))
	bit := 0
	for _, t := range tiles {
		v := t & tileMask
		for b := BitsPerTile - 1; b >= 0; b-- {
			if v>>uint(b)&1 == 1 {
				out[bit>>3] |= 0x80 >> uint(bit&7)
			}
			bit++
		}
	}
	return out
}

// Unpack decodes n tiles from buf.
func Unpack(buf []byte, n int) ([]uint8, error) {
	if n < 0 {
		return nil, fmt.Errorf("packing: negative tile count %d", n)
	}
	if need := PackedSize(n); len(buf) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d for %d tiles", ErrShortBuffer, len(buf), need, n)
	}
	out := make([]uint8, n)
	bit := 0
	for i := range out {
		var v uint8
		for b := 0; b < BitsPerTile; b++ {
			v <<= 1
			if buf[bit>>3]&(0x80>>uint(bit&7)) != 0 {
				v |= 1
			}
			bit++
		}
		out[i] = v
	}
	return out, nil
}
