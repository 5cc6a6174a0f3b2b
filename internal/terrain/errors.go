package terrain

import (
	"errors"
	"fmt"
)

// MaxTiles bounds the number of tiles a single generation may allocate.
const MaxTiles = 1 << 26

var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("terrain: invalid dimensions")
	// ErrResourceExhausted is returned when the grid buffers cannot be allocated.
	ErrResourceExhausted = errors.New("terrain: resource exhausted")
	// ErrInvalidParams is returned when a stage parameter is out of range.
	ErrInvalidParams = errors.New("terrain: invalid parameters")
)

func checkDimensions(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	if w > MaxTiles/h {
		return fmt.Errorf("%w: %dx%d exceeds %d tiles", ErrResourceExhausted, w, h, MaxTiles)
	}
	return nil
}
