package cube

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a CubeCoord's position lies outside the
// addressable region at its depth.
var ErrOutOfBounds = errors.New("cube: coordinate out of bounds")

// ErrDepthExceeded is returned when a requested depth exceeds MaxDepth.
var ErrDepthExceeded = errors.New("cube: depth exceeds maximum")

func outOfBoundsError(coord CubeCoord) error {
	return fmt.Errorf("%w: pos=%v depth=%d", ErrOutOfBounds, coord.Pos, coord.Depth)
}

func depthExceededError(depth uint32) error {
	return fmt.Errorf("%w: depth=%d max=%d", ErrDepthExceeded, depth, MaxDepth)
}

// validateCoord checks that coord.Pos lies within [0, 2^coord.Depth) on
// every axis and that coord.Depth does not exceed MaxDepth.
func validateCoord(coord CubeCoord) error {
	if coord.Depth > MaxDepth {
		return depthExceededError(coord.Depth)
	}
	bound := int32(1) << coord.Depth
	for _, p := range coord.Pos {
		if p < 0 || p >= bound {
			return outOfBoundsError(coord)
		}
	}
	return nil
}
