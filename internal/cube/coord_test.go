package cube

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestWorldToCoordAndBackRoundTrip(t *testing.T) {
	depth := uint32(4)
	coord := CubeCoord{Pos: [3]int32{3, 5, 2}, Depth: depth}
	minCorner, size := CoordToWorld(coord)

	// A point strictly inside the box maps back to the same coord.
	inside := minCorner.Add(mgl32.Vec3{size * 0.25, size * 0.25, size * 0.25})
	got := WorldToCoord(inside, depth)
	require.Equal(t, coord, got)
}

func TestScaleCoordIdentity(t *testing.T) {
	coord := CubeCoord{Pos: [3]int32{1, 2, 3}, Depth: 5}
	require.Equal(t, coord, ScaleCoord(coord, 5))
}

func TestScaleCoordFinerPicksCenterContainingChild(t *testing.T) {
	coord := CubeCoord{Pos: [3]int32{1, 0, 0}, Depth: 1}
	finer := ScaleCoord(coord, 2)
	// Cell [1,2) at depth 1 has center 1.5; the depth-2 cells [1,1.5) and
	// [1.5,2) split exactly at that center, and the half-step rule
	// resolves the tie to the upper cell.
	require.Equal(t, int32(3), finer.Pos[0])
	require.Equal(t, uint32(2), finer.Depth)
}

func TestScaleCoordCoarserTruncates(t *testing.T) {
	coord := CubeCoord{Pos: [3]int32{5, 2, 7}, Depth: 3}
	coarser := ScaleCoord(coord, 1)
	require.Equal(t, [3]int32{1, 0, 1}, coarser.Pos)
}

func TestSnapToGrid(t *testing.T) {
	p := mgl32.Vec3{5.7, -1.2, 8.0}
	snapped := SnapToGrid(p, 2)
	require.Equal(t, mgl32.Vec3{4, -2, 8}, snapped)
}
