package raycast_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/voxelcore/cube/internal/cube"
	"github.com/voxelcore/cube/internal/raycast"
)

func allSolid(m uint8) [8]*cube.Cube {
	var kids [8]*cube.Cube
	for i := range kids {
		kids[i] = cube.Solid(m)
	}
	return kids
}

// singleVoxel builds a depth-3 tree where only the voxel at {(0,0,0),3} is
// Solid(material) and every other leaf is empty.
func singleVoxel(material uint8) *cube.Cube {
	c := cube.Solid(material)
	for level := 0; level < 3; level++ {
		kids := allSolid(cube.Empty)
		kids[0] = c
		c = cube.Interior(kids)
	}
	return c
}

// S4 — axis-aligned ray along +X hits the corner voxel's near face.
func TestAxisAlignedHitMatchesEntryFace(t *testing.T) {
	root := singleVoxel(9)
	hit, ok := raycast.Cast(root, mgl32.Vec3{-1, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 3)
	require.True(t, ok)
	require.Equal(t, cube.CubeCoord{Pos: [3]int32{0, 0, 0}, Depth: 3}, hit.Coord)
	requireVec3(t, mgl32.Vec3{0, 0.5, 0.5}, hit.Point)
	requireVec3(t, mgl32.Vec3{-1, 0, 0}, hit.Normal)
}

// S6 — ray descending along -Y passes through empty space before reaching
// the corner voxel's top face.
func TestRayThroughEmptySpaceHitsTopFace(t *testing.T) {
	root := singleVoxel(9)
	hit, ok := raycast.Cast(root, mgl32.Vec3{0.5, 10, 0.5}, mgl32.Vec3{0, -1, 0}, 3)
	require.True(t, ok)
	require.Equal(t, cube.CubeCoord{Pos: [3]int32{0, 0, 0}, Depth: 3}, hit.Coord)
	requireVec3(t, mgl32.Vec3{0.5, 1, 0.5}, hit.Point)
	requireVec3(t, mgl32.Vec3{0, 1, 0}, hit.Normal)
}

func TestMissWhenRayPointsAway(t *testing.T) {
	root := singleVoxel(9)
	_, ok := raycast.Cast(root, mgl32.Vec3{-1, 0.5, 0.5}, mgl32.Vec3{-1, 0, 0}, 3)
	require.False(t, ok)
}

func TestMissAgainstEntirelyEmptyTree(t *testing.T) {
	root := cube.Solid(cube.Empty)
	_, ok := raycast.Cast(root, mgl32.Vec3{-1, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 3)
	require.False(t, ok)
}

func TestHitsUniformSolidRootDirectly(t *testing.T) {
	root := cube.Solid(7)
	hit, ok := raycast.Cast(root, mgl32.Vec3{-1, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 3)
	require.True(t, ok)
	require.Equal(t, uint32(0), hit.Coord.Depth)
	requireVec3(t, mgl32.Vec3{0, 0.5, 0.5}, hit.Point)
}

// A ray travelling in the exact opposite direction must report the
// opposite entry normal for a symmetric pair of origins.
func TestNormalInversionForOppositeDirections(t *testing.T) {
	root := singleVoxel(9)
	forward, ok := raycast.Cast(root, mgl32.Vec3{-1, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 3)
	require.True(t, ok)

	backward, ok := raycast.Cast(root, mgl32.Vec3{9, 0.5, 0.5}, mgl32.Vec3{-1, 0, 0}, 3)
	require.True(t, ok)

	require.Equal(t, forward.Normal.Mul(-1), backward.Normal)
}

// Rays exactly parallel to a pair of axes must neither divide by zero nor
// produce NaN/Inf coordinates.
func TestAxisAlignedRayAvoidsNaN(t *testing.T) {
	root := singleVoxel(9)
	hit, ok := raycast.Cast(root, mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{1, 0, 0}, 3)
	require.True(t, ok)
	require.False(t, math.IsNaN(float64(hit.Point.X())))
	require.False(t, math.IsInf(float64(hit.Point.X()), 0))
}

func TestZeroDirectionMisses(t *testing.T) {
	root := singleVoxel(9)
	_, ok := raycast.Cast(root, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0, 0, 0}, 3)
	require.False(t, ok)
}

func TestNaNOriginMisses(t *testing.T) {
	root := singleVoxel(9)
	_, ok := raycast.Cast(root, mgl32.Vec3{float32(math.NaN()), 0, 0}, mgl32.Vec3{1, 0, 0}, 3)
	require.False(t, ok)
}

func TestResidualDepthExhaustionStopsAtCutoff(t *testing.T) {
	root := singleVoxel(9)
	_, ok := raycast.Cast(root, mgl32.Vec3{-1, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 2)
	require.False(t, ok)
}

func requireVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	const eps = 1e-4
	require.InDelta(t, want.X(), got.X(), eps)
	require.InDelta(t, want.Y(), got.Y(), eps)
	require.InDelta(t, want.Z(), got.Z(), eps)
}
