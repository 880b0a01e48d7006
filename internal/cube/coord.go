package cube

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RootSizeLog2 is the log2 of the root cube's world-unit side length.
// A root cube spans [0, 2^RootSizeLog2) on every axis; a CubeCoord at
// depth d addresses a voxel of side 2^(RootSizeLog2-d) world units.
const RootSizeLog2 = 16

// CubeCoord identifies a sub-region of the octree at a given refinement
// level: Pos components at depth Depth must lie in [0, 2^Depth).
type CubeCoord struct {
	Pos   [3]int32
	Depth uint32
}

// voxelSize returns the world-unit side length of a voxel at depth d,
// relative to a root of side 2^RootSizeLog2.
func voxelSize(depth uint32) float32 {
	shift := int32(RootSizeLog2) - int32(depth)
	if shift >= 0 {
		return float32(int64(1) << uint(shift))
	}
	return 1.0 / float32(int64(1)<<uint(-shift))
}

// WorldToCoord maps a world-space point to the CubeCoord of the voxel
// containing it at the given depth.
func WorldToCoord(point mgl32.Vec3, depth uint32) CubeCoord {
	s := voxelSize(depth)
	return CubeCoord{
		Pos: [3]int32{
			int32(floorDiv(point.X(), s)),
			int32(floorDiv(point.Y(), s)),
			int32(floorDiv(point.Z(), s)),
		},
		Depth: depth,
	}
}

func floorDiv(v, s float32) float64 {
	q := float64(v) / float64(s)
	return floorF(q)
}

func floorF(v float64) float64 {
	i := float64(int64(v))
	if v < i {
		return i - 1
	}
	return i
}

// CoordToWorld returns the minimum world-space corner and side length of
// the axis-aligned box a CubeCoord denotes.
func CoordToWorld(coord CubeCoord) (minCorner mgl32.Vec3, size float32) {
	s := voxelSize(coord.Depth)
	return mgl32.Vec3{
		float32(coord.Pos[0]) * s,
		float32(coord.Pos[1]) * s,
		float32(coord.Pos[2]) * s,
	}, s
}

// ScaleCoord rescales coord to targetDepth, preserving the world-space
// center of the original cell: scaling to a finer depth picks the child
// cell that contains the original cell's center; scaling to a coarser
// depth picks the ancestor cell that contains it.
func ScaleCoord(coord CubeCoord, targetDepth uint32) CubeCoord {
	shift := int64(targetDepth) - int64(coord.Depth)
	var out [3]int32
	switch {
	case shift == 0:
		out = coord.Pos
	case shift > 0:
		half := int32(1) << uint(shift-1)
		for i, p := range coord.Pos {
			out[i] = (p << uint(shift)) + half
		}
	default:
		down := uint(-shift)
		for i, p := range coord.Pos {
			out[i] = p >> down
		}
	}
	return CubeCoord{Pos: out, Depth: targetDepth}
}

// SnapToGrid snaps a world-space point down to the nearest multiple of
// size on every axis.
func SnapToGrid(point mgl32.Vec3, size float32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(floorF(float64(point.X()/size))) * size,
		float32(floorF(float64(point.Y()/size))) * size,
		float32(floorF(float64(point.Z()/size))) * size,
	}
}
