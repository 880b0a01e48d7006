package cube

import "github.com/go-gl/mathgl/mgl32"

// PlacementCoord implements the editor's placement rule: given a raycast
// hit coordinate and face normal, it scales the hit
// voxel to cursorDepth (center-to-center, via ScaleCoord) and, for
// far-side placement, steps one grid cell along the rounded normal. The
// offset is a unit step in octree space at cursorDepth, never in world
// space, so the result stays grid-aligned regardless of scale.
func PlacementCoord(hitCoord CubeCoord, normal mgl32.Vec3, cursorDepth uint32) CubeCoord {
	cursor := ScaleCoord(hitCoord, cursorDepth)
	cursor.Pos[0] += roundToInt(normal.X())
	cursor.Pos[1] += roundToInt(normal.Y())
	cursor.Pos[2] += roundToInt(normal.Z())
	return cursor
}

func roundToInt(v float32) int32 {
	if v >= 0 {
		return int32(v + 0.5)
	}
	return -int32(-v + 0.5)
}
