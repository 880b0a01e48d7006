// Package raycast implements a parametric octree DDA over Cube values,
// returning the first non-empty voxel hit along a ray together with the
// point and face normal of entry.
package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelcore/cube/internal/cube"
)

// epsilon bounds ray-direction components treated as axis-aligned, to
// keep reciprocal computations out of NaN/Inf territory for grazing or
// exactly axis-aligned rays.
const epsilon = 1e-8

// Hit describes where a ray entered a non-empty voxel.
type Hit struct {
	Coord  cube.CubeCoord
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// Cast traces a ray against root's octree, treating the root as spanning
// the axis-aligned box [0, 2^maxDepth) on every axis — one world unit
// per voxel at the deepest traversal level, matching the CubeCoord frame
// at depth maxDepth. Traversal does not descend past maxDepth; an
// Interior node reached with no residual depth is treated as Solid(0).
func Cast(root *cube.Cube, origin, dir mgl32.Vec3, maxDepth uint32) (Hit, bool) {
	if hasNaN(origin) || hasNaN(dir) {
		return Hit{}, false
	}
	if dir.Len() == 0 {
		return Hit{}, false
	}

	n := float32(int64(1) << maxDepth)
	boxMin := mgl32.Vec3{0, 0, 0}
	boxMax := mgl32.Vec3{n, n, n}

	tNear, tFar, axisNear, ok := boxIntersect(boxMin, boxMax, origin, dir)
	if !ok || tFar < 0 {
		return Hit{}, false
	}
	tEnter := tNear
	if tEnter < 0 {
		tEnter = 0
	}
	normal := exitNormal(axisNear, axisComponent(dir, axisNear))

	return castNode(root, boxMin, boxMax, origin, dir, tEnter, normal, cube.CubeCoord{}, maxDepth)
}

func hasNaN(v mgl32.Vec3) bool {
	return math.IsNaN(float64(v.X())) || math.IsNaN(float64(v.Y())) || math.IsNaN(float64(v.Z()))
}

func axisComponent(v mgl32.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X()
	case 1:
		return v.Y()
	default:
		return v.Z()
	}
}

func axisUnit(axis int, sign float32) mgl32.Vec3 {
	v := mgl32.Vec3{}
	switch axis {
	case 0:
		v[0] = sign
	case 1:
		v[1] = sign
	default:
		v[2] = sign
	}
	return v
}

// exitNormal is the outward-facing unit normal of the face a ray with
// direction component d along `axis` would enter through: the ray moving
// in the positive direction enters through the negative face and vice
// versa.
func exitNormal(axis int, d float32) mgl32.Vec3 {
	if d < 0 {
		return axisUnit(axis, 1)
	}
	return axisUnit(axis, -1)
}

// boxIntersect performs a slab test against an axis-aligned box, skipping
// the plane test on any axis where |dir| < epsilon (treating the ray as
// parallel to that axis' planes) and rejecting the ray entirely if the
// origin lies outside the slab on such an axis.
func boxIntersect(boxMin, boxMax, origin, dir mgl32.Vec3) (tNear, tFar float32, axisNear int, ok bool) {
	tNear = float32(math.Inf(-1))
	tFar = float32(math.Inf(1))
	axisNear = -1

	for axis := 0; axis < 3; axis++ {
		o := axisComponent(origin, axis)
		d := axisComponent(dir, axis)
		lo := axisComponent(boxMin, axis)
		hi := axisComponent(boxMax, axis)

		if d > -epsilon && d < epsilon {
			if o < lo || o > hi {
				return 0, 0, -1, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
			axisNear = axis
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return 0, 0, -1, false
		}
	}
	if axisNear == -1 {
		axisNear = 0
	}
	return tNear, tFar, axisNear, true
}

// boxExitT returns the parametric distance at which a ray already known
// to be inside [boxMin, boxMax] would leave it.
func boxExitT(boxMin, boxMax, origin, dir mgl32.Vec3) float32 {
	tFar := float32(math.Inf(1))
	for axis := 0; axis < 3; axis++ {
		o := axisComponent(origin, axis)
		d := axisComponent(dir, axis)
		lo := axisComponent(boxMin, axis)
		hi := axisComponent(boxMax, axis)
		if d > -epsilon && d < epsilon {
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t2 < tFar {
			tFar = t2
		}
	}
	return tFar
}

func childBox(boxMin, boxMax mgl32.Vec3, idx uint8) (mgl32.Vec3, mgl32.Vec3) {
	center := boxMin.Add(boxMax).Mul(0.5)
	var lo, hi mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		bit := (idx >> uint(2-axis)) & 1
		if bit == 1 {
			lo[axis] = center[axis]
			hi[axis] = axisComponent(boxMax, axis)
		} else {
			lo[axis] = axisComponent(boxMin, axis)
			hi[axis] = center[axis]
		}
	}
	return lo, hi
}

func octantOf(p, center mgl32.Vec3) uint8 {
	var idx uint8
	for axis := 0; axis < 3; axis++ {
		if axisComponent(p, axis) >= axisComponent(center, axis) {
			idx |= 1 << uint(2-axis)
		}
	}
	return idx
}

func childCoord(parent cube.CubeCoord, idx uint8) cube.CubeCoord {
	var pos [3]int32
	for axis := 0; axis < 3; axis++ {
		bit := int32((idx >> uint(2-axis)) & 1)
		pos[axis] = parent.Pos[axis]*2 + bit
	}
	return cube.CubeCoord{Pos: pos, Depth: parent.Depth + 1}
}

func castNode(
	node *cube.Cube,
	boxMin, boxMax mgl32.Vec3,
	origin, dir mgl32.Vec3,
	tEnter float32,
	entryNormal mgl32.Vec3,
	coord cube.CubeCoord,
	residualDepth uint32,
) (Hit, bool) {
	if m, isLeaf := node.IsSolid(); isLeaf {
		if m == cube.Empty {
			return Hit{}, false
		}
		return Hit{
			Coord:  coord,
			Point:  origin.Add(dir.Mul(tEnter)),
			Normal: entryNormal,
		}, true
	}

	if residualDepth == 0 {
		// Traversal budget exhausted; treat as if Solid(0).
		return Hit{}, false
	}

	center := boxMin.Add(boxMax).Mul(0.5)
	entryPoint := origin.Add(dir.Mul(tEnter))
	idx := octantOf(entryPoint, center)
	currentT := tEnter
	currentNormal := entryNormal
	tExit := boxExitT(boxMin, boxMax, origin, dir)

	var used [3]bool
	for {
		childMin, childMax := childBox(boxMin, boxMax, idx)
		kids, _ := node.IsInterior()
		if hit, ok := castNode(kids[idx], childMin, childMax, origin, dir, currentT, currentNormal, childCoord(coord, idx), residualDepth-1); ok {
			return hit, true
		}

		bestAxis := -1
		bestT := float32(math.Inf(1))
		for axis := 0; axis < 3; axis++ {
			if used[axis] {
				continue
			}
			d := axisComponent(dir, axis)
			if d > -epsilon && d < epsilon {
				continue
			}
			t := (axisComponent(center, axis) - axisComponent(origin, axis)) / d
			if t <= currentT || t > tExit {
				continue
			}
			if t < bestT {
				bestT = t
				bestAxis = axis
			}
		}
		if bestAxis == -1 {
			return Hit{}, false
		}
		used[bestAxis] = true
		currentT = bestT
		currentNormal = exitNormal(bestAxis, axisComponent(dir, bestAxis))
		idx ^= 1 << uint(2-bestAxis)
	}
}
