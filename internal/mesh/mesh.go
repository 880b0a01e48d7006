// Package mesh extracts a face-culled, greedy-merged triangle mesh from a
// Cube value: a depth-first walk that emits one quad per face of every
// homogeneous octree node (a Solid leaf, or an Interior whose whole
// subtree holds one material), skipping faces against non-empty
// neighbors. Adjacent nodes of the same material are not merged.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelcore/cube/internal/cube"
)

// GeometryData is an indexed triangle mesh with per-vertex attributes.
// Every slice but Indices and MaterialIDs is a flat array of components
// (3 per vertex for Vertices/Normals/Colors, 2 for UVs); MaterialIDs and
// Indices have one entry per vertex and per triangle corner respectively.
type GeometryData struct {
	Vertices    []float32
	Normals     []float32
	UVs         []float32
	Colors      []float32
	MaterialIDs []float32
	Indices     []uint32
}

// Builder resolves a material and face normal to the attributes the
// extractor stamps onto that face's four vertices. Implementations vary
// atlas mapping and palettes without touching traversal.
type Builder interface {
	Shade(materialID uint8, normal mgl32.Vec3) (uvs [4][2]float32, color mgl32.Vec3, materialIDOut float32)
}

// Palette shades a material by RGB lookup, defaulting to white (so
// shader-side texture sampling determines color for textured materials).
type Palette map[uint8]mgl32.Vec3

var defaultFaceUV = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func (p Palette) Shade(materialID uint8, _ mgl32.Vec3) ([4][2]float32, mgl32.Vec3, float32) {
	color, ok := p[materialID]
	if !ok {
		color = mgl32.Vec3{1, 1, 1}
	}
	return defaultFaceUV, color, float32(materialID)
}

type face struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
	axis    int
	sign    int32
}

// faces is ordered −x, +x, −y, +y, −z, +z, matching the extractor's
// required emission order. Corner offsets are counter-clockwise as
// viewed from outside the unit cube along the face normal.
var faces = [6]face{
	{normal: mgl32.Vec3{-1, 0, 0}, axis: 0, sign: -1, corners: [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{normal: mgl32.Vec3{1, 0, 0}, axis: 0, sign: 1, corners: [4]mgl32.Vec3{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	{normal: mgl32.Vec3{0, -1, 0}, axis: 1, sign: -1, corners: [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{normal: mgl32.Vec3{0, 1, 0}, axis: 1, sign: 1, corners: [4]mgl32.Vec3{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	{normal: mgl32.Vec3{0, 0, -1}, axis: 2, sign: -1, corners: [4]mgl32.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
	{normal: mgl32.Vec3{0, 0, 1}, axis: 2, sign: 1, corners: [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
}

// Generate walks root depth-first in octant order, emitting culled,
// greedily-merged faces shaded by builder.
func Generate(root *cube.Cube, builder Builder) GeometryData {
	var out GeometryData
	walk(root, root, cube.CubeCoord{}, builder, &out)
	return out
}

func walk(root, node *cube.Cube, coord cube.CubeCoord, builder Builder, out *GeometryData) {
	if m, ok := node.IsSolid(); ok {
		emitVoxel(root, coord, m, builder, out)
		return
	}
	if m, uniform := uniformMaterial(node); uniform {
		emitVoxel(root, coord, m, builder, out)
		return
	}
	kids, _ := node.IsInterior()
	for i := 0; i < 8; i++ {
		var pos [3]int32
		for axis := 0; axis < 3; axis++ {
			bit := int32((uint8(i) >> uint(2-axis)) & 1)
			pos[axis] = coord.Pos[axis]*2 + bit
		}
		walk(root, kids[i], cube.CubeCoord{Pos: pos, Depth: coord.Depth + 1}, builder, out)
	}
}

// uniformMaterial explicitly checks whether an entire (possibly
// non-normalized) subtree resolves to a single material, so greedy
// merging is correct even on input the caller never normalized.
func uniformMaterial(node *cube.Cube) (uint8, bool) {
	if m, ok := node.IsSolid(); ok {
		return m, true
	}
	kids, _ := node.IsInterior()
	m0, ok := uniformMaterial(kids[0])
	if !ok {
		return 0, false
	}
	for i := 1; i < 8; i++ {
		mi, ok := uniformMaterial(kids[i])
		if !ok || mi != m0 {
			return 0, false
		}
	}
	return m0, true
}

func emitVoxel(root *cube.Cube, coord cube.CubeCoord, material uint8, builder Builder, out *GeometryData) {
	if material == cube.Empty {
		return
	}
	boxMin, size := cube.CoordToWorld(coord)

	for _, f := range faces {
		if !neighborEmpty(root, coord, f.axis, f.sign) {
			continue
		}
		uvs, color, matID := builder.Shade(material, f.normal)
		base := uint32(len(out.Vertices) / 3)
		for i, corner := range f.corners {
			out.Vertices = append(out.Vertices,
				boxMin.X()+corner.X()*size,
				boxMin.Y()+corner.Y()*size,
				boxMin.Z()+corner.Z()*size,
			)
			out.Normals = append(out.Normals, f.normal.X(), f.normal.Y(), f.normal.Z())
			out.UVs = append(out.UVs, uvs[i][0], uvs[i][1])
			out.Colors = append(out.Colors, color.X(), color.Y(), color.Z())
			out.MaterialIDs = append(out.MaterialIDs, matID)
		}
		out.Indices = append(out.Indices, base, base+1, base+2, base, base+2, base+3)
	}
}

// neighborEmpty reports whether the cell adjacent to coord along the
// given axis and sign is empty, treating anything outside the root's
// addressable range at this depth as empty. It samples through the same
// contract cube.Sample uses, so a neighbor that is still Interior at
// coord.Depth continues toward its minimum-corner leaf rather than being
// treated as occupied.
func neighborEmpty(root *cube.Cube, coord cube.CubeCoord, axis int, sign int32) bool {
	neighbor := coord
	neighbor.Pos[axis] += sign

	limit := int32(1) << coord.Depth
	if neighbor.Pos[axis] < 0 || neighbor.Pos[axis] >= limit {
		return true
	}

	m, err := cube.Sample(root, neighbor)
	if err != nil {
		return false
	}
	return m == cube.Empty
}
