// Package worldcube composes a deterministic noise-sampled macro terrain
// layer with a user-edit micro overlay into a single virtual Cube view,
// in which a non-empty micro voxel takes precedence over the macro terrain.
package worldcube

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/voxelcore/cube/internal/cube"
	"github.com/voxelcore/cube/internal/mesh"
)

// Sampler is the terrain contract: the material at a world-lattice
// voxel. Noise generation lives outside this package; internal/worldcube/noise
// provides one concrete implementation.
type Sampler func(x, y, z int32) uint8

// ErrDepthExceeded is returned when a requested depth would exceed the
// octree's supported refinement range.
var ErrDepthExceeded = errors.New("worldcube: requested depth exceeds supported range")

func depthExceededError(depth uint32) error {
	return fmt.Errorf("%w: depth %d", ErrDepthExceeded, depth)
}

// WorldCube is an immutable snapshot of a macro/micro composition; edits
// return a new WorldCube sharing the unedited macro layer and unchanged
// micro subtrees.
type WorldCube struct {
	macroDepth  uint32
	microDepth  uint32
	borderDepth uint32
	seed        int64

	macro *cube.Cube
	micro *cube.Cube
}

// New builds a WorldCube: macro is generated once, eagerly, by sampling
// sampler at every leaf of depth macroDepth; micro starts empty. seed is
// retained as metadata describing how sampler was seeded — New does not
// reseed sampler itself, since sampler already closes over any seed state
// the caller gave it.
func New(macroDepth, microDepth, borderDepth uint32, seed int64, sampler Sampler) (*WorldCube, error) {
	total := macroDepth + microDepth
	if total > cube.MaxDepth {
		return nil, depthExceededError(total)
	}
	return &WorldCube{
		macroDepth:  macroDepth,
		microDepth:  microDepth,
		borderDepth: borderDepth,
		seed:        seed,
		macro:       buildMacro(macroDepth, sampler),
		micro:       cube.Solid(cube.Empty),
	}, nil
}

// Seed returns the seed recorded at construction.
func (w *WorldCube) Seed() int64 { return w.seed }

// TotalDepth is macroDepth + microDepth, the depth of the composed view.
func (w *WorldCube) TotalDepth() uint32 { return w.macroDepth + w.microDepth }

func buildMacro(macroDepth uint32, sampler Sampler) *cube.Cube {
	return buildMacroNode(cube.CubeCoord{}, macroDepth, sampler)
}

func buildMacroNode(coord cube.CubeCoord, macroDepth uint32, sampler Sampler) *cube.Cube {
	if coord.Depth == macroDepth {
		return cube.Solid(sampler(coord.Pos[0], coord.Pos[1], coord.Pos[2]))
	}
	var kids [8]*cube.Cube
	for i := 0; i < 8; i++ {
		kids[i] = buildMacroNode(childCoord(coord, uint8(i)), macroDepth, sampler)
	}
	return cube.Normalize(cube.Interior(kids))
}

func childCoord(parent cube.CubeCoord, idx uint8) cube.CubeCoord {
	var pos [3]int32
	for axis := 0; axis < 3; axis++ {
		bit := int32((idx >> uint(2-axis)) & 1)
		pos[axis] = parent.Pos[axis]*2 + bit
	}
	return cube.CubeCoord{Pos: pos, Depth: parent.Depth + 1}
}

// SampleAt returns the material at coord: the micro layer's value where
// it is non-empty, otherwise the macro layer's value. An edit that writes
// Empty to the micro layer therefore shows the macro material again.
func (w *WorldCube) SampleAt(coord cube.CubeCoord) (uint8, error) {
	m, err := cube.Sample(w.micro, coord)
	if err != nil {
		return 0, err
	}
	if m != cube.Empty {
		return m, nil
	}
	return cube.Sample(w.macro, coord)
}

// SetAt returns a new WorldCube with the micro layer updated at coord.
func (w *WorldCube) SetAt(coord cube.CubeCoord, mat uint8) (*WorldCube, error) {
	newMicro, err := cube.SetAt(w.micro, coord, mat)
	if err != nil {
		return nil, err
	}
	clone := *w
	clone.micro = newMicro
	return &clone, nil
}

// GetSubtree produces a stand-alone Cube snapshot of the region at coord,
// refined depth further levels past coord.Depth, composing macro and
// micro: a non-empty micro voxel wins over the macro material.
func (w *WorldCube) GetSubtree(coord cube.CubeCoord, depth uint32) (*cube.Cube, error) {
	target := coord.Depth + depth
	if target > cube.MaxDepth {
		return nil, depthExceededError(target)
	}
	return w.composeNode(coord, target, true), nil
}

// GenerateFrame extracts a mesh from the fully composed view.
func (w *WorldCube) GenerateFrame(builder mesh.Builder) mesh.GeometryData {
	root := w.composeNode(cube.CubeCoord{}, w.TotalDepth(), true)
	return mesh.Generate(root, builder)
}

func (w *WorldCube) composeNode(coord cube.CubeCoord, targetDepth uint32, parallel bool) *cube.Cube {
	if coord.Depth >= targetDepth {
		m, _ := w.SampleAt(coord)
		return cube.Solid(m)
	}

	microSub, _ := cube.GetSubtree(w.micro, coord)
	if m, ok := microSub.IsSolid(); ok {
		if m != cube.Empty {
			return cube.Solid(m)
		}
		macroSub, _ := cube.GetSubtree(w.macro, coord)
		if m2, ok2 := macroSub.IsSolid(); ok2 {
			if coord.Depth >= w.macroDepth+w.borderDepth {
				return cube.Solid(m2)
			}
			// Within the border band the cell is subdivided instead of
			// returned at once. Both layers are uniform below coord here
			// (micro empty, macro m2), so every child resolves to m2 and
			// Normalize collapses them back to Solid(m2): the composed
			// view is the same for every border depth.
		}
	}

	return w.composeChildren(coord, targetDepth, parallel)
}

func (w *WorldCube) composeChildren(coord cube.CubeCoord, targetDepth uint32, parallel bool) *cube.Cube {
	var kids [8]*cube.Cube
	if parallel {
		var g errgroup.Group
		for i := 0; i < 8; i++ {
			i := i
			g.Go(func() error {
				kids[i] = w.composeNode(childCoord(coord, uint8(i)), targetDepth, false)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := 0; i < 8; i++ {
			kids[i] = w.composeNode(childCoord(coord, uint8(i)), targetDepth, false)
		}
	}
	return cube.Normalize(cube.Interior(kids))
}
