package worldcube_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelcore/cube/internal/cube"
	"github.com/voxelcore/cube/internal/mesh"
	"github.com/voxelcore/cube/internal/worldcube"
)

// simpleFlatSampler returns material 1 below a fixed height and Empty at
// or above it, giving tests a terrain shape they can reason about exactly.
func simpleFlatSampler(height int32) worldcube.Sampler {
	return func(x, y, z int32) uint8 {
		if y < height {
			return 1
		}
		return cube.Empty
	}
}

func TestSampleAtReadsMacroWhenMicroUnedited(t *testing.T) {
	w, err := worldcube.New(3, 2, 0, 1, simpleFlatSampler(4))
	require.NoError(t, err)

	m, err := w.SampleAt(cube.CubeCoord{Pos: [3]int32{0, 0, 0}, Depth: w.TotalDepth()})
	require.NoError(t, err)
	require.Equal(t, uint8(1), m)

	m, err = w.SampleAt(cube.CubeCoord{Pos: [3]int32{0, 17, 0}, Depth: w.TotalDepth()})
	require.NoError(t, err)
	require.Equal(t, cube.Empty, m)
}

func TestSetAtOverridesMacroAndReturnsNewWorldCube(t *testing.T) {
	w, err := worldcube.New(3, 2, 0, 1, simpleFlatSampler(0))
	require.NoError(t, err)

	coord := cube.CubeCoord{Pos: [3]int32{1, 1, 1}, Depth: w.TotalDepth()}
	before, err := w.SampleAt(coord)
	require.NoError(t, err)
	require.Equal(t, cube.Empty, before)

	edited, err := w.SetAt(coord, 9)
	require.NoError(t, err)

	after, err := edited.SampleAt(coord)
	require.NoError(t, err)
	require.Equal(t, uint8(9), after)

	unchanged, err := w.SampleAt(coord)
	require.NoError(t, err)
	require.Equal(t, cube.Empty, unchanged)
}

func TestGetSubtreeComposesMacroAndMicro(t *testing.T) {
	w, err := worldcube.New(2, 2, 1, 5, simpleFlatSampler(100))
	require.NoError(t, err)

	coord := cube.CubeCoord{Pos: [3]int32{0, 0, 0}, Depth: w.TotalDepth()}
	edited, err := w.SetAt(coord, 7)
	require.NoError(t, err)

	sub, err := edited.GetSubtree(cube.CubeCoord{}, edited.TotalDepth())
	require.NoError(t, err)

	m, err := cube.Sample(sub, coord)
	require.NoError(t, err)
	require.Equal(t, uint8(7), m)
}

func TestGenerateFrameProducesNonEmptyGeometryForSolidTerrain(t *testing.T) {
	w, err := worldcube.New(2, 1, 0, 9, simpleFlatSampler(100))
	require.NoError(t, err)

	geo := w.GenerateFrame(mesh.Palette{1: {0.5, 0.5, 0.5}})
	require.NotEmpty(t, geo.Vertices)
	require.NotEmpty(t, geo.Indices)
}

func TestGenerateFrameIsEmptyForAllEmptyTerrain(t *testing.T) {
	w, err := worldcube.New(2, 1, 0, 9, simpleFlatSampler(-1000))
	require.NoError(t, err)

	geo := w.GenerateFrame(mesh.Palette{})
	require.Empty(t, geo.Vertices)
	require.Empty(t, geo.Indices)
}

func TestNewRejectsDepthBeyondSupportedRange(t *testing.T) {
	_, err := worldcube.New(cube.MaxDepth, cube.MaxDepth, 0, 1, simpleFlatSampler(0))
	require.ErrorIs(t, err, worldcube.ErrDepthExceeded)
}

func TestSeedIsRetainedAsMetadata(t *testing.T) {
	w, err := worldcube.New(1, 1, 0, 1234, simpleFlatSampler(0))
	require.NoError(t, err)
	require.Equal(t, int64(1234), w.Seed())
}
