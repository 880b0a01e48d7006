package region_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelcore/cube/internal/cube"
	"github.com/voxelcore/cube/internal/region"
)

func TestGetSubtreeReadsInitialRoot(t *testing.T) {
	root := cube.Solid(5)
	c := region.New(root, region.DefaultConfig(), nil)

	sub, err := c.GetSubtree(cube.CubeCoord{})
	require.NoError(t, err)
	m, ok := sub.IsSolid()
	require.True(t, ok)
	require.Equal(t, uint8(5), m)
}

func TestSetSubtreeUpdatesRootAndInvalidatesCache(t *testing.T) {
	c := region.New(cube.Solid(cube.Empty), region.DefaultConfig(), nil)

	coord := cube.CubeCoord{Pos: [3]int32{0, 0, 0}, Depth: 2}
	_, err := c.GetSubtree(coord)
	require.NoError(t, err)
	require.Equal(t, 1, c.CachedCount())

	err = c.SetSubtree(coord, cube.Solid(3))
	require.NoError(t, err)
	require.Equal(t, 0, c.CachedCount())

	sub, err := c.GetSubtree(coord)
	require.NoError(t, err)
	m, ok := sub.IsSolid()
	require.True(t, ok)
	require.Equal(t, uint8(3), m)
}

func TestCacheEvictsOldestBeyondMaxCachedSubtrees(t *testing.T) {
	c := region.New(cube.Solid(9), region.Config{MaxCachedSubtrees: 2}, nil)

	_, err := c.GetSubtree(cube.CubeCoord{Pos: [3]int32{0, 0, 0}, Depth: 1})
	require.NoError(t, err)
	_, err = c.GetSubtree(cube.CubeCoord{Pos: [3]int32{1, 0, 0}, Depth: 1})
	require.NoError(t, err)
	require.Equal(t, 2, c.CachedCount())

	_, err = c.GetSubtree(cube.CubeCoord{Pos: [3]int32{0, 1, 0}, Depth: 1})
	require.NoError(t, err)
	require.Equal(t, 2, c.CachedCount())
}

func TestRootReflectsLatestWrite(t *testing.T) {
	c := region.New(cube.Solid(cube.Empty), region.DefaultConfig(), nil)
	require.NoError(t, c.SetSubtree(cube.CubeCoord{}, cube.Solid(7)))

	m, ok := c.Root().IsSolid()
	require.True(t, ok)
	require.Equal(t, uint8(7), m)
}
