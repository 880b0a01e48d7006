package noise_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelcore/cube/internal/worldcube/noise"
)

func TestSampleIsDeterministicForSameSeed(t *testing.T) {
	a := noise.New(7)
	b := noise.New(7)
	for x := int32(-20); x < 20; x += 3 {
		for z := int32(-20); z < 20; z += 3 {
			for y := int32(0); y < 64; y += 5 {
				require.Equal(t, a.Sample(x, y, z), b.Sample(x, y, z))
			}
		}
	}
}

func TestDifferentSeedsEventuallyDiffer(t *testing.T) {
	a := noise.New(1)
	b := noise.New(2)
	differed := false
	for x := int32(0); x < 200; x++ {
		if a.Sample(x, 32, 0) != b.Sample(x, 32, 0) {
			differed = true
			break
		}
	}
	require.True(t, differed)
}

func TestSampleIsEmptyFarAboveAndSolidFarBelow(t *testing.T) {
	g := noise.New(42)
	require.Equal(t, noise.Empty, g.Sample(0, 1000, 0))
	require.Equal(t, noise.Subsurface, g.Sample(0, -1000, 0))
}
