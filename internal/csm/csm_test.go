package csm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelcore/cube/internal/csm"
	"github.com/voxelcore/cube/internal/cube"
)

func allSolid(m uint8) [8]*cube.Cube {
	var kids [8]*cube.Cube
	for i := range kids {
		kids[i] = cube.Solid(m)
	}
	return kids
}

func TestParseLeaf(t *testing.T) {
	c, err := csm.Parse("s42")
	require.NoError(t, err)
	m, ok := c.IsSolid()
	require.True(t, ok)
	require.Equal(t, uint8(42), m)
}

func TestParseIsWhitespaceInsensitive(t *testing.T) {
	a, err := csm.Parse("o[s1 s2 s3 s4 s5 s6 s7 s8]")
	require.NoError(t, err)
	b, err := csm.Parse("  o[\n  s1\n\ts2  s3\ns4 s5 s6 s7 s8\n]  ")
	require.NoError(t, err)
	require.True(t, a.Equal(b))
}

func TestPrintIsDeterministicAndIndented(t *testing.T) {
	c := cube.Interior(allSolid(9))
	out := csm.Print(c)
	require.Equal(t, out, csm.Print(c))
	require.Contains(t, out, "o[\n")
	require.Contains(t, out, "  s9\n")
	require.True(t, out[len(out)-1] == ']')
}

func TestRoundTripSimpleLeaf(t *testing.T) {
	c := cube.Solid(200)
	out := csm.Print(c)
	parsed, err := csm.Parse(out)
	require.NoError(t, err)
	require.True(t, c.Equal(parsed))
}

func TestRoundTripNestedInterior(t *testing.T) {
	kids := allSolid(3)
	kids[5] = cube.Interior(allSolid(1))
	c := cube.Interior(kids)
	out := csm.Print(c)
	parsed, err := csm.Parse(out)
	require.NoError(t, err)
	require.True(t, c.Equal(parsed))
}

func TestErrorValueOutOfRange(t *testing.T) {
	_, err := csm.Parse("s256")
	require.Error(t, err)
	require.True(t, errors.Is(err, csm.ErrValueOutOfRange))
}

func TestErrorChildCountMismatchTooFew(t *testing.T) {
	_, err := csm.Parse("o[s1 s2 s3]")
	require.Error(t, err)
	require.True(t, errors.Is(err, csm.ErrChildCountMismatch))
}

func TestErrorChildCountMismatchTooMany(t *testing.T) {
	_, err := csm.Parse("o[s1 s2 s3 s4 s5 s6 s7 s8 s9]")
	require.Error(t, err)
	require.True(t, errors.Is(err, csm.ErrChildCountMismatch))
}

func TestErrorInvalidToken(t *testing.T) {
	_, err := csm.Parse("x1")
	require.Error(t, err)
	require.True(t, errors.Is(err, csm.ErrInvalidToken))
}

func TestErrorUnexpectedEnd(t *testing.T) {
	_, err := csm.Parse("o[s1 s2")
	require.Error(t, err)
	require.True(t, errors.Is(err, csm.ErrUnexpectedEnd))
}
