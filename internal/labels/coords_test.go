package labels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCoords(t *testing.T) {
	polys := FromCoords([][][2]float64{
		{{50, 50}, {350, 50}, {350, 120}, {50, 120}},
		{{0, 0}, {10, 0}, {5, 8}},
	})

	require.Len(t, polys, 2)
	assert.Len(t, polys[0], 4)
	assert.Len(t, polys[1], 3)
	assert.Equal(t, 350.0, polys[0][1].X)
	assert.Equal(t, 50.0, polys[0][1].Y)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan01.json")
	data := `[[[50,50],[350,50],[350,120],[50,120]],[[1400,50],[1830,50],[1830,120],[1400,120]]]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	polys, err := FromFile(path)
	require.NoError(t, err)
	require.Len(t, polys, 2)
	assert.Equal(t, 1830.0, polys[1][2].X)
	assert.Equal(t, 120.0, polys[1][2].Y)
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := FromFile(path)
	require.Error(t, err)
}
