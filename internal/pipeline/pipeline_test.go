package pipeline

import (
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cartolab/aerio/internal/config"
)

func writePNG(t *testing.T, path string, width, height int, fill uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRun_EndToEnd(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	labelDir := t.TempDir()

	writePNG(t, filepath.Join(inDir, "scan01.png"), 120, 100, 180)
	writePNG(t, filepath.Join(inDir, "scan02.png"), 110, 105, 90)

	labelJSON := `[[[10,10],[40,10],[40,30],[10,30]]]`
	require.NoError(t, os.WriteFile(filepath.Join(labelDir, "scan01.json"), []byte(labelJSON), 0o644))

	cfg := config.Default()
	cfg.Input.Dir = inDir
	cfg.Input.Extensions = []string{".png"}
	cfg.Output.Dir = outDir
	cfg.Output.Workers = 2
	cfg.Crop.MinHeight = 10
	cfg.Crop.MinWidth = 10
	cfg.Fiducials.WindowHeight = 20
	cfg.Fiducials.WindowWidth = 30
	cfg.Border.Margin = 10
	cfg.Labels.Dir = labelDir

	r := New(cfg, zap.NewNop().Sugar())
	require.NoError(t, r.Run())

	// Fiducial coordinates are written even when every side misses.
	data, err := os.ReadFile(filepath.Join(outDir, "fiducials.json"))
	require.NoError(t, err)
	var coords map[string][][2]*float64
	require.NoError(t, json.Unmarshal(data, &coords))
	require.Len(t, coords, 2)
	require.Len(t, coords["scan01"], 4)
	assert.Nil(t, coords["scan01"][0][0], "flat plates have no locatable fiducials")

	// Masks and processed photos for both scans.
	assert.FileExists(t, filepath.Join(outDir, "scan01_mask.png"))
	assert.FileExists(t, filepath.Join(outDir, "scan02_mask.png"))
	assert.FileExists(t, filepath.Join(outDir, "scan01_processed.png"))
	assert.FileExists(t, filepath.Join(outDir, "scan02_processed.png"))

	// Both processed photos share the collection's common size.
	for _, name := range []string{"scan01_processed.png", "scan02_processed.png"} {
		f, err := os.Open(filepath.Join(outDir, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 110, img.Bounds().Dx(), name)
		assert.Equal(t, 100, img.Bounds().Dy(), name)
	}
}

func TestRun_ValidatesConfig(t *testing.T) {
	cfg := config.Default()
	r := New(cfg, zap.NewNop().Sugar())
	require.Error(t, r.Run(), "missing input/output dirs should fail validation")
}

func TestRun_EmptyCollection(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Dir = t.TempDir()
	cfg.Output.Dir = t.TempDir()

	r := New(cfg, zap.NewNop().Sugar())
	require.Error(t, r.Run())
}
