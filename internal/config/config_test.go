package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{".tif", ".tiff", ".png"}, cfg.Input.Extensions)
	assert.True(t, cfg.Histogram.Enabled)
	assert.Equal(t, 0, cfg.Histogram.ReferenceIndex)
	assert.Equal(t, 80, cfg.Fiducials.WindowHeight)
	assert.Equal(t, 120, cfg.Fiducials.WindowWidth)
	assert.Equal(t, "dark", cfg.Fiducials.Polarity)
	assert.Equal(t, 100.0, cfg.Labels.MaxEdgeDistance)
	assert.Equal(t, 0.5, cfg.Labels.MaxHWRatio)
	assert.Greater(t, cfg.Labels.CollapseKernelWidth, cfg.Labels.CollapseKernelHeight,
		"collapse kernel should bias horizontal merging")
	assert.GreaterOrEqual(t, cfg.Output.Workers, 1)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aerio.yaml")
	doc := `
input:
  dir: /data/scans
fiducials:
  windowHeight: 60
  polarity: bright
labels:
  maxEdgeDistance: 250
output:
  dir: /data/out
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/scans", cfg.Input.Dir)
	assert.Equal(t, 60, cfg.Fiducials.WindowHeight)
	assert.Equal(t, "bright", cfg.Fiducials.Polarity)
	assert.Equal(t, 250.0, cfg.Labels.MaxEdgeDistance)
	// Untouched keys keep their defaults.
	assert.Equal(t, 120, cfg.Fiducials.WindowWidth)
	assert.Equal(t, "_processed", cfg.Output.Suffix)
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Input.Dir = "/in"
		cfg.Output.Dir = "/out"
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("missing input dir", func(t *testing.T) {
		cfg := valid()
		cfg.Input.Dir = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("missing output dir", func(t *testing.T) {
		cfg := valid()
		cfg.Output.Dir = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("bad polarity", func(t *testing.T) {
		cfg := valid()
		cfg.Fiducials.Polarity = "sideways"
		require.Error(t, cfg.Validate())
	})

	t.Run("bad workers", func(t *testing.T) {
		cfg := valid()
		cfg.Output.Workers = 0
		require.Error(t, cfg.Validate())
	})
}
