// Package config loads the batch-preparation pipeline configuration from
// YAML and provides defaults. Every heuristic threshold in the pipeline is
// caller-supplied here, never silently auto-tuned: wrong results from bad
// parameters are corrected by editing the file and re-running.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the pipeline configuration loaded from YAML.
type Config struct {
	// Input parameters
	Input struct {
		// Dir is the directory of scanned photographs.
		Dir string `yaml:"dir"`

		// Extensions lists the file extensions to load, e.g. [".tif", ".png"].
		Extensions []string `yaml:"extensions"`

		// DPI is the scanning resolution, if known.
		DPI float64 `yaml:"dpi"`

		// PhotoHeightMM and PhotoWidthMM give the physical print size, if known.
		PhotoHeightMM float64 `yaml:"photoHeightMM"`
		PhotoWidthMM  float64 `yaml:"photoWidthMM"`
	} `yaml:"input"`

	// Crop parameters for the common-size pass
	Crop struct {
		// MinHeight and MinWidth are a floor on the collection's common
		// size; cropping fails if the smallest photo falls below them.
		MinHeight int `yaml:"minHeight"`
		MinWidth  int `yaml:"minWidth"`
	} `yaml:"crop"`

	// Histogram matching parameters
	Histogram struct {
		// Enabled toggles the histogram-matching pass.
		Enabled bool `yaml:"enabled"`

		// ReferenceIndex selects the reference photo (load order).
		ReferenceIndex int `yaml:"referenceIndex"`
	} `yaml:"histogram"`

	// Fiducial locator parameters
	Fiducials struct {
		// Enabled toggles fiducial localization.
		Enabled bool `yaml:"enabled"`

		// WindowHeight is the search-window depth inward from each edge,
		// WindowWidth its span along the edge, in pixels.
		WindowHeight int `yaml:"windowHeight"`
		WindowWidth  int `yaml:"windowWidth"`

		// Polarity is "dark" or "bright".
		Polarity string `yaml:"polarity"`

		// MinProminence is the extremum prominence floor (0-255).
		MinProminence float64 `yaml:"minProminence"`

		// MedianRadius conditions the window before profiling; 0 disables.
		MedianRadius int `yaml:"medianRadius"`
	} `yaml:"fiducials"`

	// Label masking parameters
	Labels struct {
		// Dir holds per-photo JSON coordinate lists (<label>.json) from an
		// external detector. Empty disables file-based proposals.
		Dir string `yaml:"dir"`

		// DetectText runs the built-in OCR adapter (cgo builds only).
		DetectText bool `yaml:"detectText"`

		// MinConfidence filters OCR proposals (0-100).
		MinConfidence float64 `yaml:"minConfidence"`

		// Collapse kernel (height x width) and iteration count for merging
		// character-level detections into word-level boxes.
		CollapseKernelHeight int `yaml:"collapseKernelHeight"`
		CollapseKernelWidth  int `yaml:"collapseKernelWidth"`
		CollapseIterations   int `yaml:"collapseIterations"`

		// Filter keep-bounds: boxes farther than MaxEdgeDistance from every
		// canvas edge, or taller than MaxHWRatio x width, are dropped.
		MaxEdgeDistance float64 `yaml:"maxEdgeDistance"`
		MaxHWRatio      float64 `yaml:"maxHWRatio"`
	} `yaml:"labels"`

	// Border band parameters
	Border struct {
		// Enabled toggles the printed-border band mask.
		Enabled bool `yaml:"enabled"`

		// Margin is the band width in pixels.
		Margin float64 `yaml:"margin"`
	} `yaml:"border"`

	// Output parameters
	Output struct {
		// Dir receives processed photos, masks, and fiducial coordinates.
		Dir string `yaml:"dir"`

		// Suffix is inserted into processed photo filenames.
		Suffix string `yaml:"suffix"`

		// MaskSuffix is inserted into mask filenames.
		MaskSuffix string `yaml:"maskSuffix"`

		// Workers bounds per-photo parallelism.
		Workers int `yaml:"workers"`
	} `yaml:"output"`
}

// Default returns a configuration with workable defaults for 23x23cm
// aerial survey prints scanned around 1200 dpi.
func Default() *Config {
	cfg := &Config{}

	cfg.Input.Extensions = []string{".tif", ".tiff", ".png"}

	cfg.Crop.MinHeight = 100
	cfg.Crop.MinWidth = 100

	cfg.Histogram.Enabled = true
	cfg.Histogram.ReferenceIndex = 0

	cfg.Fiducials.Enabled = true
	cfg.Fiducials.WindowHeight = 80
	cfg.Fiducials.WindowWidth = 120
	cfg.Fiducials.Polarity = "dark"
	cfg.Fiducials.MinProminence = 10
	cfg.Fiducials.MedianRadius = 2

	cfg.Labels.MinConfidence = 40
	cfg.Labels.CollapseKernelHeight = 5
	cfg.Labels.CollapseKernelWidth = 25
	cfg.Labels.CollapseIterations = 3
	cfg.Labels.MaxEdgeDistance = 100
	cfg.Labels.MaxHWRatio = 0.5

	cfg.Border.Enabled = true
	cfg.Border.Margin = 40

	cfg.Output.Suffix = "_processed"
	cfg.Output.MaskSuffix = "_mask"
	cfg.Output.Workers = runtime.NumCPU()

	return cfg
}

// Load reads a YAML file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints before a run.
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return fmt.Errorf("config: input.dir is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("config: output.dir is required")
	}
	if c.Fiducials.Enabled && c.Fiducials.Polarity != "dark" && c.Fiducials.Polarity != "bright" {
		return fmt.Errorf("config: fiducials.polarity must be \"dark\" or \"bright\", got %q", c.Fiducials.Polarity)
	}
	if c.Labels.MaxHWRatio < 0 {
		return fmt.Errorf("config: labels.maxHWRatio must be >= 0")
	}
	if c.Output.Workers < 1 {
		return fmt.Errorf("config: output.workers must be >= 1")
	}
	return nil
}
