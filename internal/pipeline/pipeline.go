// Package pipeline orchestrates the batch-preparation flow: normalize a
// photo collection, locate fiducials, clean label proposals, and rasterize
// the exclusion masks handed to external triangulation software.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cartolab/aerio/internal/boxes"
	"github.com/cartolab/aerio/internal/config"
	"github.com/cartolab/aerio/internal/fiducial"
	"github.com/cartolab/aerio/internal/geometry"
	"github.com/cartolab/aerio/internal/labels"
	"github.com/cartolab/aerio/internal/photo"
)

// Runner executes the pipeline described by a config over one collection.
type Runner struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// New builds a runner. The logger must not be nil.
func New(cfg *config.Config, log *zap.SugaredLogger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run loads the collection and executes the passes in order: common-size
// crop, histogram matching, fiducial localization, and per-photo mask
// synthesis. Localization failures are logged and carried as partial
// results; geometric and dimension errors abort the run.
func (r *Runner) Run() error {
	if err := r.cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("pipeline: failed to create output dir: %w", err)
	}

	meta := photo.MetaConfig{DPI: r.cfg.Input.DPI}
	if r.cfg.Input.PhotoHeightMM > 0 && r.cfg.Input.PhotoWidthMM > 0 {
		meta.PhotoSize = photo.Dims{Height: r.cfg.Input.PhotoHeightMM, Width: r.cfg.Input.PhotoWidthMM}
	}

	coll, err := photo.LoadDir(r.cfg.Input.Dir, r.cfg.Input.Extensions, meta)
	if err != nil {
		return err
	}
	if coll.Len() == 0 {
		return fmt.Errorf("pipeline: no photos found in %s", r.cfg.Input.Dir)
	}
	r.log.Infow("loaded collection", "dir", r.cfg.Input.Dir, "photos", coll.Len())

	if err := coll.Crop(r.cfg.Crop.MinHeight, r.cfg.Crop.MinWidth); err != nil {
		return err
	}
	r.log.Infow("cropped to common size",
		"height", coll.At(0).Height(), "width", coll.At(0).Width())

	if r.cfg.Histogram.Enabled {
		if err := coll.MatchHistograms(r.cfg.Histogram.ReferenceIndex); err != nil {
			return err
		}
		r.log.Infow("matched histograms", "reference", coll.At(r.cfg.Histogram.ReferenceIndex).Label())
	}

	if r.cfg.Fiducials.Enabled {
		if err := r.locateFiducials(coll); err != nil {
			return err
		}
	}

	var g errgroup.Group
	g.SetLimit(r.cfg.Output.Workers)
	for i := 0; i < coll.Len(); i++ {
		p := coll.At(i)
		g.Go(func() error { return r.processPhoto(p) })
	}
	return g.Wait()
}

// locateFiducials runs the locator across the collection and writes the
// coordinates (with nulls for missed sides) to fiducials.json.
func (r *Runner) locateFiducials(coll *photo.Collection) error {
	polarity := fiducial.Dark
	if r.cfg.Fiducials.Polarity == "bright" {
		polarity = fiducial.Bright
	}
	cfg := fiducial.Config{
		Window: fiducial.Size{
			Height: r.cfg.Fiducials.WindowHeight,
			Width:  r.cfg.Fiducials.WindowWidth,
		},
		Polarity:      polarity,
		MinProminence: r.cfg.Fiducials.MinProminence,
		MedianRadius:  r.cfg.Fiducials.MedianRadius,
	}

	sets, err := coll.LocateFiducials(cfg, r.cfg.Output.Workers)
	if err != nil {
		return err
	}

	out := make(map[string][][2]*float64, coll.Len())
	for i, set := range sets {
		label := coll.At(i).Label()
		if !set.Complete() {
			r.log.Warnw("incomplete fiducial set", "photo", label, "located", set.Count())
		}
		coords := make([][2]*float64, 0, 4)
		for _, pt := range set.Coordinates() {
			if pt == nil {
				coords = append(coords, [2]*float64{nil, nil})
				continue
			}
			x, y := pt.X, pt.Y
			coords = append(coords, [2]*float64{&x, &y})
		}
		out[label] = coords
	}

	path := filepath.Join(r.cfg.Output.Dir, "fiducials.json")
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("pipeline: failed to encode fiducials: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("pipeline: failed to write %s: %w", path, err)
	}
	r.log.Infow("wrote fiducial coordinates", "path", path)
	return nil
}

// processPhoto builds and saves one photo's exclusion mask and processed
// image.
func (r *Runner) processPhoto(p *photo.Photo) error {
	frame := p.Frame()

	masked, err := boxes.New(frame, nil)
	if err != nil {
		return err
	}

	if polys := r.labelProposals(p); len(polys) > 0 {
		labelBoxes, err := boxes.New(frame, polys)
		if err != nil {
			return fmt.Errorf("photo %q: %w", p.Label(), err)
		}
		if err := labelBoxes.Collapse(
			r.cfg.Labels.CollapseKernelHeight,
			r.cfg.Labels.CollapseKernelWidth,
			r.cfg.Labels.CollapseIterations,
		); err != nil {
			return fmt.Errorf("photo %q: %w", p.Label(), err)
		}
		before := labelBoxes.Len()
		labelBoxes.Filter(r.cfg.Labels.MaxEdgeDistance, r.cfg.Labels.MaxHWRatio)
		r.log.Infow("cleaned label boxes", "photo", p.Label(),
			"proposals", len(polys), "collapsed", before, "kept", labelBoxes.Len())

		masked, err = boxes.Union(masked, labelBoxes)
		if err != nil {
			return err
		}
	}

	if r.cfg.Border.Enabled {
		border, err := p.BorderBox(r.cfg.Border.Margin)
		if err != nil {
			return fmt.Errorf("photo %q: %w", p.Label(), err)
		}
		masked, err = boxes.Union(masked, border)
		if err != nil {
			return err
		}
	}

	if masked.Len() > 0 {
		maskPath := filepath.Join(r.cfg.Output.Dir, p.Label()+r.cfg.Output.MaskSuffix+".png")
		if err := masked.SaveMask(maskPath); err != nil {
			return err
		}
		r.log.Infow("wrote mask", "photo", p.Label(), "boxes", masked.Len(), "path", maskPath)
	}

	if err := p.Save(r.cfg.Output.Dir, r.cfg.Output.Suffix); err != nil {
		return err
	}
	return nil
}

// labelProposals gathers raw label polygons for one photo: a per-photo JSON
// coordinate file when a label dir is configured, plus OCR proposals when
// the detector is enabled and built in.
func (r *Runner) labelProposals(p *photo.Photo) []geometry.Polygon {
	var polys []geometry.Polygon

	if r.cfg.Labels.Dir != "" {
		path := filepath.Join(r.cfg.Labels.Dir, p.Label()+".json")
		fromFile, err := labels.FromFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// No proposals for this photo.
		case err != nil:
			r.log.Warnw("skipping unreadable label file", "photo", p.Label(), "error", err)
		default:
			polys = append(polys, fromFile...)
		}
	}

	if r.cfg.Labels.DetectText {
		detected, err := labels.DetectText(p.Image(), r.cfg.Labels.MinConfidence)
		if err != nil {
			r.log.Warnw("text detection unavailable", "photo", p.Label(), "error", err)
		} else {
			polys = append(polys, detected...)
		}
	}

	return polys
}
