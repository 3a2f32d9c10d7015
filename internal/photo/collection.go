package photo

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cartolab/aerio/internal/fiducial"
)

// Collection is an ordered set of photos processed together. Order is load
// order and stable; photos are addressed by index.
type Collection struct {
	photos []*Photo
}

// NewCollection builds a collection over the given photos.
func NewCollection(photos ...*Photo) *Collection {
	return &Collection{photos: photos}
}

// Len returns the number of photos.
func (c *Collection) Len() int { return len(c.photos) }

// At returns the photo at index i in load order.
func (c *Collection) At(i int) *Photo { return c.photos[i] }

// Crop cuts every photo to the collection's common size: the minimum height
// and minimum width observed across all members. After Crop, every image in
// the collection has identical dimensions.
//
// minHeight and minWidth are a floor on the common size: if the computed
// target falls below either, Crop fails collection-wide before mutating any
// photo. Pass zeros to accept any target.
func (c *Collection) Crop(minHeight, minWidth int) error {
	if len(c.photos) == 0 {
		return nil
	}

	height := c.photos[0].Height()
	width := c.photos[0].Width()
	for _, p := range c.photos[1:] {
		if p.Height() < height {
			height = p.Height()
		}
		if p.Width() < width {
			width = p.Width()
		}
	}

	if height < minHeight || width < minWidth {
		return fmt.Errorf("%w: common size %dx%d is below the configured minimum %dx%d",
			ErrDimension, height, width, minHeight, minWidth)
	}

	for _, p := range c.photos {
		if err := p.CropTo(height, width); err != nil {
			return err
		}
	}
	return nil
}

// MatchHistograms remaps every photo's intensity distribution toward the
// photo at refIndex, which is itself left unmodified.
func (c *Collection) MatchHistograms(refIndex int) error {
	if refIndex < 0 || refIndex >= len(c.photos) {
		return fmt.Errorf("photo: reference index %d out of range [0,%d)", refIndex, len(c.photos))
	}
	ref := c.photos[refIndex]
	for _, p := range c.photos {
		p.MatchHistogram(ref)
	}
	return nil
}

// LocateFiducials runs the locator over every photo, up to workers photos at
// a time. Photos are independent, so the pass parallelizes freely; each
// worker writes only its own photo's result.
//
// The returned sets are in collection order. Sides the locator could not
// find are nil within their set; only configuration errors abort the pass.
func (c *Collection) LocateFiducials(cfg fiducial.Config, workers int) ([]fiducial.Set, error) {
	if workers < 1 {
		workers = 1
	}

	sets := make([]fiducial.Set, len(c.photos))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, p := range c.photos {
		i, p := i, p
		g.Go(func() error {
			set, err := p.LocateFiducials(cfg)
			if err != nil {
				return fmt.Errorf("photo %q: %w", p.Label(), err)
			}
			sets[i] = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}
