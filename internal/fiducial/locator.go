package fiducial

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/stat"
)

// Polarity selects whether the notch tip reads as a dark dip or a bright
// spike against the surrounding emulsion.
type Polarity int

const (
	// Dark notches are a local intensity dip (the common case for
	// notched fiducials on positive prints).
	Dark Polarity = iota
	// Bright notches are a local intensity spike.
	Bright
)

// Size is the search-window extent in pixels: Height is the depth the window
// reaches inward from the photo edge, Width the span along the edge.
type Size struct {
	Height int
	Width  int
}

// Config holds the locator's tunable heuristics. Accuracy depends entirely
// on the caller supplying an appropriately sized window: oversized windows
// risk capturing unrelated edge content, undersized windows may miss the
// notch. None of these values are auto-tuned.
type Config struct {
	// Window is the per-edge search window size (depth inward, span along
	// the edge), centered on the edge midpoint.
	Window Size

	// Polarity selects the extremum the notch tip produces.
	Polarity Polarity

	// MinProminence is the least the extremum must stand out from the mean
	// of its intensity profile (0-255 scale). Profiles flatter than this
	// fail the side rather than guessing at noise.
	MinProminence float64

	// MedianRadius conditions the window with a median filter of this
	// radius before profiling. Zero disables filtering.
	MedianRadius int
}

// side indexes the four photo edges in fixed top, right, bottom, left order.
type side int

const (
	top side = iota
	right
	bottom
	left
)

// window describes one side's search region as an origin plus two unit
// axes, so the same 1D profile search serves all four edges: depth steps
// move inward from the border, span steps move along it.
type window struct {
	origin r2.Point
	inward r2.Point
	along  r2.Point
}

// Locate finds the fiducial point nearest each edge midpoint.
//
// Per side, the window is profiled along the inward axis (mean intensity per
// depth step) and the polarity-directed extremum is taken as the notch
// depth; a second profile along the edge at that depth gives the cross
// position. Both axes get three-point parabolic sub-pixel refinement, and
// the result is mapped back to full-photo coordinates.
//
// Sides whose profile extremum does not clear MinProminence are left nil in
// the returned set; partial sets are expected and are not an error. The
// result is deterministic for identical input and configuration.
func Locate(img *image.Gray, cfg Config) (Set, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	depth := cfg.Window.Height
	span := cfg.Window.Width
	if depth < 3 || span < 3 {
		return Set{}, fmt.Errorf("fiducial: window %dx%d too small, need at least 3x3", depth, span)
	}
	if depth > w || depth > h || span > w || span > h {
		return Set{}, fmt.Errorf("fiducial: window %dx%d exceeds %dx%d photo", depth, span, w, h)
	}

	windows := map[side]window{
		top:    {origin: r2.Point{X: float64(w)/2 - float64(span)/2, Y: 0}, inward: r2.Point{Y: 1}, along: r2.Point{X: 1}},
		right:  {origin: r2.Point{X: float64(w - 1), Y: float64(h)/2 - float64(span)/2}, inward: r2.Point{X: -1}, along: r2.Point{Y: 1}},
		bottom: {origin: r2.Point{X: float64(w)/2 - float64(span)/2, Y: float64(h - 1)}, inward: r2.Point{Y: -1}, along: r2.Point{X: 1}},
		left:   {origin: r2.Point{X: 0, Y: float64(h)/2 - float64(span)/2}, inward: r2.Point{X: 1}, along: r2.Point{Y: 1}},
	}

	var set Set
	for _, s := range []side{top, right, bottom, left} {
		pt := locateSide(img, windows[s], depth, span, cfg)
		switch s {
		case top:
			set.Top = pt
		case right:
			set.Right = pt
		case bottom:
			set.Bottom = pt
		case left:
			set.Left = pt
		}
	}
	return set, nil
}

// locateSide runs the profile search inside one window. It returns nil when
// no extremum clears the prominence floor.
func locateSide(img *image.Gray, win window, depth, span int, cfg Config) *r2.Point {
	local := extract(img, win, depth, span)
	if cfg.MedianRadius > 0 {
		local = toGray(effect.Median(local, float64(cfg.MedianRadius)))
	}

	// Mean intensity per depth step, across the window span.
	profile := make([]float64, depth)
	for d := 0; d < depth; d++ {
		var sum float64
		for s := 0; s < span; s++ {
			sum += float64(local.Pix[d*local.Stride+s])
		}
		profile[d] = sum / float64(span)
	}

	di, ok := extremum(profile, cfg.Polarity, cfg.MinProminence)
	if !ok {
		return nil
	}

	// Cross profile along the edge, averaged over the rows adjacent to the
	// located depth.
	d0, d1 := di-1, di+1
	if d0 < 0 {
		d0 = 0
	}
	if d1 > depth-1 {
		d1 = depth - 1
	}
	cross := make([]float64, span)
	for s := 0; s < span; s++ {
		var sum float64
		for d := d0; d <= d1; d++ {
			sum += float64(local.Pix[d*local.Stride+s])
		}
		cross[s] = sum / float64(d1-d0+1)
	}

	si, ok := extremum(cross, cfg.Polarity, cfg.MinProminence)
	if !ok {
		return nil
	}

	dSub := float64(di) + refine(profile, di)
	sSub := float64(si) + refine(cross, si)

	pt := r2.Point{
		X: win.origin.X + dSub*win.inward.X + sSub*win.along.X,
		Y: win.origin.Y + dSub*win.inward.Y + sSub*win.along.Y,
	}
	return &pt
}

// extract copies the window into a local grayscale image whose rows run
// inward (depth) and columns run along the edge (span).
func extract(img *image.Gray, win window, depth, span int) *image.Gray {
	local := image.NewGray(image.Rect(0, 0, span, depth))
	min := img.Bounds().Min
	for d := 0; d < depth; d++ {
		for s := 0; s < span; s++ {
			x := int(win.origin.X + float64(d)*win.inward.X + float64(s)*win.along.X)
			y := int(win.origin.Y + float64(d)*win.inward.Y + float64(s)*win.along.Y)
			local.Pix[d*local.Stride+s] = img.GrayAt(min.X+x, min.Y+y).Y
		}
	}
	return local
}

// extremum finds the polarity-directed extremum of a profile and checks it
// stands out from the profile mean by at least minProminence.
func extremum(profile []float64, pol Polarity, minProminence float64) (int, bool) {
	best := 0
	for i, v := range profile {
		if pol == Dark && v < profile[best] {
			best = i
		}
		if pol == Bright && v > profile[best] {
			best = i
		}
	}

	mean := stat.Mean(profile, nil)
	prominence := mean - profile[best]
	if pol == Bright {
		prominence = profile[best] - mean
	}
	if prominence < minProminence {
		return 0, false
	}
	return best, true
}

// refine returns the parabolic sub-pixel offset of an extremum at index i,
// in the range (-0.5, 0.5). Boundary extrema are left unrefined.
func refine(profile []float64, i int) float64 {
	if i <= 0 || i >= len(profile)-1 {
		return 0
	}
	a, b, c := profile[i-1], profile[i], profile[i+1]
	denom := a - 2*b + c
	if denom == 0 {
		return 0
	}
	offset := 0.5 * (a - c) / denom
	if offset < -0.5 {
		offset = -0.5
	}
	if offset > 0.5 {
		offset = 0.5
	}
	return offset
}

// toGray flattens a filtered RGBA image back to grayscale.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return out
}
