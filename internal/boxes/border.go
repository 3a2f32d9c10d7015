package boxes

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/cartolab/aerio/internal/geometry"
)

// BorderBand returns a collection holding a single polygon that traces a
// band of the given margin width around all four edges of the photo: the
// outer ring is the image boundary, the inner ring the boundary offset
// inward by margin. Under the even-odd fill rule the polygon rasterizes as
// the band between the rings.
//
// This is a geometric assumption, not a detection: it only works when the
// printed border is relatively straight, centered, and of uniform width.
func BorderBand(frame Frame, margin float64) (*Collection, error) {
	w := float64(frame.Width)
	h := float64(frame.Height)

	if margin <= 0 {
		return nil, fmt.Errorf("boxes: border margin must be positive, got %g", margin)
	}
	if 2*margin >= w || 2*margin >= h {
		return nil, fmt.Errorf("boxes: border margin %g leaves no interior on a %dx%d photo",
			margin, frame.Width, frame.Height)
	}

	// Exterior ring, closed, then interior ring, closed. The bridge edges
	// between the rings coincide and cancel under the even-odd rule.
	band := geometry.Polygon{
		{X: 0, Y: 0},
		{X: w, Y: 0},
		{X: w, Y: h},
		{X: 0, Y: h},
		{X: 0, Y: 0},
		{X: margin, Y: margin},
		{X: w - margin, Y: margin},
		{X: w - margin, Y: h - margin},
		{X: margin, Y: h - margin},
		{X: margin, Y: margin},
	}

	return New(frame, []geometry.Polygon{band})
}

// FiducialWindows returns a collection of the four axis-aligned search
// windows used for fiducial localization, one per edge midpoint. Size is
// (depth inward, span along the edge) in pixels. Useful for previewing where
// the locator will look before running it.
func FiducialWindows(frame Frame, depth, span float64) (*Collection, error) {
	w := float64(frame.Width)
	h := float64(frame.Height)

	windows := []r2.Rect{
		r2.RectFromPoints(r2.Point{X: w/2 - span/2, Y: 0}, r2.Point{X: w/2 + span/2, Y: depth}),
		r2.RectFromPoints(r2.Point{X: w - depth, Y: h/2 - span/2}, r2.Point{X: w, Y: h/2 + span/2}),
		r2.RectFromPoints(r2.Point{X: w/2 - span/2, Y: h - depth}, r2.Point{X: w/2 + span/2, Y: h}),
		r2.RectFromPoints(r2.Point{X: 0, Y: h/2 - span/2}, r2.Point{X: depth, Y: h/2 + span/2}),
	}

	polys := make([]geometry.Polygon, len(windows))
	for i, win := range windows {
		polys[i] = geometry.Rect(win)
	}
	return New(frame, polys)
}
