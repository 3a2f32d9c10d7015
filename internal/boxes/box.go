// Package boxes stores, merges, filters, and rasterizes sets of label and
// border regions for a single photo, and synthesizes the binary masks that
// blank those regions out of downstream photogrammetric processing.
package boxes

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/cartolab/aerio/internal/geometry"
)

// Mask pixel values. Masked (excluded) regions are dark on a light
// background, matching the convention of the scanning workflow.
const (
	MaskForeground uint8 = 0
	MaskBackground uint8 = 255
)

// ErrFrameMismatch is returned when combining collections whose boxes belong
// to different photos.
var ErrFrameMismatch = errors.New("boxes: collections reference different photo frames")

// Frame identifies the photo canvas a box lives on. Boxes only ever read
// their photo's extent, so a value handle replaces a back-reference to the
// photo itself.
type Frame struct {
	// Label identifies the photo (its source filename).
	Label string

	// Width and Height are the canvas extent in pixels.
	Width  int
	Height int
}

// Box is a simple polygon of three or more sub-pixel points in its frame's
// coordinate space. Size and distance heuristics operate on the box's
// axis-aligned bounding rectangle, not the exact polygon shape.
type Box struct {
	poly  geometry.Polygon
	frame Frame
}

// NewBox validates the polygon and binds it to a frame.
func NewBox(frame Frame, poly geometry.Polygon) (Box, error) {
	if err := poly.Validate(); err != nil {
		return Box{}, fmt.Errorf("boxes: %w", err)
	}
	return Box{poly: poly, frame: frame}, nil
}

// Polygon returns the box's vertices.
func (b Box) Polygon() geometry.Polygon { return b.poly }

// Bounds returns the axis-aligned bounding rectangle of the box.
func (b Box) Bounds() r2.Rect { return b.poly.Bounds() }

// Width returns the horizontal extent of the bounding rectangle.
func (b Box) Width() float64 { return b.Bounds().X.Length() }

// Height returns the vertical extent of the bounding rectangle.
func (b Box) Height() float64 { return b.Bounds().Y.Length() }

// Area returns the bounding-rectangle area.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// Centroid returns the mean of the box's vertices.
func (b Box) Centroid() r2.Point { return b.poly.Centroid() }

// HWRatio returns the height/width ratio of the bounding rectangle.
// Printed labels are wider than tall, so a high ratio marks a likely false
// detection. A zero-width box yields +Inf.
func (b Box) HWRatio() float64 {
	w := b.Width()
	if w == 0 {
		return math.Inf(1)
	}
	return b.Height() / w
}

// EdgeDistance returns the minimum distance from the box's bounding
// rectangle to any edge of the photo canvas.
func (b Box) EdgeDistance() float64 {
	return geometry.EdgeDistance(b.Bounds(), b.frame.Width, b.frame.Height)
}
