// Package geometry provides the polygon primitives behind label masking:
// axis-aligned extents, canvas-edge distances, even-odd rasterization, and
// the binary-mask morphology used to merge nearby detections.
//
// All coordinates are sub-pixel (float64) in image space: origin at the
// top-left corner, x increasing along columns, y increasing down rows.
package geometry

import (
	"errors"

	"github.com/golang/geo/r2"
)

// ErrInvalidPolygon is returned when a polygon has fewer than three vertices.
var ErrInvalidPolygon = errors.New("geometry: polygon requires at least 3 points")

// Polygon is an ordered sequence of vertices forming a simple closed polygon.
// The closing edge from the last vertex back to the first is implicit.
type Polygon []r2.Point

// Validate checks that the polygon has enough vertices to enclose area.
func (p Polygon) Validate() error {
	if len(p) < 3 {
		return ErrInvalidPolygon
	}
	return nil
}

// Centroid returns the mean of the polygon's vertices.
func (p Polygon) Centroid() r2.Point {
	var sx, sy float64
	for _, pt := range p {
		sx += pt.X
		sy += pt.Y
	}
	n := float64(len(p))
	return r2.Point{X: sx / n, Y: sy / n}
}

// Bounds returns the axis-aligned bounding rectangle of the polygon.
// Downstream heuristics (collapse, filter) reason about this extent rather
// than the polygon's exact shape.
func (p Polygon) Bounds() r2.Rect {
	return r2.RectFromPoints(p...)
}

// Rect builds a rectangular polygon from an axis-aligned rectangle,
// ordered clockwise from the top-left corner.
func Rect(r r2.Rect) Polygon {
	return Polygon{
		{X: r.X.Lo, Y: r.Y.Lo},
		{X: r.X.Hi, Y: r.Y.Lo},
		{X: r.X.Hi, Y: r.Y.Hi},
		{X: r.X.Lo, Y: r.Y.Hi},
	}
}

// EdgeDistance returns the minimum distance from the rectangle to any of the
// four edges of a width x height canvas. A rectangle touching an edge has
// distance 0; the distance is negative if the rectangle extends past it.
func EdgeDistance(r r2.Rect, width, height int) float64 {
	d := r.X.Lo
	if right := float64(width) - r.X.Hi; right < d {
		d = right
	}
	if r.Y.Lo < d {
		d = r.Y.Lo
	}
	if bottom := float64(height) - r.Y.Hi; bottom < d {
		d = bottom
	}
	return d
}
