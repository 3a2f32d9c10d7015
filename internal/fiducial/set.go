// Package fiducial locates the four notch-fiducial calibration points near
// the edge midpoints of a scanned aerial photograph.
package fiducial

import "github.com/golang/geo/r2"

// Set holds the located fiducial point for each photo edge. An entry is nil
// when the locator could not find a confident extremum on that side; callers
// must check Complete before relying on the set for interior orientation.
type Set struct {
	Top    *r2.Point
	Right  *r2.Point
	Bottom *r2.Point
	Left   *r2.Point
}

// Coordinates returns the four points in fixed order: top, right, bottom,
// left. Missing entries are nil.
func (s Set) Coordinates() []*r2.Point {
	return []*r2.Point{s.Top, s.Right, s.Bottom, s.Left}
}

// Complete reports whether all four fiducials were located.
func (s Set) Complete() bool {
	return s.Top != nil && s.Right != nil && s.Bottom != nil && s.Left != nil
}

// Count returns the number of located fiducials.
func (s Set) Count() int {
	n := 0
	for _, p := range s.Coordinates() {
		if p != nil {
			n++
		}
	}
	return n
}
