// Package labels feeds candidate label regions into the masking pipeline.
//
// The core treats every source identically: a label proposal is nothing but
// a raw polygon coordinate list, whether typed in by hand, exported by an
// external text detector, or produced by the optional built-in OCR adapter.
package labels

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golang/geo/r2"

	"github.com/cartolab/aerio/internal/geometry"
)

// ErrDetectorUnavailable is returned by DetectText when the binary was built
// without the Tesseract adapter. Label proposals can still be supplied as
// coordinate lists via FromFile.
var ErrDetectorUnavailable = errors.New("labels: text detection requires a cgo build on linux")

// FromCoords converts raw coordinate lists into polygons. Each entry is a
// list of [x, y] pairs in photo pixel coordinates.
func FromCoords(coords [][][2]float64) []geometry.Polygon {
	polys := make([]geometry.Polygon, 0, len(coords))
	for _, pts := range coords {
		poly := make(geometry.Polygon, 0, len(pts))
		for _, pt := range pts {
			poly = append(poly, r2.Point{X: pt[0], Y: pt[1]})
		}
		polys = append(polys, poly)
	}
	return polys
}

// FromFile reads label proposals from a JSON file holding a list of polygons,
// each a list of [x, y] pairs:
//
//	[[[50,50],[350,50],[350,120],[50,120]], ...]
//
// This is the interchange format for external detector output.
func FromFile(path string) ([]geometry.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("labels: failed to read %s: %w", path, err)
	}

	var coords [][][2]float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return nil, fmt.Errorf("labels: failed to parse %s: %w", path, err)
	}
	return FromCoords(coords), nil
}
