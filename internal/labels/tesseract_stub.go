//go:build !cgo || !linux

package labels

import (
	"image"

	"github.com/cartolab/aerio/internal/geometry"
)

// DetectText is unavailable without cgo; use FromFile with coordinates from
// an external detector instead.
func DetectText(_ image.Image, _ float64) ([]geometry.Polygon, error) {
	return nil, ErrDetectorUnavailable
}
