//go:build cgo && linux

package labels

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/cartolab/aerio/internal/geometry"
)

// DetectText proposes label regions by running Tesseract over the photo and
// returning one rectangular polygon per detected word at or above minConfidence
// (0-100). The proposals are raw coordinates only; callers clean them up with
// collapse and filter like any other label source.
func DetectText(img image.Image, minConfidence float64) ([]geometry.Polygon, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("labels: failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("labels: failed to set OCR image: %w", err)
	}

	words, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("labels: OCR failed: %w", err)
	}

	var polys []geometry.Polygon
	for _, w := range words {
		if w.Confidence < minConfidence {
			continue
		}
		b := w.Box
		polys = append(polys, geometry.Polygon{
			{X: float64(b.Min.X), Y: float64(b.Min.Y)},
			{X: float64(b.Max.X), Y: float64(b.Min.Y)},
			{X: float64(b.Max.X), Y: float64(b.Max.Y)},
			{X: float64(b.Min.X), Y: float64(b.Max.Y)},
		})
	}
	return polys, nil
}
