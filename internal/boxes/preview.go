package boxes

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Preview draws the outline of every box over the photo image for visual
// inspection. The outline color is a hex string such as "#00FF00"; lineWidth
// is in pixels. The input image is not modified.
func (c *Collection) Preview(img image.Image, hexColor string, lineWidth float64) (image.Image, error) {
	col, err := colorful.Hex(hexColor)
	if err != nil {
		return nil, fmt.Errorf("boxes: invalid preview color %q: %w", hexColor, err)
	}

	dc := gg.NewContextForImage(img)
	dc.SetColor(col)
	dc.SetLineWidth(lineWidth)

	for _, box := range c.boxes {
		poly := box.Polygon()
		dc.MoveTo(poly[0].X, poly[0].Y)
		for _, pt := range poly[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.ClosePath()
		dc.Stroke()
	}

	return dc.Image(), nil
}
