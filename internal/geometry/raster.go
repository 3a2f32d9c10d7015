package geometry

import (
	"image"
	"math"
	"sort"
)

// Rasterize fills the interior of the polygon onto dst with the value fg.
// Pixels outside the polygon are left untouched.
//
// The fill uses the even-odd rule sampled at pixel centers (x+0.5, y+0.5):
// an axis-aligned rectangle [[x1,y1],[x2,y1],[x2,y2],[x1,y2]] covers exactly
// the half-open pixel range [x1,x2) x [y1,y2). The same rule is applied for
// every polygon, so a vertex list that traces an exterior ring followed by an
// interior ring fills the band between the rings.
func Rasterize(poly Polygon, dst *image.Gray, fg uint8) error {
	if err := poly.Validate(); err != nil {
		return err
	}

	bounds := dst.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Clip scanning to the polygon's vertical extent.
	ext := poly.Bounds()
	y0 := clamp(int(math.Floor(ext.Y.Lo)), 0, height)
	y1 := clamp(int(math.Ceil(ext.Y.Hi)), 0, height)

	xs := make([]float64, 0, len(poly))
	for y := y0; y < y1; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]

		for i, p1 := range poly {
			p2 := poly[(i+1)%len(poly)]
			if (p1.Y <= yc) == (p2.Y <= yc) {
				continue // edge does not cross this scanline
			}
			t := (yc - p1.Y) / (p2.Y - p1.Y)
			xs = append(xs, p1.X+t*(p2.X-p1.X))
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			x0 := clamp(int(math.Ceil(xs[i]-0.5)), 0, width)
			x1 := clamp(int(math.Ceil(xs[i+1]-0.5)), 0, width)
			row := dst.PixOffset(bounds.Min.X+x0, bounds.Min.Y+y)
			for x := x0; x < x1; x++ {
				dst.Pix[row] = fg
				row++
			}
		}
	}
	return nil
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
