package geometry

import (
	"fmt"
	"image"
)

// Dilate grows the foreground of a binary mask using a kernelH x kernelW
// rectangular structuring element, repeated for the given iteration count.
// A pixel is foreground in the output if any pixel under the kernel footprint
// is foreground in the input. Foreground is any value above zero.
//
// Rectangular kernels are separable, so each iteration runs a horizontal pass
// followed by a vertical pass. A kernel wider than tall biases merging along
// the horizontal axis, which suits text labels printed in rows.
//
// For even kernel sizes the extra reach falls on the right/bottom side.
func Dilate(mask *image.Gray, kernelH, kernelW, iterations int) (*image.Gray, error) {
	if kernelH < 1 || kernelW < 1 {
		return nil, fmt.Errorf("geometry: dilation kernel must be at least 1x1, got %dx%d", kernelH, kernelW)
	}
	if iterations < 0 {
		return nil, fmt.Errorf("geometry: dilation iterations must be >= 0, got %d", iterations)
	}

	out := mask
	for i := 0; i < iterations; i++ {
		out = dilatePass(out, 0, kernelW)
		out = dilatePass(out, kernelH, 0)
	}
	if out == mask {
		// Zero iterations: still return a copy so callers own the result.
		out = image.NewGray(mask.Bounds())
		copy(out.Pix, mask.Pix)
	}
	return out, nil
}

// dilatePass dilates along a single axis: horizontally when kernelW > 0,
// vertically when kernelH > 0.
func dilatePass(src *image.Gray, kernelH, kernelW int) *image.Gray {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	dst := image.NewGray(bounds)

	// Kernel reach around the anchor pixel.
	k := kernelW
	if kernelH > 0 {
		k = kernelH
	}
	before := (k - 1) / 2
	after := k / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var v uint8
			if kernelW > 0 {
				for dx := -before; dx <= after; dx++ {
					px := clamp(x+dx, 0, width-1)
					if src.Pix[y*src.Stride+px] > v {
						v = src.Pix[y*src.Stride+px]
					}
				}
			} else {
				for dy := -before; dy <= after; dy++ {
					py := clamp(y+dy, 0, height-1)
					if src.Pix[py*src.Stride+x] > v {
						v = src.Pix[py*src.Stride+x]
					}
				}
			}
			dst.Pix[y*dst.Stride+x] = v
		}
	}
	return dst
}
