package photo

import (
	"image"

	"gonum.org/v1/gonum/floats"
)

// MatchHistogram remaps this photo's pixel intensities so their cumulative
// distribution matches the reference photo's. Each source level maps to the
// lowest reference level whose cumulative share is at least the source
// level's, which makes matching a photo against itself (or against any photo
// with an identical histogram) an identity transform on the pixel data.
//
// The reference photo is never modified.
func (p *Photo) MatchHistogram(ref *Photo) {
	if p == ref {
		return
	}

	srcCDF := cdf(p.img)
	refCDF := cdf(ref.img)

	// Quantile mapping: lut[v] = min r such that refCDF[r] >= srcCDF[v].
	var lut [256]uint8
	r := 0
	for v := 0; v < 256; v++ {
		for r < 255 && refCDF[r] < srcCDF[v] {
			r++
		}
		lut[v] = uint8(r)
	}

	out := image.NewGray(p.img.Bounds())
	for i, v := range p.img.Pix {
		out.Pix[i] = lut[v]
	}
	p.img = out
}

// cdf computes the normalized cumulative intensity distribution of an 8-bit
// grayscale image.
func cdf(img *image.Gray) []float64 {
	counts := make([]float64, 256)
	bounds := img.Bounds()
	for y := 0; y < bounds.Dy(); y++ {
		row := y * img.Stride
		for x := 0; x < bounds.Dx(); x++ {
			counts[img.Pix[row+x]]++
		}
	}

	cum := make([]float64, 256)
	floats.CumSum(cum, counts)
	total := cum[255]
	if total > 0 {
		floats.Scale(1/total, cum)
	}
	return cum
}
