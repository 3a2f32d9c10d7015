// Package photo holds the pixel arrays and physical metadata for scanned
// aerial photographs and orchestrates the per-photo and collection-level
// normalization passes that precede triangulation.
package photo

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/cartolab/aerio/internal/boxes"
	"github.com/cartolab/aerio/internal/fiducial"
)

// ErrDimension is returned when an operation's target size does not fit the
// photo it is applied to.
var ErrDimension = errors.New("photo: dimension mismatch")

// Photo is a single grayscale scan plus its derived physical metadata.
// Identity is the source filename. Transform operations (crop, mask,
// histogram match) replace the whole image atomically: a failed operation
// leaves the photo in its prior state.
type Photo struct {
	label string
	ext   string
	img   *image.Gray
	meta  MetaConfig

	fiducials *fiducial.Set
}

// NewFromImage wraps an in-memory image as a Photo, converting to grayscale
// if needed. The label identifies the photo (normally the source filename
// without extension).
func NewFromImage(img image.Image, label string, meta MetaConfig) *Photo {
	return &Photo{label: label, ext: ".png", img: toGray(img), meta: meta}
}

// Label returns the photo's identity (source filename without extension).
func (p *Photo) Label() string { return p.label }

// Height returns the image height in pixels.
func (p *Photo) Height() int { return p.img.Bounds().Dy() }

// Width returns the image width in pixels.
func (p *Photo) Width() int { return p.img.Bounds().Dx() }

// Image returns the photo's pixel data. Callers must treat it as read-only;
// all mutation goes through the photo's transform operations.
func (p *Photo) Image() *image.Gray { return p.img }

// Frame returns the canvas handle bounding boxes use to resolve this
// photo's extent.
func (p *Photo) Frame() boxes.Frame {
	return boxes.Frame{Label: p.label, Width: p.Width(), Height: p.Height()}
}

// CropTo crops the image to height x width pixels, anchored at the top-left
// corner so fiducial and label coordinates inside the crop remain valid.
// Fails with ErrDimension if the target exceeds the current image size.
func (p *Photo) CropTo(height, width int) error {
	if height < 1 || width < 1 {
		return fmt.Errorf("%w: crop target %dx%d is empty", ErrDimension, height, width)
	}
	if height > p.Height() || width > p.Width() {
		return fmt.Errorf("%w: crop target %dx%d exceeds %dx%d photo %q",
			ErrDimension, height, width, p.Height(), p.Width(), p.label)
	}

	cropped := imaging.CropAnchor(p.img, width, height, imaging.TopLeft)
	p.img = toGray(cropped)
	return nil
}

// ApplyMask writes fill into every pixel the mask marks as foreground.
// The mask must match the photo's size exactly.
func (p *Photo) ApplyMask(mask *image.Gray, fill uint8) error {
	if mask.Bounds().Dx() != p.Width() || mask.Bounds().Dy() != p.Height() {
		return fmt.Errorf("%w: mask %dx%d vs photo %dx%d", ErrDimension,
			mask.Bounds().Dy(), mask.Bounds().Dx(), p.Height(), p.Width())
	}

	out := image.NewGray(p.img.Bounds())
	copy(out.Pix, p.img.Pix)
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			if mask.Pix[y*mask.Stride+x] == boxes.MaskForeground {
				out.Pix[y*out.Stride+x] = fill
			}
		}
	}
	p.img = out
	return nil
}

// LocateFiducials runs the fiducial locator over the photo and stores the
// result. A partially populated set is not an error; check Set.Complete.
func (p *Photo) LocateFiducials(cfg fiducial.Config) (fiducial.Set, error) {
	set, err := fiducial.Locate(p.img, cfg)
	if err != nil {
		return fiducial.Set{}, err
	}
	p.fiducials = &set
	return set, nil
}

// Fiducials returns the stored fiducial set, or nil if the locator has not
// run on this photo.
func (p *Photo) Fiducials() *fiducial.Set { return p.fiducials }

// BorderBox returns a collection holding the photo's printed-border band at
// the given margin width.
func (p *Photo) BorderBox(margin float64) (*boxes.Collection, error) {
	return boxes.BorderBand(p.Frame(), margin)
}

// toGray converts any image to 8-bit grayscale, copying even when the input
// is already gray so the photo owns its pixels exclusively.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}
