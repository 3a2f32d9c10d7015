package boxes

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r2"
	"golang.org/x/image/tiff"

	"github.com/cartolab/aerio/internal/geometry"
)

// Collection is a set of boxes sharing one photo's coordinate frame.
// Iteration order is stable (insertion order) but carries no geometric
// meaning; masking treats the set as an unordered union.
type Collection struct {
	frame Frame
	boxes []Box
}

// New builds a collection from raw polygon coordinate lists, e.g. the output
// of an external text detector or manually entered label corners. An empty
// list yields an empty collection; a polygon with fewer than three points is
// rejected.
func New(frame Frame, polys []geometry.Polygon) (*Collection, error) {
	c := &Collection{frame: frame, boxes: make([]Box, 0, len(polys))}
	for _, poly := range polys {
		box, err := NewBox(frame, poly)
		if err != nil {
			return nil, err
		}
		c.boxes = append(c.boxes, box)
	}
	return c, nil
}

// Frame returns the photo frame shared by every box in the collection.
func (c *Collection) Frame() Frame { return c.frame }

// Len returns the number of boxes.
func (c *Collection) Len() int { return len(c.boxes) }

// At returns the box at index i in insertion order.
func (c *Collection) At(i int) Box { return c.boxes[i] }

// Union returns a new collection holding every box from both inputs.
// Boxes are never deduplicated. The inputs must resolve to the same photo
// frame; mixing boxes from different photos fails with ErrFrameMismatch.
func Union(a, b *Collection) (*Collection, error) {
	if a.frame != b.frame {
		return nil, fmt.Errorf("%w: %q (%dx%d) vs %q (%dx%d)", ErrFrameMismatch,
			a.frame.Label, a.frame.Width, a.frame.Height,
			b.frame.Label, b.frame.Width, b.frame.Height)
	}
	out := &Collection{frame: a.frame, boxes: make([]Box, 0, len(a.boxes)+len(b.boxes))}
	out.boxes = append(out.boxes, a.boxes...)
	out.boxes = append(out.boxes, b.boxes...)
	return out, nil
}

// Collapse merges adjacent boxes by rasterizing the whole set onto one
// canvas, dilating it with a kernelH x kernelW structuring element for the
// given iteration count, and replacing the box set with one axis-aligned
// bounding rectangle per connected component of the dilated canvas.
//
// This is a best-effort heuristic for fusing character-level detections into
// word or line-level boxes: a kernel wider than tall biases merging along
// the horizontal axis, and more iterations trade false merges for
// completeness. The box set is replaced atomically; on error the collection
// is unchanged.
func (c *Collection) Collapse(kernelH, kernelW, iterations int) error {
	canvas := image.NewGray(image.Rect(0, 0, c.frame.Width, c.frame.Height))
	for _, box := range c.boxes {
		if err := geometry.Rasterize(box.poly, canvas, 255); err != nil {
			return err
		}
	}

	dilated, err := geometry.Dilate(canvas, kernelH, kernelW, iterations)
	if err != nil {
		return err
	}

	rects := geometry.Components(dilated)
	merged := make([]Box, 0, len(rects))
	for _, r := range rects {
		poly := geometry.Rect(r2.RectFromPoints(
			r2.Point{X: float64(r.Min.X), Y: float64(r.Min.Y)},
			r2.Point{X: float64(r.Max.X), Y: float64(r.Max.Y)},
		))
		merged = append(merged, Box{poly: poly, frame: c.frame})
	}

	c.boxes = merged
	return nil
}

// Filter removes every box whose bounding rectangle is farther than
// maxEdgeDistance from all four canvas edges, or whose height/width ratio
// exceeds maxHWRatio. Both thresholds are inclusive keep-bounds: a box
// exactly at a threshold is retained.
//
// True labels sit near the photo margins and are wider than tall; interior
// or tall narrow detections are treated as detector false positives.
func (c *Collection) Filter(maxEdgeDistance, maxHWRatio float64) {
	kept := c.boxes[:0]
	for _, box := range c.boxes {
		if box.EdgeDistance() > maxEdgeDistance {
			continue
		}
		if box.HWRatio() > maxHWRatio {
			continue
		}
		kept = append(kept, box)
	}
	c.boxes = kept
}

// GenerateMask rasterizes the union of all boxes onto a canvas the size of
// the photo: MaskForeground inside any box, MaskBackground elsewhere.
func (c *Collection) GenerateMask() *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, c.frame.Width, c.frame.Height))
	for i := range mask.Pix {
		mask.Pix[i] = MaskBackground
	}
	for _, box := range c.boxes {
		// Boxes were validated on entry; rasterization cannot fail here.
		_ = geometry.Rasterize(box.poly, mask, MaskForeground)
	}
	return mask
}

// SaveMask writes the generated mask as an image file. The encoding follows
// the file extension: TIFF for .tif/.tiff, PNG otherwise.
func (c *Collection) SaveMask(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("boxes: failed to create mask file: %w", err)
	}
	defer f.Close()

	mask := c.GenerateMask()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		err = tiff.Encode(f, mask, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, mask)
	}
	if err != nil {
		return fmt.Errorf("boxes: failed to encode mask: %w", err)
	}
	return nil
}
