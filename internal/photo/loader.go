package photo

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/tiff" // registers the TIFF decoder; aerial scans are usually TIFFs
)

// Load reads and decodes an image file into a Photo. Any supported format
// (TIFF, PNG, JPEG, GIF) is converted to 8-bit grayscale.
func Load(path string, meta MetaConfig) (*Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("photo: failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("photo: failed to decode %s: %w", path, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return &Photo{
		label: strings.TrimSuffix(base, ext),
		ext:   ext,
		img:   toGray(img),
		meta:  meta,
	}, nil
}

// LoadDir loads every file in dir whose extension (case-insensitive) is in
// exts, in sorted filename order.
func LoadDir(dir string, exts []string, meta MetaConfig) (*Collection, error) {
	paths, err := ListDir(dir, exts)
	if err != nil {
		return nil, err
	}

	photos := make([]*Photo, 0, len(paths))
	for _, path := range paths {
		p, err := Load(path, meta)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return NewCollection(photos...), nil
}

// ListDir returns the sorted paths of files in dir with one of the given
// extensions, e.g. []string{".tif", ".png"}.
func ListDir(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("photo: failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range exts {
			if ext == strings.ToLower(want) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Save writes the photo's current image into dir, keeping the source
// filename with the suffix inserted before the extension
// (e.g. "frame03_processed.tif"). Encoding follows the extension.
func (p *Photo) Save(dir, suffix string) error {
	name := p.label + suffix + p.ext
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("photo: failed to create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(p.ext) {
	case ".tif", ".tiff":
		err = tiff.Encode(f, p.img, &tiff.Options{Compression: tiff.Deflate})
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, p.img, nil)
	default:
		err = png.Encode(f, p.img)
	}
	if err != nil {
		return fmt.Errorf("photo: failed to encode %s: %w", path, err)
	}
	return nil
}
