package photo

// Dims is a physical (height, width) pair in millimeters.
type Dims struct {
	Height float64
	Width  float64
}

// MetaConfig supplies the physical scanning parameters for a photo. Any one
// of the three fields defines the other two given the pixel dimensions; all
// may be left zero for photos whose physical size is unknown.
type MetaConfig struct {
	// DPI is the scanning resolution in dots per inch.
	DPI float64

	// PhotoSize is the physical print size in millimeters.
	PhotoSize Dims

	// PixelSize is the physical size of one pixel in millimeters.
	PixelSize Dims
}

const mmPerInch = 25.4

func (m MetaConfig) defined() bool {
	return m.DPI != 0 || m.PhotoSize != (Dims{}) || m.PixelSize != (Dims{})
}

// DPI returns the scanning resolution. When derived from a physical size,
// it is the mean of the height-wise and width-wise resolutions. The second
// return is false when the photo is underdefined.
func (p *Photo) DPI() (float64, bool) {
	if !p.meta.defined() {
		return 0, false
	}
	if p.meta.DPI != 0 {
		return p.meta.DPI, true
	}
	size, _ := p.PhotoSizeMM()
	dpiH := float64(p.Height()) / size.Height * mmPerInch
	dpiW := float64(p.Width()) / size.Width * mmPerInch
	return (dpiH + dpiW) / 2, true
}

// DotsPerMM returns the scanning resolution in dots per millimeter.
func (p *Photo) DotsPerMM() (float64, bool) {
	dpi, ok := p.DPI()
	if !ok {
		return 0, false
	}
	return dpi / mmPerInch, true
}

// PhotoSizeMM returns the physical print size in millimeters.
func (p *Photo) PhotoSizeMM() (Dims, bool) {
	if !p.meta.defined() {
		return Dims{}, false
	}
	switch {
	case p.meta.PhotoSize != (Dims{}):
		return p.meta.PhotoSize, true
	case p.meta.DPI != 0:
		dpmm := p.meta.DPI / mmPerInch
		return Dims{
			Height: float64(p.Height()) / dpmm,
			Width:  float64(p.Width()) / dpmm,
		}, true
	default:
		return Dims{
			Height: p.meta.PixelSize.Height * float64(p.Height()),
			Width:  p.meta.PixelSize.Width * float64(p.Width()),
		}, true
	}
}

// PixelSizeMM returns the physical size of one pixel in millimeters.
func (p *Photo) PixelSizeMM() (Dims, bool) {
	if !p.meta.defined() {
		return Dims{}, false
	}
	switch {
	case p.meta.PixelSize != (Dims{}):
		return p.meta.PixelSize, true
	case p.meta.DPI != 0:
		dpmm := p.meta.DPI / mmPerInch
		return Dims{Height: 1 / dpmm, Width: 1 / dpmm}, true
	default:
		return Dims{
			Height: p.meta.PhotoSize.Height / float64(p.Height()),
			Width:  p.meta.PhotoSize.Width / float64(p.Width()),
		}, true
	}
}
