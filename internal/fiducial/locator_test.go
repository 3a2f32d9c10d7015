package fiducial

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// notchPlate builds a uniform plate with a diamond-shaped intensity dip (or
// spike) at each of the four edge-midpoint fiducial positions.
func notchPlate(size int, inset int, background, tip uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = background
	}

	mid := size / 2
	paintNotch(img, mid, inset, background, tip)
	paintNotch(img, size-1-inset, mid, background, tip)
	paintNotch(img, mid, size-1-inset, background, tip)
	paintNotch(img, inset, mid, background, tip)
	return img
}

// paintNotch draws a diamond whose intensity ramps from tip at the center
// toward background at radius 3, giving the profile a unique extremum.
func paintNotch(img *image.Gray, cx, cy int, background, tip uint8) {
	step := (int(background) - int(tip)) / 4
	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			d := abs(dx) + abs(dy)
			if d > 3 {
				continue
			}
			img.SetGray(cx+dx, cy+dy, color.Gray{Y: uint8(int(tip) + step*d)})
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func defaultConfig() Config {
	return Config{
		Window:        Size{Height: 80, Width: 120},
		Polarity:      Dark,
		MinProminence: 2,
	}
}

func TestLocate_FourDarkNotches(t *testing.T) {
	img := notchPlate(400, 12, 200, 80)

	set, err := Locate(img, defaultConfig())
	require.NoError(t, err)
	require.True(t, set.Complete(), "all four sides should be located")

	expected := []struct {
		name string
		x, y float64
	}{
		{"top", 200, 12},
		{"right", 387, 200},
		{"bottom", 200, 387},
		{"left", 12, 200},
	}

	for i, pt := range set.Coordinates() {
		require.NotNil(t, pt, expected[i].name)
		assert.InDelta(t, expected[i].x, pt.X, 0.75, "%s x", expected[i].name)
		assert.InDelta(t, expected[i].y, pt.Y, 0.75, "%s y", expected[i].name)
	}
}

func TestLocate_BrightNotches(t *testing.T) {
	img := notchPlate(400, 12, 50, 170)

	cfg := defaultConfig()
	cfg.Polarity = Bright

	set, err := Locate(img, cfg)
	require.NoError(t, err)
	assert.True(t, set.Complete())
	assert.InDelta(t, 200, set.Top.X, 0.75)
	assert.InDelta(t, 12, set.Top.Y, 0.75)
}

func TestLocate_Deterministic(t *testing.T) {
	img := notchPlate(400, 12, 200, 80)
	cfg := defaultConfig()

	first, err := Locate(img, cfg)
	require.NoError(t, err)
	second, err := Locate(img, cfg)
	require.NoError(t, err)

	a, b := first.Coordinates(), second.Coordinates()
	for i := range a {
		require.NotNil(t, a[i])
		require.NotNil(t, b[i])
		assert.Equal(t, *a[i], *b[i], "side %d", i)
	}
}

func TestLocate_FlatProfileFails(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 400, 400))
	for i := range img.Pix {
		img.Pix[i] = 180
	}

	set, err := Locate(img, defaultConfig())
	require.NoError(t, err)
	assert.False(t, set.Complete())
	assert.Equal(t, 0, set.Count())
	for _, pt := range set.Coordinates() {
		assert.Nil(t, pt)
	}
}

func TestLocate_PartialSet(t *testing.T) {
	// Only the top notch exists; the other three sides must come back nil
	// rather than failing the whole photo.
	img := image.NewGray(image.Rect(0, 0, 400, 400))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	paintNotch(img, 200, 12, 200, 80)

	set, err := Locate(img, defaultConfig())
	require.NoError(t, err)
	assert.False(t, set.Complete())
	assert.Equal(t, 1, set.Count())
	require.NotNil(t, set.Top)
	assert.Nil(t, set.Right)
	assert.Nil(t, set.Bottom)
	assert.Nil(t, set.Left)
}

func TestLocate_WindowValidation(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))

	tests := []struct {
		name   string
		window Size
	}{
		{"too small", Size{Height: 2, Width: 2}},
		{"depth exceeds photo", Size{Height: 150, Width: 50}},
		{"span exceeds photo", Size{Height: 50, Width: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Window = tt.window
			_, err := Locate(img, cfg)
			require.Error(t, err)
		})
	}
}

func TestLocate_MedianFilterStillFinds(t *testing.T) {
	img := notchPlate(400, 12, 200, 80)

	cfg := defaultConfig()
	cfg.MedianRadius = 1
	cfg.MinProminence = 1 // median filtering flattens the profile somewhat

	set, err := Locate(img, cfg)
	require.NoError(t, err)
	assert.True(t, set.Complete())
	assert.InDelta(t, 200, set.Top.X, 2.0)
	assert.InDelta(t, 12, set.Top.Y, 2.0)
}
