package boxes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartolab/aerio/internal/geometry"
)

func TestBoxGeometry(t *testing.T) {
	frame := Frame{Label: "scan01", Width: 1885, Height: 1886}

	box, err := NewBox(frame, rectPoly(50, 50, 350, 120))
	require.NoError(t, err)

	assert.Equal(t, 300.0, box.Width())
	assert.Equal(t, 70.0, box.Height())
	assert.Equal(t, 21000.0, box.Area())
	assert.InDelta(t, 70.0/300.0, box.HWRatio(), 1e-9)
	assert.Equal(t, 50.0, box.EdgeDistance())

	centroid := box.Centroid()
	assert.Equal(t, 200.0, centroid.X)
	assert.Equal(t, 85.0, centroid.Y)
}

func TestBoxHWRatio_ZeroWidth(t *testing.T) {
	frame := Frame{Label: "scan01", Width: 100, Height: 100}

	box, err := NewBox(frame, geometry.Polygon{
		{X: 10, Y: 10}, {X: 10, Y: 50}, {X: 10, Y: 30},
	})
	require.NoError(t, err)
	assert.True(t, math.IsInf(box.HWRatio(), 1))
}
