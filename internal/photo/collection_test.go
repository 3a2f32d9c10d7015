package photo

import (
	"testing"

	"github.com/cartolab/aerio/internal/fiducial"
)

func TestLocateFiducials_CollectionOrder(t *testing.T) {
	c := NewCollection(
		grayPhoto("a", 100, 100, 180),
		grayPhoto("b", 100, 100, 180),
		grayPhoto("c", 100, 100, 180),
	)

	cfg := fiducial.Config{
		Window:        fiducial.Size{Height: 20, Width: 30},
		Polarity:      fiducial.Dark,
		MinProminence: 5,
	}

	sets, err := c.LocateFiducials(cfg, 2)
	if err != nil {
		t.Fatalf("LocateFiducials failed: %v", err)
	}
	if len(sets) != c.Len() {
		t.Fatalf("got %d sets, want %d", len(sets), c.Len())
	}

	// Flat plates: every side misses, but the pass itself succeeds and the
	// photos keep their stored (empty) sets.
	for i, set := range sets {
		if set.Count() != 0 {
			t.Errorf("photo %d: located %d fiducials on a flat plate", i, set.Count())
		}
		if c.At(i).Fiducials() == nil {
			t.Errorf("photo %d: fiducial set not stored", i)
		}
	}
}

func TestLocateFiducials_ConfigError(t *testing.T) {
	c := NewCollection(grayPhoto("a", 50, 50, 180))

	cfg := fiducial.Config{
		Window:   fiducial.Size{Height: 200, Width: 30},
		Polarity: fiducial.Dark,
	}

	if _, err := c.LocateFiducials(cfg, 2); err == nil {
		t.Error("oversized window should abort the pass")
	}
}
