package photo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.tif", "a.TIF", "c.png", "notes.txt", "d.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := ListDir(dir, []string{".tif", ".png"})
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.TIF"),
		filepath.Join(dir, "b.tif"),
		filepath.Join(dir, "c.png"),
	}
	if len(paths) != len(want) {
		t.Fatalf("got %d paths %v, want %d", len(paths), paths, len(want))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	p := grayPhoto("scan01", 30, 40, 90)
	if err := p.Save(dir, "_processed"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(filepath.Join(dir, "scan01_processed.png"), MetaConfig{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Label() != "scan01_processed" {
		t.Errorf("label = %q, want scan01_processed", loaded.Label())
	}
	if loaded.Height() != 30 || loaded.Width() != 40 {
		t.Errorf("size = %dx%d, want 30x40", loaded.Height(), loaded.Width())
	}
	if got := loaded.Image().GrayAt(10, 10).Y; got != 90 {
		t.Errorf("pixel value = %d, want 90", got)
	}
}
