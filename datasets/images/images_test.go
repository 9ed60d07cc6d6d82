package images

import "image"
import "image/color"
import "image/png"
import "os"
import "path/filepath"
import "testing"

func checker(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestFromImageResizes(t *testing.T) {
	for _, dims := range [][2]int{{Size, Size}, {64, 48}, {7, 9}} {
		r := FromImage(checker(dims[0], dims[1]))
		var lit int
		for _, v := range r {
			if v != 0 {
				lit++
			}
		}
		if lit == 0 || lit == len(r) {
			t.Errorf("%dx%d: raster degenerate, %d pixels lit", dims[0], dims[1], lit)
		}
	}
}

func TestDownscaleMaxPool(t *testing.T) {
	var r Raster
	// checkerboard: every 2x2 block contains a 255, so max-pool saturates
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if (x+y)%2 == 0 {
				r[y*Size+x] = 255
			}
		}
	}
	s := Downscale(&r)
	for i, v := range s {
		if v != 255 {
			t.Fatalf("small pixel %d = %d, want 255", i, v)
		}
	}
}

func TestLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, checker(20, 20)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if r == (Raster{}) {
		t.Error("loaded raster is empty")
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file must error")
	}
}

func TestFeatureWindowInBounds(t *testing.T) {
	var r Raster
	for n := 0; n < 4*Size*Size; n++ {
		r.Feature(n) // must not panic for any n
	}
	var s SmallRaster
	for n := 0; n < 4*Small*Small; n++ {
		s.Feature(n)
	}
}
