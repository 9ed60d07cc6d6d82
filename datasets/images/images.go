// Package images decodes image files into the fixed-size grayscale rasters
// consumed by the network input layer.
package images

import "image"
import "image/color"
import "os"

import _ "image/jpeg"
import _ "image/png"

import "github.com/pkg/errors"

// original raster edge
const Size = 32

// max-pool downscaled raster edge
const Small = (Size - 2) / 2

// Raster is a Size x Size grayscale image.
type Raster [Size * Size]byte

// SmallRaster is the max-pool downscaled version of a Raster.
type SmallRaster [Small * Small]byte

// Feature extracts the n-th 2x2 pixel window from the raster
func (i *Raster) Feature(n int) uint32 {
	n %= ((Size - 1) * (Size - 1))
	return uint32(i[n]) | uint32(i[n+1])<<8 | uint32(i[n+Size])<<16 | uint32(i[n+1+Size])<<24
}

// Feature extracts the n-th 2x2 pixel window from the small raster
func (i *SmallRaster) Feature(n int) uint32 {
	n %= ((Small - 1) * (Small - 1))
	return uint32(i[n]) | uint32(i[n+1])<<8 | uint32(i[n+Small])<<16 | uint32(i[n+1+Small])<<24
}

// Load reads and decodes one image file into a raster.
func Load(path string) (r Raster, err error) {
	f, err := os.Open(path)
	if err != nil {
		return r, errors.Wrap(err, "open image")
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return r, errors.Wrapf(err, "decode image %q", path)
	}
	return FromImage(img), nil
}

// FromImage converts a decoded image of any dimensions into a raster using
// nearest-neighbor sampling and grayscale conversion.
func FromImage(img image.Image) (r Raster) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			sx := b.Min.X + x*w/Size
			sy := b.Min.Y + y*h/Size
			g := color.GrayModel.Convert(img.At(sx, sy)).(color.Gray)
			r[y*Size+x] = g.Y
		}
	}
	return
}

func max4(a, b, c, d byte) (o byte) {
	o = a
	if b > o {
		o = b
	}
	if c > o {
		o = c
	}
	if d > o {
		o = d
	}
	return o
}

// Downscale max-pools a raster into a SmallRaster, dropping the one pixel
// border so every pool reads a full 2x2 block.
func Downscale(r *Raster) (s SmallRaster) {
	for y := 0; y < Small; y++ {
		for x := 0; x < Small; x++ {
			base := (2*y+1)*Size + (2*x + 1)
			s[y*Small+x] = max4(
				r[base],
				r[base+1],
				r[base+Size],
				r[base+Size+1],
			)
		}
	}
	return
}
