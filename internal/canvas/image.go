// Package canvas implements the fixed-size RGBA raster every stage of
// the pipeline draws into: the shared output image, each column
// worker's private staging buffer, and the debug dump of a loaded
// old-owner index.
package canvas

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"sovmap/internal/model"
)

// Image is a row-major RGBA raster. Pix always has length
// Width*Height*4; a freshly constructed or Reset Image is fully
// transparent black.
type Image struct {
	Width, Height int
	Pix           []byte
}

// New allocates a zero-initialized Image of the given dimensions.
func New(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]byte, width*height*4)}
}

// InBounds reports whether (x, y) is a valid pixel coordinate.
func (im *Image) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < im.Width && y < im.Height
}

// SetPixel sets a pixel's color, failing with model.ErrOutOfBounds if
// the coordinate is outside the image.
func (im *Image) SetPixel(x, y int, r, g, b, a byte) error {
	if !im.InBounds(x, y) {
		return fmt.Errorf("set pixel (%d,%d) in %dx%d image: %w", x, y, im.Width, im.Height, model.ErrOutOfBounds)
	}
	im.SetPixelUnsafe(x, y, r, g, b, a)
	return nil
}

// SetPixelUnsafe sets a pixel's color without a bounds check, for the
// hot inner loop of the column worker where the caller already knows
// the coordinate is valid.
func (im *Image) SetPixelUnsafe(x, y int, r, g, b, a byte) {
	i := (y*im.Width + x) * 4
	im.Pix[i+0] = r
	im.Pix[i+1] = g
	im.Pix[i+2] = b
	im.Pix[i+3] = a
}

// GetPixel reads a pixel's color, failing with model.ErrOutOfBounds if
// the coordinate is outside the image.
func (im *Image) GetPixel(x, y int) (r, g, b, a byte, err error) {
	if !im.InBounds(x, y) {
		return 0, 0, 0, 0, fmt.Errorf("get pixel (%d,%d) in %dx%d image: %w", x, y, im.Width, im.Height, model.ErrOutOfBounds)
	}
	r, g, b, a = im.GetPixelUnsafe(x, y)
	return r, g, b, a, nil
}

// GetPixelUnsafe reads a pixel's color without a bounds check.
func (im *Image) GetPixelUnsafe(x, y int) (r, g, b, a byte) {
	i := (y*im.Width + x) * 4
	return im.Pix[i+0], im.Pix[i+1], im.Pix[i+2], im.Pix[i+3]
}

// Reset zero-fills the image in place, reused by column workers to
// clear a staging buffer between flushes rather than reallocating it.
func (im *Image) Reset() {
	clear(im.Pix)
}

// WritePNG encodes the image as an 8-bit RGBA PNG at path.
func (im *Image) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, model.ErrIOFailure)
	}
	defer f.Close()

	rgba := &image.RGBA{
		Pix:    im.Pix,
		Stride: im.Width * 4,
		Rect:   image.Rect(0, 0, im.Width, im.Height),
	}
	if err := png.Encode(f, rgba); err != nil {
		return fmt.Errorf("encode png %s: %w", path, model.ErrIOFailure)
	}
	return nil
}
