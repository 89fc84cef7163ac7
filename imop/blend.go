// Package imop implements the pixel level operations used for building a
// composite symbol out of its layers: the color transforms applied to a
// single layer (blend modes) and the Porter-Duff composition operations
// used for mixing a layer with its backdrop.
//
// All the operations work on *image.NRGBA rasters in place. A zero-area
// raster is valid and every operation on it is a no-op.
package imop

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/esimov/milsym/utils"
)

// ErrNilImage is returned when an operation receives a nil raster.
var ErrNilImage = errors.New("imop: nil image")

// Supported blend modes.
const (
	Multiply = "multiply"
	Replace  = "replace"
)

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	switch opType {
	case Multiply, Replace:
		o.OpType = opType
		return nil
	}
	return fmt.Errorf("unsupported blend mode: %q", opType)
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// Apply transforms img with the active blend mode and the provided color.
// Without an active blend mode the image is left untouched.
func (o *Blend) Apply(img *image.NRGBA, c color.NRGBA) error {
	switch o.OpType {
	case Multiply:
		return MultiplyColor(img, c)
	case Replace:
		return ReplaceColor(img, c)
	}
	if img == nil {
		return ErrNilImage
	}
	return nil
}

// MultiplyColor multiplies each pixel of the image by a color, alpha included.
// White pixels are replaced by the multiplication color, black pixels are unaffected.
func MultiplyColor(img *image.NRGBA, c color.NRGBA) error {
	if img == nil {
		return ErrNilImage
	}

	ca := float64(c.A) / 255
	cr := float64(c.R) / 255
	cg := float64(c.G) / 255
	cb := float64(c.B) / 255

	forEachPixel(img, func(px []uint8) {
		sr := float64(px[0]) / 255
		sg := float64(px[1]) / 255
		sb := float64(px[2]) / 255
		sa := float64(px[3]) / 255

		px[0] = toChannel(cr * sr)
		px[1] = toChannel(cg * sg)
		px[2] = toChannel(cb * sb)
		px[3] = toChannel(ca * sa)
	})
	return nil
}

// ReplaceColor replaces the color of each pixel in an image. The alpha channel
// of each pixel is retained, but the red, green, and blue components are
// completely replaced with the replacement color. Unlike MultiplyColor,
// this changes the color of all the pixels, fully transparent ones included.
func ReplaceColor(img *image.NRGBA, c color.NRGBA) error {
	if img == nil {
		return ErrNilImage
	}

	r := toChannel(float64(c.R) / 255)
	g := toChannel(float64(c.G) / 255)
	b := toChannel(float64(c.B) / 255)

	forEachPixel(img, func(px []uint8) {
		px[0], px[1], px[2] = r, g, b
	})
	return nil
}

// forEachPixel calls fn with the four byte (R, G, B, A) slice of every pixel.
func forEachPixel(img *image.NRGBA, fn func(px []uint8)) {
	bounds := img.Bounds()
	dx, dy := bounds.Dx(), bounds.Dy()
	if dx <= 0 || dy <= 0 {
		return
	}

	for y := 0; y < dy; y++ {
		i := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < dx; x++ {
			fn(img.Pix[i : i+4 : i+4])
			i += 4
		}
	}
}

// toChannel rescales a normalized value to the 8-bit channel range, rounding half up.
func toChannel(v float64) uint8 {
	return uint8(utils.Clamp(int(v*255+0.5), 0, 255))
}
