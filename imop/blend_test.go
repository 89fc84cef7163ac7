package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fill(rect image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(rect)
	draw.Draw(img, rect, &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func TestBlend_Basic(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.Empty(op.Get())
	assert.Error(op.Set("blend_mode_not_supported"))
	assert.Empty(op.Get())

	assert.NoError(op.Set(Multiply))
	assert.Equal(Multiply, op.Get())
	assert.NoError(op.Set(Replace))
	assert.Equal(Replace, op.Get())

	assert.ErrorIs(op.Apply(nil, color.NRGBA{}), ErrNilImage)
	assert.ErrorIs(NewBlend().Apply(nil, color.NRGBA{}), ErrNilImage)
}

func TestBlend_MultiplyWhiteBecomesColor(t *testing.T) {
	colors := []color.NRGBA{
		{R: 255, A: 255},
		{R: 128, G: 224, B: 255, A: 255},
		{R: 17, G: 99, B: 3, A: 128},
		{A: 0},
	}

	for _, c := range colors {
		img := fill(image.Rect(0, 0, 3, 2), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		assert.NoError(t, MultiplyColor(img, c))
		assert.Equal(t, c, img.NRGBAAt(2, 1))
	}
}

func TestBlend_MultiplyKeepsBlack(t *testing.T) {
	img := fill(image.Rect(0, 0, 2, 2), color.NRGBA{A: 255})
	assert.NoError(t, MultiplyColor(img, color.NRGBA{R: 255, G: 200, B: 100, A: 255}))

	px := img.NRGBAAt(1, 1)
	assert.Equal(t, color.NRGBA{A: 255}, px)
}

func TestBlend_MultiplyRounding(t *testing.T) {
	img := fill(image.Rect(0, 0, 1, 1), color.NRGBA{R: 128, G: 64, B: 255, A: 255})
	assert.NoError(t, MultiplyColor(img, color.NRGBA{R: 128, G: 255, B: 0, A: 128}))

	// 128/255 * 128/255 * 255 = 64.25
	assert.Equal(t, []uint8{64, 64, 0, 128}, img.Pix)
}

func TestBlend_ReplaceColorKeepsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	alphas := []uint8{0, 1, 128, 255}
	for x, a := range alphas {
		img.SetNRGBA(x, 0, color.NRGBA{R: 10, G: 20, B: 30, A: a})
	}

	assert.NoError(t, ReplaceColor(img, color.NRGBA{R: 255, G: 255, A: 7}))
	for x, a := range alphas {
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 0, A: a}, img.NRGBAAt(x, 0))
	}
}

func TestBlend_ZeroAreaIsNoop(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 5))

	assert.NoError(t, MultiplyColor(img, color.NRGBA{R: 255, A: 255}))
	assert.NoError(t, ReplaceColor(img, color.NRGBA{R: 255, A: 255}))
	assert.Empty(t, img.Pix)
	assert.ErrorIs(t, MultiplyColor(nil, color.NRGBA{}), ErrNilImage)
	assert.ErrorIs(t, ReplaceColor(nil, color.NRGBA{}), ErrNilImage)
}

func TestBlend_Apply(t *testing.T) {
	op := NewBlend()
	red := color.NRGBA{R: 255, A: 255}

	img := fill(image.Rect(0, 0, 1, 1), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	assert.NoError(t, op.Apply(img, red))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(0, 0))

	op.Set(Replace)
	img = fill(image.Rect(0, 0, 1, 1), color.NRGBA{G: 10, A: 40})
	assert.NoError(t, op.Apply(img, red))
	assert.Equal(t, color.NRGBA{R: 255, A: 40}, img.NRGBAAt(0, 0))

	op.Set(Multiply)
	img = fill(image.Rect(0, 0, 1, 1), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	assert.NoError(t, op.Apply(img, red))
	assert.Equal(t, red, img.NRGBAAt(0, 0))
}
