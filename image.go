package milsym

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/esimov/milsym/utils"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// decodeImg decodes the image provided by r to type *image.NRGBA.
func decodeImg(r io.Reader) (*image.NRGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read the image: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode the image (%s): %v",
			utils.DetectContentType(data), err)
	}

	return imgToNRGBA(img), nil
}

// encodeImg encodes an image to a destination of type io.Writer.
func encodeImg(w io.Writer, img image.Image, format imaging.Format) error {
	var err error

	switch format {
	case imaging.PNG:
		enc := &png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(w, img)
	case imaging.JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case imaging.GIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256})
	case imaging.BMP:
		err = bmp.Encode(w, img)
	case imaging.TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: unsupported image format %v", ErrEncoding, format)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return nil
}

// resizeImg scales the image so that its longest side measures size pixels,
// preserving the aspect ratio. A non positive size returns the image unchanged.
func resizeImg(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if size <= 0 || b.Empty() || utils.Max(b.Dx(), b.Dy()) == size {
		return img
	}
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, size, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, size, imaging.Lanczos)
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Bounds().Min == (image.Point{}) {
		return src
	}
	return imaging.Clone(img)
}
