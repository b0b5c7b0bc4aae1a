package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for data that is not an image format we decode.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var decoders = map[string]func(b []byte) (image.Image, error){
	"png":  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
	"jpg":  func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) },
	"gif":  func(b []byte) (image.Image, error) { return gif.Decode(bytes.NewReader(b)) },
	"bmp":  func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) },
	"tif":  func(b []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(b)) },
	"webp": func(b []byte) (image.Image, error) { return webp.Decode(bytes.NewReader(b)) },
}

// Decode sniffs the format of b from its content and decodes it. It returns the format's
// file extension alongside the image.
func Decode(b []byte) (image.Image, string, error) {
	kind, err := filetype.Match(b)
	if err != nil {
		return nil, "", fmt.Errorf("match type: %w", err)
	}
	dec, ok := decoders[kind.Extension]
	if !ok {
		if kind.MIME.Value == "" {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	img, err := dec(b)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", kind.Extension, err)
	}
	return img, kind.Extension, nil
}

// Fit returns img as straight alpha RGBA scaled to w x h with bilinear filtering.
// Both textures share a size so they can be bound together.
func Fit(img image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if img.Bounds().Size() == dst.Rect.Size() {
		draw.Draw(dst, dst.Rect, img, img.Bounds().Min, draw.Src)
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
	return dst
}
