package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// jpegQuality is used for every JPEG we produce. Cover art does not
// benefit from lossless quality and players choke on huge pictures.
const jpegQuality = 90

// ImageService prepares cover art images before they are embedded in
// tags or saved next to the tracks: scaling them down to a size limit
// and normalizing them to JPEG.
//
//	svc := NewImageService()
//	cover, err := svc.ResizeImage(ctx, raw, 1000)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage scales an image down so that both dimensions fit within
// maxSize pixels, keeping the aspect ratio. Images already inside the
// limit keep their dimensions. The result is always JPEG encoded, even
// when no scaling happened.
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxSize)
	if width == bounds.Dx() && height == bounds.Dy() {
		return encodeJPEG(src)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	return encodeJPEG(dst)
}

// ConvertToJPEG re-encodes an image of any registered format as JPEG.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return encodeJPEG(src)
}

// fitWithin shrinks (width, height) proportionally until both sides are
// at most max. Dimensions already within the limit are returned as is;
// this function never enlarges.
func fitWithin(width, height, max int) (int, int) {
	if width <= max && height <= max {
		return width, height
	}
	if width >= height {
		height = height * max / width
		width = max
	} else {
		width = width * max / height
		height = max
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
