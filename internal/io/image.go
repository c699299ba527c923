package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// DefaultJPEGQuality is used when a quality outside 1..100 is requested.
const DefaultJPEGQuality = 95

// ImageService encodes rendered canvases to disk.
//
// JPEG has no alpha channel, so every image is flattened onto white
// before encoding; transparent pixels come out white rather than black.
//
// Example usage:
//
//	svc := NewImageService(95)
//	err := svc.SaveJPEG(ctx, "/out/Cats/01_hero_Cats.jpg", canvas)
type ImageService struct {
	quality int
}

// NewImageService creates an ImageService encoding at the given JPEG quality.
func NewImageService(quality int) *ImageService {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &ImageService{quality: quality}
}

// Quality returns the JPEG quality in use.
func (s *ImageService) Quality() int {
	return s.quality
}

// EncodeJPEG flattens img onto white and returns its JPEG encoding.
func (s *ImageService) EncodeJPEG(ctx context.Context, img image.Image) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, Flatten(img), imaging.JPEG, imaging.JPEGQuality(s.quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveJPEG encodes img and writes it to path, creating the directory.
func (s *ImageService) SaveJPEG(ctx context.Context, path string, img image.Image) error {
	data, err := s.EncodeJPEG(ctx, img)
	if err != nil {
		return err
	}
	if err := WriteFile(ctx, path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Flatten composites img over an opaque white background. Images that are
// already opaque are returned unchanged.
func Flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
