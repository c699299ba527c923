package palette

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/handiism/stickerpack/internal/model"
)

// DefaultFallback is returned when no dominant color can be found.
var DefaultFallback = model.Color{R: 254, G: 207, B: 120}

const (
	// SampleSize is the side of the square sample the histogram is built from.
	SampleSize = 100

	// WhiteDistance is the distance to pure white at or below which a pixel
	// counts as background.
	WhiteDistance = 30

	bucketWidth       = 32
	bucketsPerChannel = 256 / bucketWidth
)

// Method selects the color extraction algorithm.
type Method int

const (
	// MethodHistogram quantizes into 32-wide buckets and refines the winner.
	MethodHistogram Method = iota

	// MethodDominantColor uses weighted k-means from cenkalti/dominantcolor.
	MethodDominantColor

	// MethodKMeans clusters the non-white pixels with a seeded k-means.
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodDominantColor:
		return "dominantcolor"
	case MethodKMeans:
		return "kmeans"
	default:
		return "histogram"
	}
}

// ParseMethod maps a configuration value to a Method. The empty string
// selects MethodHistogram.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "histogram":
		return MethodHistogram, nil
	case "dominantcolor":
		return MethodDominantColor, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return MethodHistogram, fmt.Errorf("unknown color method %q", s)
}

// Extractor finds the dominant non-background color of an image.
type Extractor struct {
	method    Method
	fallback  model.Color
	onWarning func(string)
}

// NewExtractor creates an Extractor. onWarning may be nil.
func NewExtractor(method Method, fallback model.Color, onWarning func(string)) *Extractor {
	return &Extractor{
		method:    method,
		fallback:  fallback,
		onWarning: onWarning,
	}
}

// Fallback returns the color used when extraction finds nothing.
func (e *Extractor) Fallback() model.Color {
	return e.fallback
}

// ExtractFile loads the image at path and returns its dominant color.
// Load and decode failures return the fallback color.
func (e *Extractor) ExtractFile(path string) model.Color {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		e.warn(fmt.Sprintf("Color extraction failed for %s: %v", path, err))
		return e.fallback
	}
	return e.Extract(img)
}

// Extract returns the dominant color of img.
func (e *Extractor) Extract(img image.Image) model.Color {
	sample := Sample(img)

	switch e.method {
	case MethodDominantColor:
		if c, ok := dominantColor(sample); ok {
			return c
		}
	case MethodKMeans:
		if c, ok := kmeansColor(sample); ok {
			return c
		}
	}

	if c, ok := Histogram(sample); ok {
		return c
	}
	return e.fallback
}

func (e *Extractor) warn(msg string) {
	if e.onWarning != nil {
		e.onWarning(msg)
	}
}

// Sample flattens img onto white and resamples it to SampleSize x SampleSize.
func Sample(img image.Image) *image.NRGBA {
	b := img.Bounds()
	flat := imaging.New(b.Dx(), b.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
	return imaging.Resize(flat, SampleSize, SampleSize, imaging.Linear)
}

// Histogram runs quantized voting over the non-white pixels of an opaque
// image. ok is false when every pixel is near-white.
//
// Buckets are compared in ascending index order (r*64 + g*8 + b of the
// bucket coordinates) with a strict greater-than, so among buckets that
// share the highest count the lowest index wins.
func Histogram(img *image.NRGBA) (c model.Color, ok bool) {
	const n = bucketsPerChannel * bucketsPerChannel * bucketsPerChannel

	var (
		counts [n]int
		sums   [n][3]int
	)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			r, g, bl := int(row[x*4]), int(row[x*4+1]), int(row[x*4+2])
			if nearWhite(r, g, bl) {
				continue
			}
			idx := (r/bucketWidth)*bucketsPerChannel*bucketsPerChannel +
				(g/bucketWidth)*bucketsPerChannel +
				bl/bucketWidth
			counts[idx]++
			sums[idx][0] += r
			sums[idx][1] += g
			sums[idx][2] += bl
		}
	}

	best := -1
	for i := range counts {
		if counts[i] == 0 {
			continue
		}
		if best < 0 || counts[i] > counts[best] {
			best = i
		}
	}
	if best < 0 {
		return model.Color{}, false
	}

	cnt := counts[best]
	return model.Color{
		R: uint8(sums[best][0] / cnt),
		G: uint8(sums[best][1] / cnt),
		B: uint8(sums[best][2] / cnt),
	}, true
}

// nearWhite reports whether the pixel's Euclidean distance to white is
// at most WhiteDistance.
func nearWhite(r, g, b int) bool {
	dr, dg, db := 255-r, 255-g, 255-b
	return dr*dr+dg*dg+db*db <= WhiteDistance*WhiteDistance
}
