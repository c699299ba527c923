package palette

import (
	"image"

	"github.com/handiism/stickerpack/internal/model"
)

// MakeGradient builds an opaque vertical gradient from c.
//
// Row y is c scaled by 1 - (y/height)*0.3, averaged with the flat color,
// so the top row is c itself and the bottom row approaches 85% of c.
func MakeGradient(c model.Color, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}

	for y := 0; y < height; y++ {
		factor := 1 - (float64(y)/float64(height))*0.3
		row := [4]uint8{
			blendHalf(c.R, factor),
			blendHalf(c.G, factor),
			blendHalf(c.B, factor),
			255,
		}

		off := img.PixOffset(0, y)
		for x := 0; x < width; x++ {
			copy(img.Pix[off+x*4:off+x*4+4], row[:])
		}
	}
	return img
}

func blendHalf(v uint8, factor float64) uint8 {
	scaled := int(float64(v) * factor)
	return uint8((int(v) + scaled) / 2)
}
