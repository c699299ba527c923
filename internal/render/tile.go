package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/basicfont"
)

var (
	placeholderFill  = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	placeholderLabel = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

// LoadTile decodes the image at path, shrinks it to fit within w x h
// keeping its aspect ratio, and centers it on a transparent w x h tile.
// Images already inside the box keep their size.
func LoadTile(path string, w, h int) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	fitted := imaging.Fit(img, w, h, imaging.Lanczos)
	fb := fitted.Bounds()
	tile := image.NewNRGBA(image.Rect(0, 0, w, h))
	return imaging.Paste(tile, fitted, image.Pt((w-fb.Dx())/2, (h-fb.Dy())/2)), nil
}

// Placeholder returns the opaque gray "Error" tile used for images that
// fail to decode.
func Placeholder(w, h int) *image.NRGBA {
	tile := imaging.New(w, h, placeholderFill)
	drawText(tile, basicfont.Face7x13, "Error", image.Pt(w/2, h/2), anchorCenter, placeholderLabel)
	return tile
}

// tile loads a tile, substituting the placeholder on failure.
func (c *Compositor) tile(path string, w, h int) *image.NRGBA {
	t, err := LoadTile(path, w, h)
	if err != nil {
		c.warn(fmt.Sprintf("Image load failed %s: %v", path, err))
		return Placeholder(w, h)
	}
	return t
}
