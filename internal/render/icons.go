package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

const (
	iconCount       = 2
	iconSize        = 48
	iconTop         = 30
	iconRightMargin = 40
	iconGap         = 10

	// labelDY places the count label's vertical middle below iconTop.
	labelDY = 12
)

var discColor = color.NRGBA{R: 200, G: 200, B: 200, A: 128}

// iconDisc is the stand-in for a missing icon: a translucent gray circle.
func iconDisc(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, discColor)
			}
		}
	}
	return img
}

// iconOrigin returns the top-left corner of icon i, right-aligned to the canvas.
func iconOrigin(canvasW, i int) image.Point {
	fromRight := iconCount - i
	x := canvasW - iconRightMargin - iconSize*fromRight - iconGap*(fromRight-1)
	return image.Pt(x, iconTop)
}

// drawBadge draws the count label followed by the icons in the top-right corner.
func (c *Compositor) drawBadge(dst draw.Image, label string, face font.Face) {
	for i, icon := range c.icons {
		pt := iconOrigin(c.opts.Width, i)
		draw.Draw(dst, icon.Bounds().Add(pt), icon, image.Point{}, draw.Over)
	}

	drawText(dst, face, label, labelAnchor(c.opts.Width), anchorRightMiddle, textColor)
}

// labelAnchor is the right-middle point of the count label, just left of
// the first icon.
func labelAnchor(canvasW int) image.Point {
	left := iconOrigin(canvasW, 0)
	return image.Pt(left.X-iconGap, iconTop+labelDY)
}
