package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/handiism/stickerpack/internal/model"
	"github.com/handiism/stickerpack/internal/palette"
)

const (
	headerRatio = 0.4

	mainBox = 400
	mainX   = 60

	textX      = 520
	titleDY    = -50
	subtitleDY = 30
)

var textColor = color.White

// HeaderHeight returns the height of the hero header band for a canvas height.
func HeaderHeight(canvasH int) int {
	return int(float64(canvasH) * headerRatio)
}

// RenderHero renders the header-plus-3x3 template.
func (c *Compositor) RenderHero(folder *model.FolderRecord) *image.RGBA {
	canvas := c.newCanvas()
	headerH := HeaderHeight(c.opts.Height)

	mainPath := folder.MainImage
	if mainPath == "" && len(folder.Images) > 0 {
		mainPath = folder.Images[0]
	}

	header := c.headerBackground(mainPath, headerH)
	draw.Draw(canvas, header.Bounds(), header, image.Point{}, draw.Src)

	if mainPath != "" {
		tile := c.tile(mainPath, mainBox, mainBox)
		pasteOnWhite(canvas, tile, image.Pt(mainX, (headerH-mainBox)/2))
	}

	f := c.newFaces()
	defer f.Close()

	subtitle := folder.Subtitle
	if subtitle == "" {
		subtitle = model.DefaultSubtitle
	}
	midY := headerH / 2
	drawText(canvas, f.title, folder.DisplayTitle(), image.Pt(textX, midY+titleDY), anchorTopLeft, textColor)
	drawText(canvas, f.subtitle, subtitle, image.Pt(textX, midY+subtitleDY), anchorTopLeft, textColor)

	c.drawBadge(canvas, folder.CountLabel(), f.small)

	c.drawGrid(canvas, HeroGrid, image.Pt(0, headerH), HeroGridImages(folder.Images))
	return canvas
}

// headerBackground is a gradient in the main image's dominant color, or a
// flat fallback fill when there is no main image.
func (c *Compositor) headerBackground(mainPath string, h int) image.Image {
	if mainPath == "" || c.colors == nil {
		bg := image.NewNRGBA(image.Rect(0, 0, c.opts.Width, h))
		draw.Draw(bg, bg.Bounds(), image.NewUniform(c.opts.Fallback.NRGBA()), image.Point{}, draw.Src)
		return bg
	}
	return palette.MakeGradient(c.colors.ExtractFile(mainPath), c.opts.Width, h)
}
