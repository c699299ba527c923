package render

import (
	"image"

	"github.com/handiism/stickerpack/internal/model"
)

// RenderGrid renders a 3x5 grid template with the 15 images starting at
// start, wrapping to the beginning of the folder when needed.
func (c *Compositor) RenderGrid(folder *model.FolderRecord, start int) *image.RGBA {
	canvas := c.newCanvas()
	c.drawGrid(canvas, PageGrid, image.Point{}, pageImages(folder, start))
	return canvas
}

// drawGrid fills cells in order; cells without an image stay untouched.
func (c *Compositor) drawGrid(dst *image.RGBA, g Grid, origin image.Point, images []string) {
	for i, path := range images {
		if i >= g.Cells() {
			break
		}
		cell := g.CellRect(origin, i)
		pasteOnWhite(dst, c.tile(path, cell.Dx(), cell.Dy()), cell.Min)
	}
}
