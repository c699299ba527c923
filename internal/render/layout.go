package render

import (
	"image"

	"github.com/handiism/stickerpack/internal/model"
)

// Grid is a fixed cell arrangement. Cells are laid out row-major with no gaps.
type Grid struct {
	Cols, Rows   int
	CellW, CellH int
}

var (
	// HeroGrid sits below the hero header band.
	HeroGrid = Grid{Cols: 3, Rows: 3, CellW: 400, CellH: 320}

	// PageGrid fills a whole grid template.
	PageGrid = Grid{Cols: 3, Rows: 5, CellW: 400, CellH: 320}
)

// Cells returns the number of cells.
func (g Grid) Cells() int {
	return g.Cols * g.Rows
}

// CellOrigin returns the top-left corner of cell i relative to the grid origin.
func (g Grid) CellOrigin(i int) image.Point {
	return image.Pt((i%g.Cols)*g.CellW, (i/g.Cols)*g.CellH)
}

// CellRect returns the rectangle of cell i for a grid placed at origin.
func (g Grid) CellRect(origin image.Point, i int) image.Rectangle {
	tl := origin.Add(g.CellOrigin(i))
	return image.Rect(tl.X, tl.Y, tl.X+g.CellW, tl.Y+g.CellH)
}

// HeroGridImages picks the hero grid's images: images 1..9 when the
// folder has more than one image (image 0 is usually the main image),
// otherwise the lone image. Slots beyond the result stay empty.
func HeroGridImages(images []string) []string {
	n := HeroGrid.Cells()
	if len(images) > 1 {
		return images[1:min(n+1, len(images))]
	}
	return images[:min(n, len(images))]
}

// GridImages returns exactly n images starting at start. When fewer than n
// remain, images from the start of the list are appended until n is
// reached. An empty list yields nil.
func GridImages(images []string, start, n int) []string {
	if len(images) == 0 || n <= 0 {
		return nil
	}

	out := make([]string, 0, n)
	if start >= 0 && start < len(images) {
		out = append(out, images[start:min(start+n, len(images))]...)
	}
	for len(out) < n {
		remaining := n - len(out)
		out = append(out, images[:min(remaining, len(images))]...)
	}
	return out
}

// pageImages is GridImages for a grid template.
func pageImages(folder *model.FolderRecord, start int) []string {
	return GridImages(folder.Images, start, model.GridPageSize)
}
