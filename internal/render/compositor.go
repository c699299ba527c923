package render

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/opentype"

	"github.com/handiism/stickerpack/internal/model"
)

// Options configures a Compositor.
type Options struct {
	// Width and Height are the canvas size in pixels.
	Width  int
	Height int

	// FontPath points to a TrueType/OpenType display font. Empty or
	// unreadable paths fall back to a built-in bitmap font.
	FontPath string

	// IconPaths lists up to two icon images drawn in the hero header.
	// Missing entries are drawn as translucent discs.
	IconPaths []string

	// Fallback fills the hero header when the folder has no main image.
	Fallback model.Color
}

// ColorSource supplies the dominant color of an image file.
type ColorSource interface {
	ExtractFile(path string) model.Color
}

// Compositor renders templates for folders.
type Compositor struct {
	opts      Options
	colors    ColorSource
	font      *opentype.Font
	icons     []*image.NRGBA
	onWarning func(string)
}

// New creates a Compositor, loading the display font and icons up front.
// Load failures are reported through onWarning (which may be nil) and
// replaced with fallbacks.
func New(opts Options, colors ColorSource, onWarning func(string)) *Compositor {
	c := &Compositor{
		opts:      opts,
		colors:    colors,
		onWarning: onWarning,
	}

	if opts.FontPath != "" {
		f, err := loadFont(opts.FontPath)
		if err != nil {
			c.warn(fmt.Sprintf("Font load failed (%v), using default font", err))
		} else {
			c.font = f
		}
	}

	c.icons = make([]*image.NRGBA, iconCount)
	for i := range c.icons {
		var path string
		if i < len(opts.IconPaths) {
			path = opts.IconPaths[i]
		}
		c.icons[i] = c.loadIcon(path)
	}

	return c
}

// Render dispatches to the recipe of the given template.
func (c *Compositor) Render(folder *model.FolderRecord, tmpl model.Template) *image.RGBA {
	if tmpl.Kind == model.KindHero {
		return c.RenderHero(folder)
	}
	return c.RenderGrid(folder, tmpl.StartIndex)
}

// newCanvas returns an opaque white canvas of the configured size.
func (c *Compositor) newCanvas() *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, c.opts.Width, c.opts.Height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	return canvas
}

// pasteOnWhite fills the box at pt with white and composites tile over it.
func pasteOnWhite(dst draw.Image, tile image.Image, pt image.Point) {
	r := tile.Bounds().Sub(tile.Bounds().Min).Add(pt)
	draw.Draw(dst, r, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, r, tile, tile.Bounds().Min, draw.Over)
}

func (c *Compositor) warn(msg string) {
	if c.onWarning != nil {
		c.onWarning(msg)
	}
}

func loadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return opentype.Parse(data)
}

// loadIcon reads and scales an icon, or returns the placeholder disc.
func (c *Compositor) loadIcon(path string) *image.NRGBA {
	if path == "" {
		return iconDisc(iconSize)
	}

	img, err := imaging.Open(path)
	if err != nil {
		c.warn(fmt.Sprintf("Icon load failed %s: %v", path, err))
		return iconDisc(iconSize)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
