package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font sizes in points at 72 DPI, i.e. pixels.
const (
	titleSize    = 72
	subtitleSize = 42
	smallSize    = 24
)

// faces holds the three text roles. Faces carry glyph caches and are not
// safe for concurrent use, so each render call builds its own set.
type faces struct {
	title    font.Face
	subtitle font.Face
	small    font.Face
}

func (f *faces) Close() {
	for _, face := range []font.Face{f.title, f.subtitle, f.small} {
		if face != nil {
			face.Close()
		}
	}
}

func (c *Compositor) newFaces() *faces {
	if c.font == nil {
		return &faces{
			title:    basicfont.Face7x13,
			subtitle: basicfont.Face7x13,
			small:    basicfont.Face7x13,
		}
	}

	return &faces{
		title:    c.newFace(titleSize),
		subtitle: c.newFace(subtitleSize),
		small:    c.newFace(smallSize),
	}
}

func (c *Compositor) newFace(size float64) font.Face {
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		c.warn(fmt.Sprintf("Font face %.0fpt failed (%v), using default font", size, err))
		return basicfont.Face7x13
	}
	return face
}

// anchor selects which point of the text box pt refers to.
type anchor int

const (
	anchorTopLeft anchor = iota
	anchorRightMiddle
	anchorCenter
)

// drawText draws s so that the given anchor point of its box lands on pt.
// The box spans the face's ascent and descent.
func drawText(dst draw.Image, face font.Face, s string, pt image.Point, a anchor, col color.Color) {
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	width := font.MeasureString(face, s).Ceil()

	x, top := pt.X, pt.Y
	switch a {
	case anchorRightMiddle:
		x -= width
		top -= (ascent + descent) / 2
	case anchorCenter:
		x -= width / 2
		top -= (ascent + descent) / 2
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, top+ascent),
	}
	d.DrawString(s)
}
