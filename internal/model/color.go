package model

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGBA returns the opaque color.RGBA equivalent.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// NRGBA returns the opaque color.NRGBA equivalent.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	cf, _ := colorful.MakeColor(c.RGBA())
	return cf.Hex()
}

// ParseHexColor parses "#rrggbb" or "#rgb".
func ParseHexColor(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return FromColorful(cf), nil
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values.
func FromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
