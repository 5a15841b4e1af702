package text2d

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// CSS palette entries used by the showcase.
var (
	ColorRed    = ColorFrom(colornames.Red)
	ColorLime   = ColorFrom(colornames.Lime)
	ColorBlue   = ColorFrom(colornames.Blue)
	ColorYellow = ColorFrom(colornames.Yellow)
)

// RGB returns an opaque color from sRGB components in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// ColorFrom converts any image/color value. Alpha is carried over
// un-premultiplied; fully transparent input yields transparent black.
func ColorFrom(c color.Color) Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return Color{}
	}
	_, _, _, a := c.RGBA()
	return Color{cf.R, cf.G, cf.B, float64(a) / 0xffff}
}

// Hex parses "#rrggbb" (or "#rgb") into an opaque color.
func Hex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("text2d: parse color %q: %w", s, err)
	}
	return Color{cf.R, cf.G, cf.B, 1}, nil
}

// toRGBA converts to a premultiplied color.RGBA for ebiten.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
