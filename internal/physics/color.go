package physics

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a "#rrggbb" hex string.
type Color string

// Palette is the shared pool Standard bodies draw from.
var Palette = []Color{"#ff6b6b", "#48dbfb", "#1dd1a1", "#f368e0", "#ff9f43"}

// PickColor draws a body color. Only Standard consults rng; the other
// archetypes have a fixed color and leave rng untouched.
func PickColor(a Archetype, rng *rand.Rand) (Color, error) {
	p, err := a.Profile()
	if err != nil {
		return "", err
	}
	if !p.UsesPalette {
		return p.Color, nil
	}
	return Palette[rng.Intn(len(Palette))], nil
}

func (c Color) parse() colorful.Color {
	cc, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return cc
}

func (c Color) RGBA() color.RGBA {
	r, g, b := c.parse().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Darken subtracts round(255*factor) from every channel, clamping at zero.
func (c Color) Darken(factor float64) Color {
	amt := int(math.Round(2.55 * factor * 100))
	r, g, b := c.parse().RGB255()
	shade := func(v uint8) float64 {
		n := int(v) - amt
		if n < 0 {
			n = 0
		}
		if n > 255 {
			n = 255
		}
		return float64(n) / 255
	}
	return Color(colorful.Color{R: shade(r), G: shade(g), B: shade(b)}.Hex())
}

// Blend mixes c toward o in RGB space; t=0 is c, t=1 is o.
func (c Color) Blend(o Color, t float64) Color {
	return Color(c.parse().BlendRgb(o.parse(), t).Clamped().Hex())
}

type GradientStop struct {
	Offset float64
	Color  Color
}

// Gradient returns the three radial stops a ball is painted with, center first.
func Gradient(a Archetype, base Color) []GradientStop {
	switch a {
	case Incendiary:
		return []GradientStop{{0, "#ffff00"}, {0.5, "#ff3838"}, {1, "#b33939"}}
	case Buoyant:
		return []GradientStop{{0, "#ffffff"}, {0.7, "#74b9ff"}, {1, "#0984e3"}}
	default:
		return []GradientStop{{0, "#ffffff"}, {0.7, base}, {1, base.Darken(0.3)}}
	}
}

// SparkColor returns a flame tone; hue is drawn from [20, 50) degrees.
func SparkColor(rng *rand.Rand) Color {
	return Color(colorful.Hsl(rng.Float64()*30+20, 1, 0.5).Clamped().Hex())
}
