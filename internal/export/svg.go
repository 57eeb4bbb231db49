package export

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viz"
)

const (
	DefaultBackground = "#0a0a0a"
	dotColor          = "#00ff00"
	trailOpacity      = 0.25
	highlightOpacity  = 0.3
)

func header(sb *strings.Builder, width, height float64, background string) {
	if background == "" {
		background = DefaultBackground
	}
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// WorldToSVG draws the current frame of w: a radial gradient and highlight
// per ball, trails when the world has them on, and live sparks faded by life.
func WorldToSVG(w *sim.World, background string) string {
	bounds := w.Bounds()
	bodies := w.Bodies()
	// spark hues are cosmetic; seed by frame so a snapshot is repeatable
	rng := rand.New(rand.NewSource(int64(w.Frame())))

	var sb strings.Builder
	header(&sb, bounds.Width, bounds.Height, background)

	sb.WriteString("<defs>\n")
	for i, b := range bodies {
		p, r := b.Position(), b.Radius()
		sb.WriteString(fmt.Sprintf(`<radialGradient id="ball%d" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" r="%.2f" fx="%.2f" fy="%.2f">
`, i, p.X, p.Y, r, p.X-r/3, p.Y-r/3))
		for _, s := range physics.Gradient(b.Archetype(), b.Color()) {
			sb.WriteString(fmt.Sprintf(`<stop offset="%g" stop-color="%s"/>
`, s.Offset, s.Color))
		}
		sb.WriteString("</radialGradient>\n")
	}
	sb.WriteString("</defs>\n")

	trails := w.TrailsEnabled()
	for i, b := range bodies {
		p, r := b.Position(), b.Radius()
		if trails {
			writeTrail(&sb, b)
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="url(#ball%d)"/>
`, p.X, p.Y, r, i))
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="#ffffff" fill-opacity="%g"/>
`, p.X-r/3, p.Y-r/3, r/3, highlightOpacity))
		if b.Archetype() == physics.Incendiary {
			for _, s := range b.Particles() {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f"/>
`, s.Pos.X, s.Pos.Y, s.Size, physics.SparkColor(rng), s.Life))
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeTrail(sb *strings.Builder, b *physics.Body) {
	trail := b.Trail()
	if len(trail) < 2 {
		return
	}
	pts := make([]string, len(trail))
	for i, p := range trail {
		pts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-opacity="%g" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round" points="%s"/>
`, b.Color(), trailOpacity, b.Radius()/2, strings.Join(pts, " ")))
}

// CanvasToSVG converts a Braille canvas to SVG format, keeping cell colors.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	header(&sb, width, height, "")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			color := canvas.ColorAt(x, y)
			if color == "" {
				color = dotColor
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values against their index as a single line.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	header(&sb, float64(width), float64(height), "")
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
