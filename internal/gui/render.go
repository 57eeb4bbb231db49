package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

const (
	trailAlpha     = 0.25
	highlightAlpha = 0.3
)

// toColor converts a hex color to raylib with alpha in [0, 1].
func toColor(c physics.Color, alpha float64) rl.Color {
	rgba := c.RGBA()
	alpha = math.Max(0, math.Min(1, alpha))
	return rl.NewColor(rgba.R, rgba.G, rgba.B, uint8(math.Round(alpha*255)))
}

func vec(p dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

// drawWorld paints every ball in creation order: trail, gradient body,
// highlight, then sparks for fire balls.
func (a *App) drawWorld() {
	trails := a.World.TrailsEnabled()
	for _, b := range a.World.Bodies() {
		if trails {
			drawTrail(b)
		}
		drawBall(b)
		if b.Archetype() == physics.Incendiary {
			a.drawSparks(b)
		}
	}
}

func drawTrail(b *physics.Body) {
	trail := b.Trail()
	if len(trail) < 2 {
		return
	}
	col := toColor(b.Color(), trailAlpha)
	thick := float32(b.Radius() / 2)
	for i := 1; i < len(trail); i++ {
		rl.DrawLineEx(vec(trail[i-1]), vec(trail[i]), thick, col)
	}
}

func drawBall(b *physics.Body) {
	p, r := b.Position(), float32(b.Radius())
	stops := physics.Gradient(b.Archetype(), b.Color())

	// outer rim, then the bright core fading into the body color
	rl.DrawCircleV(vec(p), r, toColor(stops[2].Color, 1))
	rl.DrawCircleGradient(int32(p.X), int32(p.Y), r*0.9, toColor(stops[0].Color, 1), toColor(stops[1].Color, 1))

	off := b.Radius() / 3
	rl.DrawCircleV(vec(p.Sub(dynamo.V(off, off))), float32(off), rl.Fade(rl.White, highlightAlpha))

	if b.Dragging() {
		rl.DrawCircleLines(int32(p.X), int32(p.Y), r+2, rl.Fade(rl.White, 0.6))
	}
}

func (a *App) drawSparks(b *physics.Body) {
	for _, s := range b.Particles() {
		rl.DrawCircleV(vec(s.Pos), float32(s.Size), toColor(physics.SparkColor(a.sparkRng), s.Life))
	}
}
