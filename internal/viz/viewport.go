package viz

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// DefaultScale is world units per braille sub-pixel.
const DefaultScale = 5.0

// Viewport maps world coordinates onto a canvas of Cols x Rows cells that
// sits at terminal cell (OriginX, OriginY).
type Viewport struct {
	Cols, Rows       int
	OriginX, OriginY int
	Scale            float64
}

func NewViewport(cols, rows int) Viewport {
	return Viewport{Cols: cols, Rows: rows, OriginX: 2, OriginY: 1, Scale: DefaultScale}
}

// WorldSize is the width and height of the world the canvas shows.
func (v Viewport) WorldSize() (float64, float64) {
	return float64(v.Cols*2) * v.Scale, float64(v.Rows*4) * v.Scale
}

// ToSub converts a world point to canvas sub-pixels.
func (v Viewport) ToSub(p dynamo.Vec2) (int, int) {
	return int(math.Floor(p.X / v.Scale)), int(math.Floor(p.Y / v.Scale))
}

// Radius converts a world length to sub-pixels.
func (v Viewport) Radius(r float64) int {
	return int(math.Round(r / v.Scale))
}

// Contains reports whether terminal cell (col, row) lies on the canvas.
func (v Viewport) Contains(col, row int) bool {
	c, r := col-v.OriginX, row-v.OriginY
	return c >= 0 && r >= 0 && c < v.Cols && r < v.Rows
}

// CellToWorld maps a terminal cell to the world point at its center.
func (v Viewport) CellToWorld(col, row int) dynamo.Vec2 {
	return dynamo.Vec2{
		X: (float64((col-v.OriginX)*2) + 1) * v.Scale,
		Y: (float64((row-v.OriginY)*4) + 2) * v.Scale,
	}
}
