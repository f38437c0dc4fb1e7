// Package item provides the board's item model: movable rectangles with
// a color and a label, addressed by immutable IDs.
package item

import (
	"image/color"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// Item is a rectangle on the board. X and Y are the center of the
// rectangle in world coordinates, not the top-left corner; the render
// rect is derived as (X-Width/2, Y-Height/2). Positions are written only
// by the drag controller's commit.
type Item struct {
	ID     string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  color.NRGBA
	Label  string
}

// New creates an item with a fresh unique ID.
func New(x, y, w, h float64, c color.NRGBA, label string) *Item {
	return &Item{
		ID:     uuid.NewString(),
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Color:  c,
		Label:  label,
	}
}

// Min returns the top-left corner of the item in world coordinates.
func (it *Item) Min() r2.Vec {
	return r2.Vec{X: it.X - it.Width/2, Y: it.Y - it.Height/2}
}

// Max returns the bottom-right corner of the item in world coordinates.
func (it *Item) Max() r2.Vec {
	return r2.Vec{X: it.X + it.Width/2, Y: it.Y + it.Height/2}
}

// Contains reports whether the world point lies inside the item's rect.
func (it *Item) Contains(wx, wy float64) bool {
	min, max := it.Min(), it.Max()
	return wx >= min.X && wx <= max.X && wy >= min.Y && wy <= max.Y
}
