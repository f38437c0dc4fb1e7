package board

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"driftboard/internal/item"
	"driftboard/internal/viewport"
	"driftboard/pkg/colorutil"
	"driftboard/pkg/geometry"
)

// gridSpacing is the distance between grid lines in world units.
const gridSpacing = 100.0

// draw is the raster drawing function. Coordinates are computed in
// points and rasterized at the pixel ratio the raster reports, so HiDPI
// output stays aligned with the event coordinates.
func (bc *Canvas) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorutil.Paper), image.Point{}, draw.Src)

	size := bc.Size()
	if size.Width <= 0 || size.Height <= 0 || w == 0 || h == 0 {
		return img
	}
	px := float64(w) / float64(size.Width)

	t := bc.cam.Current()
	viewW := float64(size.Width)
	viewH := float64(size.Height)

	bc.drawGrid(img, t, viewW, viewH, px)

	// World-space rect currently visible, for culling.
	wx0, wy0 := t.ScreenToWorld(0, 0)
	wx1, wy1 := t.ScreenToWorld(viewW, viewH)
	visible := geometry.NewRect(wx0, wy0, wx1-wx0, wy1-wy0)

	dragItem, dragX, dragY, dragging := bc.dispatcher.DragPreview()

	for _, it := range bc.state.Items.Items() {
		cx, cy := it.X, it.Y
		if dragging && it == dragItem {
			// Transient drag position; the collection still holds the
			// last committed one.
			cx, cy = dragX, dragY
		}
		world := geometry.NewRect(cx-it.Width/2, cy-it.Height/2, it.Width, it.Height)
		if !world.Intersects(visible) {
			continue
		}
		bc.drawItem(img, t, world, it, px)
	}

	return img
}

// drawGrid draws the world-unit grid behind the items.
func (bc *Canvas) drawGrid(img *image.RGBA, t viewport.Transform, viewW, viewH, px float64) {
	b := img.Bounds()

	wx0, wy0 := t.ScreenToWorld(0, 0)
	wx1, wy1 := t.ScreenToWorld(viewW, viewH)

	for wx := math.Floor(wx0/gridSpacing) * gridSpacing; wx <= wx1; wx += gridSpacing {
		sx, _ := t.WorldToScreen(wx, 0)
		x := int(sx * px)
		if x < b.Min.X || x >= b.Max.X {
			continue
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			img.SetRGBA(x, y, rgba(colorutil.Grid))
		}
	}
	for wy := math.Floor(wy0/gridSpacing) * gridSpacing; wy <= wy1; wy += gridSpacing {
		_, sy := t.WorldToScreen(0, wy)
		y := int(sy * px)
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, rgba(colorutil.Grid))
		}
	}
}

// drawItem fills the item's screen rect, strokes its border, and centers
// its label.
func (bc *Canvas) drawItem(img *image.RGBA, t viewport.Transform, world geometry.Rect, it *item.Item, px float64) {
	sx, sy := t.WorldToScreen(world.X, world.Y)
	x0 := int(sx * px)
	y0 := int(sy * px)
	x1 := int((sx + world.Width*t.Scale) * px)
	y1 := int((sy + world.Height*t.Scale) * px)

	b := img.Bounds()
	fill := rgba(it.Color)
	border := rgba(colorutil.Black)

	for y := maxInt(y0, b.Min.Y); y < minInt(y1, b.Max.Y); y++ {
		for x := maxInt(x0, b.Min.X); x < minInt(x1, b.Max.X); x++ {
			if x == x0 || x == x1-1 || y == y0 || y == y1-1 {
				img.SetRGBA(x, y, border)
			} else {
				img.SetRGBA(x, y, fill)
			}
		}
	}

	if it.Label == "" {
		return
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, it.Label).Ceil()
	cx := (x0 + x1) / 2
	cy := (y0 + y1) / 2
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorutil.Black),
		Face: face,
		Dot:  fixed.P(cx-width/2, cy+face.Metrics().Ascent.Ceil()/2),
	}
	d.DrawString(it.Label)
}

func rgba(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
