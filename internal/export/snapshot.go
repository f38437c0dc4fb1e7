// Package export renders the board to a PNG snapshot.
package export

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"driftboard/internal/item"
	"driftboard/pkg/colorutil"
	"driftboard/pkg/geometry"
)

const (
	margin       = 40.0
	cornerRadius = 8.0
	labelSize    = 16.0
	maxSide      = 8000 // refuse absurd output dimensions
)

// PNG renders every item at world scale onto a white canvas framed with a
// margin, and writes it to path.
func PNG(path string, items *item.Collection) error {
	min, max, ok := items.Bounds()
	if !ok {
		return fmt.Errorf("export: board has no items")
	}

	frame := geometry.NewRect(min.X-margin, min.Y-margin,
		(max.X-min.X)+2*margin, (max.Y-min.Y)+2*margin)
	w := int(frame.Width + 0.5)
	h := int(frame.Height + 0.5)
	if w <= 0 || h <= 0 || w > maxSide || h > maxSide {
		return fmt.Errorf("export: content %dx%d out of range", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(colorutil.White)
	dc.Clear()

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("export: parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: labelSize}))

	for _, it := range items.Items() {
		lo := it.Min()
		x := lo.X - frame.X
		y := lo.Y - frame.Y

		dc.SetColor(it.Color)
		dc.DrawRoundedRectangle(x, y, it.Width, it.Height, cornerRadius)
		dc.Fill()

		dc.SetColor(colorutil.Black)
		dc.DrawRoundedRectangle(x, y, it.Width, it.Height, cornerRadius)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		if it.Label != "" {
			dc.DrawStringAnchored(it.Label, x+it.Width/2, y+it.Height/2, 0.5, 0.5)
		}
	}

	return dc.SavePNG(path)
}
