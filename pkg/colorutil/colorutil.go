// Package colorutil provides shared color utilities for the board.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
)

// Common UI colors.
var (
	Black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Grid  = color.NRGBA{R: 0xE2, G: 0xE4, B: 0xE8, A: 255}
	Paper = color.NRGBA{R: 0xF7, G: 0xF8, B: 0xFA, A: 255}
)

// HSVToRGB converts H (0-360), S (0-1), V (0-1) to an opaque NRGBA.
func HSVToRGB(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.NRGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

// Palette returns n visually distinct pastel colors, evenly spaced in
// hue. Used to color freshly created items.
func Palette(n int) []color.NRGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.NRGBA, n)
	for i := range out {
		out[i] = HSVToRGB(float64(i)*360/float64(n), 0.45, 0.95)
	}
	return out
}

// ParseHex parses "#RRGGBB" or "RRGGBB" into an opaque NRGBA.
func ParseHex(s string) (color.NRGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("colorutil: invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("colorutil: invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatHex renders a color as "#RRGGBB", discarding alpha.
func FormatHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
