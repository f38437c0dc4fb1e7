package viewport

import "gonum.org/v1/gonum/spatial/r2"

// FitPadding is the margin, in screen pixels, kept around the content box
// on every side when framing it.
const FitPadding = 50

// FitToContent solves for the transform that frames the world-space
// bounding box [min, max] inside a viewport of the given size with
// FitPadding on each edge. It returns ok=false for degenerate input: an
// unmeasured viewport, or a box with zero width or height (a single
// point is not a meaningful fit target).
//
// The offset comes from the screen-to-world affine
// screen = world*scale + offset, requiring the box center to land on the
// viewport center.
func FitToContent(min, max r2.Vec, viewportW, viewportH float64) (Target, bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return Target{}, false
	}
	size := r2.Sub(max, min)
	if size.X <= 0 || size.Y <= 0 {
		return Target{}, false
	}

	availW := viewportW - 2*FitPadding
	availH := viewportH - 2*FitPadding
	scale := availW / size.X
	if s := availH / size.Y; s < scale {
		scale = s
	}
	// Fit never forces extreme magnification, so its clamp is tighter
	// than the general zoom bounds.
	scale = ClampScale(scale, ScaleMin, FitScaleMax)

	center := r2.Scale(0.5, r2.Add(min, max))
	return Full(Transform{
		X:     viewportW/2 - center.X*scale,
		Y:     viewportH/2 - center.Y*scale,
		Scale: scale,
	}), true
}
