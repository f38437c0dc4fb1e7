// Package viewport implements the camera transform engine: the transform
// state, the anchor-preserving zoom solver, spring/duration animation,
// inertial coasting, and the fit-to-content solver.
package viewport

// Scale bounds. The gesture path and the button path deliberately clamp
// to different maxima; keep them as separate constants per call site.
const (
	ScaleMin        = 0.1
	GestureScaleMax = 10.0
	ButtonScaleMax  = 5.0
	FitScaleMax     = 1.5
)

// Transform is the camera state applied to the content layer. X and Y are
// the screen-space offset of the world origin; Scale is the magnification.
// The canvas is conceptually infinite, so X and Y are unconstrained.
type Transform struct {
	X     float64
	Y     float64
	Scale float64
}

// Identity returns the untransformed camera (origin at top-left, scale 1).
func Identity() Transform {
	return Transform{X: 0, Y: 0, Scale: 1}
}

// WorldToScreen maps a world point through the transform.
func (t Transform) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*t.Scale + t.X, wy*t.Scale + t.Y
}

// ScreenToWorld maps a screen point back into world coordinates.
func (t Transform) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return (sx - t.X) / t.Scale, (sy - t.Y) / t.Scale
}

// ClampScale limits s to [min, max].
func ClampScale(s, min, max float64) float64 {
	if s < min {
		return min
	}
	if s > max {
		return max
	}
	return s
}
