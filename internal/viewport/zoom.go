package viewport

// ResolveZoom computes the transform that changes the camera scale by
// deltaScale while keeping the world point under the screen anchor
// visually fixed. The same solver serves wheel zoom, pinch zoom, and
// button zoom; only the anchor, delta, and clamp bounds differ.
//
// With factor = newScale/oldScale, the unique translation that keeps the
// anchor stationary is newX = anchorX - factor*(anchorX - oldX). Scale is
// bounded away from zero by the clamp, so the division is always safe.
func ResolveZoom(cur Transform, deltaScale, anchorX, anchorY, minScale, maxScale float64) Transform {
	newScale := ClampScale(cur.Scale+deltaScale, minScale, maxScale)
	factor := newScale / cur.Scale
	return Transform{
		X:     anchorX - factor*(anchorX-cur.X),
		Y:     anchorY - factor*(anchorY-cur.Y),
		Scale: newScale,
	}
}
