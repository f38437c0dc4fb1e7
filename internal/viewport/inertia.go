package viewport

// InertiaPower scales release velocity (px/ms) into a coasting distance.
const InertiaPower = 200

// Throw converts a pan gesture's release velocity and direction into the
// coasting offset added to the current position. Velocity components are
// the per-axis magnitudes in px/ms; direction components are -1, 0, or 1.
func Throw(cur Transform, vx, vy, dirX, dirY float64) Target {
	return Position(
		cur.X+vx*dirX*InertiaPower,
		cur.Y+vy*dirY*InertiaPower,
	)
}
