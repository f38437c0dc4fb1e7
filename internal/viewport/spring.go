package viewport

import (
	"math"
	"time"
)

// Config selects the interpolation used by an animation: a spring defined
// by mass/tension/friction, or a fixed-duration linear ramp. A fixed
// duration guarantees that x, y, and scale land on their targets at the
// same instant, which the button zoom relies on to keep its anchor from
// drifting under rapid clicks.
type Config struct {
	Mass     float64
	Tension  float64
	Friction float64
	Duration time.Duration
}

// Tuning presets. Settle is the general-purpose spring; Coast is the
// faster, heavily damped spring shared by inertia and fit-to-content;
// Snap is the short fixed ramp used by the zoom buttons.
var (
	Settle = Config{Mass: 1, Tension: 170, Friction: 26}
	Coast  = Config{Mass: 1, Tension: 200, Friction: 50}
	Snap   = Config{Duration: 25 * time.Millisecond}
)

// fixed reports whether the config is a fixed-duration ramp rather than
// a spring.
func (c Config) fixed() bool {
	return c.Duration > 0
}

// springAt evaluates the closed-form solution of the damped harmonic
// oscillator x'' = -(k/m)(x - target) - (c/m)x' with x(0) = from and
// x'(0) = 0, at time t seconds. Solving in closed form keeps stepping
// deterministic regardless of frame pacing.
func (c Config) springAt(from, target, t float64) float64 {
	delta := from - target
	if delta == 0 {
		return target
	}

	w0 := math.Sqrt(c.Tension / c.Mass)
	zeta := c.Friction / (2 * math.Sqrt(c.Tension*c.Mass))

	switch {
	case zeta < 1:
		// Underdamped: decaying oscillation.
		wd := w0 * math.Sqrt(1-zeta*zeta)
		env := math.Exp(-zeta * w0 * t)
		return target + delta*env*(math.Cos(wd*t)+(zeta*w0/wd)*math.Sin(wd*t))
	case zeta == 1:
		// Critically damped.
		return target + delta*math.Exp(-w0*t)*(1+w0*t)
	default:
		// Overdamped: sum of two decaying exponentials.
		s := w0 * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*w0 + s
		r2 := -zeta*w0 - s
		c1 := delta * -r2 / (r1 - r2)
		c2 := delta * r1 / (r1 - r2)
		return target + c1*math.Exp(r1*t) + c2*math.Exp(r2*t)
	}
}

// springVelocityAt evaluates the velocity of the same solution, used for
// the convergence check.
func (c Config) springVelocityAt(from, target, t float64) float64 {
	delta := from - target
	if delta == 0 {
		return 0
	}

	w0 := math.Sqrt(c.Tension / c.Mass)
	zeta := c.Friction / (2 * math.Sqrt(c.Tension*c.Mass))

	switch {
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		env := math.Exp(-zeta * w0 * t)
		a := math.Cos(wd*t) + (zeta*w0/wd)*math.Sin(wd*t)
		da := -wd*math.Sin(wd*t) + zeta*w0*math.Cos(wd*t)
		return delta * env * (da - zeta*w0*a)
	case zeta == 1:
		return delta * math.Exp(-w0*t) * (-w0 * w0 * t)
	default:
		s := w0 * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*w0 + s
		r2 := -zeta*w0 - s
		c1 := delta * -r2 / (r1 - r2)
		c2 := delta * r1 / (r1 - r2)
		return c1*r1*math.Exp(r1*t) + c2*r2*math.Exp(r2*t)
	}
}
