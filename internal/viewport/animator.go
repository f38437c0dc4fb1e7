package viewport

import "time"

// Target is a partial transform: only the fields marked present are
// animated, the rest hold their current values.
type Target struct {
	X, Y, Scale          float64
	HasX, HasY, HasScale bool
}

// Full targets every field of t.
func Full(t Transform) Target {
	return Target{X: t.X, Y: t.Y, Scale: t.Scale, HasX: true, HasY: true, HasScale: true}
}

// Position targets only the offset, leaving scale untouched.
func Position(x, y float64) Target {
	return Target{X: x, Y: y, HasX: true, HasY: true}
}

// animation is the Running record of the animator's state machine. The
// animator is Idle when its animation is nil; starting a new animation
// simply overwrites the record, which is the cancellation mechanism.
type animation struct {
	from   Transform
	target Transform
	cfg    Config
	start  time.Time
}

// Animator owns the camera transform. All motion passes through it:
// immediate jumps for 1:1 gesture tracking, springs and fixed ramps for
// everything else. It is driven cooperatively by Step, called once per
// rendered frame by the UI layer; nothing blocks.
type Animator struct {
	current  Transform
	anim     *animation
	onChange func(Transform)
	now      func() time.Time
}

// Convergence thresholds for spring animations. Position in screen
// pixels, scale dimensionless, velocity in units per second.
const (
	posEpsilon   = 0.01
	scaleEpsilon = 0.0001
	velEpsilon   = 0.01
)

// NewAnimator creates an animator holding the given initial transform.
func NewAnimator(initial Transform) *Animator {
	return &Animator{current: initial, now: time.Now}
}

// Current returns the transform as of the last jump or animation step,
// possibly mid-flight.
func (a *Animator) Current() Transform {
	return a.current
}

// OnChange registers the callback invoked whenever the transform value
// changes, including every animation step. Used by the render layer and
// the scale readout.
func (a *Animator) OnChange(fn func(Transform)) {
	a.onChange = fn
}

// Animating reports whether an animation is in flight.
func (a *Animator) Animating() bool {
	return a.anim != nil
}

// Pending returns the in-flight animation target, if any.
func (a *Animator) Pending() (Transform, bool) {
	if a.anim == nil {
		return Transform{}, false
	}
	return a.anim.target, true
}

// AnimateTo moves the transform toward target. When immediate is true the
// value jumps synchronously, cancelling any running animation; this is
// the path used for continuous tracking during drags and wheel events.
// Otherwise a new animation starts under cfg, always replacing an
// in-flight one rather than queueing behind it — rapid button clicks and
// wheel ticks must not build a backlog of animations fighting over the
// final value.
func (a *Animator) AnimateTo(target Target, cfg Config, immediate bool) {
	resolved := a.resolve(target)
	if immediate {
		a.anim = nil
		a.set(resolved)
		return
	}
	a.anim = &animation{
		from:   a.current,
		target: resolved,
		cfg:    cfg,
		start:  a.now(),
	}
}

// Stop cancels any in-flight animation, freezing the transform at its
// current interpolated value.
func (a *Animator) Stop() {
	a.anim = nil
}

// Step advances the running animation to the given time and reports
// whether one is still in flight afterwards. Safe to call while idle.
func (a *Animator) Step(now time.Time) bool {
	an := a.anim
	if an == nil {
		return false
	}
	elapsed := now.Sub(an.start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	if an.cfg.fixed() {
		p := elapsed / an.cfg.Duration.Seconds()
		if p >= 1 {
			a.anim = nil
			a.set(an.target)
			return false
		}
		a.set(Transform{
			X:     an.from.X + (an.target.X-an.from.X)*p,
			Y:     an.from.Y + (an.target.Y-an.from.Y)*p,
			Scale: an.from.Scale + (an.target.Scale-an.from.Scale)*p,
		})
		return true
	}

	next := Transform{
		X:     an.cfg.springAt(an.from.X, an.target.X, elapsed),
		Y:     an.cfg.springAt(an.from.Y, an.target.Y, elapsed),
		Scale: an.cfg.springAt(an.from.Scale, an.target.Scale, elapsed),
	}
	if a.converged(an, next, elapsed) {
		a.anim = nil
		a.set(an.target)
		return false
	}
	a.set(next)
	return true
}

func (a *Animator) converged(an *animation, next Transform, elapsed float64) bool {
	if abs(next.X-an.target.X) > posEpsilon ||
		abs(next.Y-an.target.Y) > posEpsilon ||
		abs(next.Scale-an.target.Scale) > scaleEpsilon {
		return false
	}
	return abs(an.cfg.springVelocityAt(an.from.X, an.target.X, elapsed)) < velEpsilon &&
		abs(an.cfg.springVelocityAt(an.from.Y, an.target.Y, elapsed)) < velEpsilon &&
		abs(an.cfg.springVelocityAt(an.from.Scale, an.target.Scale, elapsed)) < velEpsilon
}

// resolve fills the absent fields of a partial target from the current
// value, so they hold still while the present ones animate.
func (a *Animator) resolve(t Target) Transform {
	out := a.current
	if t.HasX {
		out.X = t.X
	}
	if t.HasY {
		out.Y = t.Y
	}
	if t.HasScale {
		out.Scale = t.Scale
	}
	return out
}

func (a *Animator) set(t Transform) {
	a.current = t
	if a.onChange != nil {
		a.onChange(t)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
