package gesture

import (
	"math"
	"time"

	"driftboard/internal/item"
	"driftboard/internal/viewport"
)

const (
	// WheelZoomSensitivity converts a wheel delta into an exponential
	// scale factor.
	WheelZoomSensitivity = 0.0035
	// WheelZoomMaxDelta caps the per-event wheel delta on each side, so
	// a single violent tick cannot jump the scale.
	WheelZoomMaxDelta = 100.0
	// PinchWheelThreshold separates real ctrl-wheel zooms (|dy| at or
	// above it) from pinches disguised as ctrl-wheel events (below it).
	PinchWheelThreshold = 15.0
	// PinchSensitivity scales the library-reported pinch delta.
	PinchSensitivity = 10.0
	// ZoomStep is the relative scale change per zoom button press.
	ZoomStep = 0.3
	// velocityWindow is the trailing span of move samples used to
	// measure release velocity.
	velocityWindow = 100 * time.Millisecond
)

// panMemo is the scratch state of one camera pan, from press to release.
type panMemo struct {
	origin     viewport.Transform
	cumX, cumY float64
	samples    []moveSample
}

type moveSample struct {
	t      time.Time
	dx, dy float64
}

// dragMemo is the scratch state of one item drag. The previewed position
// lives here until release; the collection is written once, on commit.
type dragMemo struct {
	target         *item.Item
	startX, startY float64
	cumX, cumY     float64
	curX, curY     float64
}

// Dispatcher consumes normalized events and drives the camera animator
// and the item collection. Only one gesture family acts per discrete
// event; precedence between item drag and camera pan is decided here, by
// hit-testing the press point against the collection, because the camera
// observes input before any item does.
type Dispatcher struct {
	cam   *viewport.Animator
	items *item.Collection

	viewportW float64
	viewportH float64

	pan  *panMemo
	drag *dragMemo

	onItemMoved func(*item.Item)
}

// NewDispatcher creates a dispatcher driving the given animator and
// collection.
func NewDispatcher(cam *viewport.Animator, items *item.Collection) *Dispatcher {
	return &Dispatcher{cam: cam, items: items}
}

// SetItems swaps the collection the dispatcher hit-tests and fits
// against, dropping any in-flight item drag.
func (d *Dispatcher) SetItems(items *item.Collection) {
	d.items = items
	d.drag = nil
}

// SetViewportSize records the measured viewport dimensions, used as the
// button-zoom anchor and by the fit solver. Actions needing a measured
// viewport are no-ops while it is zero.
func (d *Dispatcher) SetViewportSize(w, h float64) {
	d.viewportW = w
	d.viewportH = h
}

// OnItemMoved registers the callback invoked when an item drag commits.
func (d *Dispatcher) OnItemMoved(fn func(*item.Item)) {
	d.onItemMoved = fn
}

// HandlePointer routes a pointer event to the active gesture, or starts
// one on a press.
func (d *Dispatcher) HandlePointer(ev PointerEvent) {
	switch ev.Phase {
	case PhaseDown:
		d.pointerDown(ev)
	case PhaseMove:
		d.pointerMove(ev)
	case PhaseUp:
		d.pointerUp(ev)
	}
}

func (d *Dispatcher) pointerDown(ev PointerEvent) {
	cur := d.cam.Current()
	wx, wy := cur.ScreenToWorld(ev.X, ev.Y)
	if hit := d.items.At(wx, wy); hit != nil {
		// Item drag takes precedence; the camera must not pan.
		d.drag = &dragMemo{
			target: hit,
			startX: hit.X,
			startY: hit.Y,
			curX:   hit.X,
			curY:   hit.Y,
		}
		return
	}
	// The newest gesture supersedes any still-settling animation.
	d.cam.Stop()
	d.pan = &panMemo{origin: d.cam.Current()}
}

func (d *Dispatcher) pointerMove(ev PointerEvent) {
	if d.drag != nil {
		d.drag.cumX += ev.DX
		d.drag.cumY += ev.DY
		// Divide by the current scale, read fresh each tick, so cursor
		// and item track 1:1 in screen pixels at any zoom level.
		scale := d.cam.Current().Scale
		d.drag.curX = d.drag.startX + d.drag.cumX/scale
		d.drag.curY = d.drag.startY + d.drag.cumY/scale
		return
	}
	if d.pan != nil {
		d.pan.cumX += ev.DX
		d.pan.cumY += ev.DY
		d.pan.samples = append(d.pan.samples, moveSample{t: ev.Time, dx: ev.DX, dy: ev.DY})
		d.cam.AnimateTo(
			viewport.Position(d.pan.origin.X+d.pan.cumX, d.pan.origin.Y+d.pan.cumY),
			viewport.Settle, true)
	}
}

func (d *Dispatcher) pointerUp(ev PointerEvent) {
	if d.drag != nil {
		m := d.drag
		d.drag = nil
		d.items.MoveTo(m.target.ID, m.curX, m.curY)
		if d.onItemMoved != nil {
			d.onItemMoved(m.target)
		}
		return
	}
	if d.pan != nil {
		m := d.pan
		d.pan = nil
		vx, vy, dirX, dirY := m.releaseVelocity(ev.Time)
		d.cam.AnimateTo(viewport.Throw(d.cam.Current(), vx, vy, dirX, dirY), viewport.Coast, false)
	}
}

// releaseVelocity measures per-axis velocity in px/ms over the trailing
// sample window and the movement direction per axis (-1, 0, or 1).
func (m *panMemo) releaseVelocity(at time.Time) (vx, vy, dirX, dirY float64) {
	cutoff := at.Add(-velocityWindow)
	var sumX, sumY float64
	var oldest time.Time
	for _, s := range m.samples {
		if s.t.Before(cutoff) {
			continue
		}
		if oldest.IsZero() {
			oldest = s.t
		}
		sumX += s.dx
		sumY += s.dy
	}
	if oldest.IsZero() {
		return 0, 0, 0, 0
	}
	ms := float64(at.Sub(oldest).Milliseconds())
	if ms <= 0 {
		return 0, 0, 0, 0
	}
	vx = math.Abs(sumX) / ms
	vy = math.Abs(sumY) / ms
	dirX = sign(sumX)
	dirY = sign(sumY)
	return vx, vy, dirX, dirY
}

// HandleWheel routes a wheel event: plain wheel pans by the raw delta,
// ctrl-wheel zooms toward the cursor. No smoothing on either path — fast
// scroll ticks must not lag, and platforms with native momentum already
// emit decaying deltas, so no inertia is synthesized here.
func (d *Dispatcher) HandleWheel(ev WheelEvent) {
	if !ev.Ctrl {
		if ev.DX == 0 && ev.DY == 0 {
			return
		}
		cur := d.cam.Current()
		d.cam.AnimateTo(viewport.Position(cur.X-ev.DX, cur.Y-ev.DY), viewport.Settle, true)
		return
	}

	// Small-delta ctrl-wheel events are pinches in disguise; the pinch
	// path handles those.
	if math.Abs(ev.DY) < PinchWheelThreshold {
		return
	}

	dy := ev.DY
	if dy > WheelZoomMaxDelta {
		dy = WheelZoomMaxDelta
	}
	if dy < -WheelZoomMaxDelta {
		dy = -WheelZoomMaxDelta
	}
	cur := d.cam.Current()
	factor := math.Exp(-dy * WheelZoomSensitivity)
	delta := cur.Scale * (factor - 1)
	next := viewport.ResolveZoom(cur, delta, ev.X, ev.Y, viewport.ScaleMin, viewport.GestureScaleMax)
	d.cam.AnimateTo(viewport.Full(next), viewport.Settle, true)
}

// HandlePinch zooms toward the pinch origin. Pinch events that are
// actually large-delta wheel events are ignored — the wheel path already
// handled them.
func (d *Dispatcher) HandlePinch(ev PinchEvent) {
	if math.Abs(ev.WheelDY) >= PinchWheelThreshold {
		return
	}
	cur := d.cam.Current()
	delta := ev.DeltaScale * PinchSensitivity
	next := viewport.ResolveZoom(cur, delta, ev.OriginX, ev.OriginY, viewport.ScaleMin, viewport.GestureScaleMax)
	d.cam.AnimateTo(viewport.Full(next), viewport.Settle, true)
}

// ZoomIn steps the scale up by ZoomStep, anchored at the viewport center.
func (d *Dispatcher) ZoomIn() {
	d.buttonZoom(1 + ZoomStep)
}

// ZoomOut steps the scale down by ZoomStep, anchored at the viewport
// center.
func (d *Dispatcher) ZoomOut() {
	d.buttonZoom(1 - ZoomStep)
}

// buttonZoom animates to the stepped scale over a fixed short duration.
// A fixed ramp lands x, y, and scale on their targets at the same
// instant, so the center anchor cannot drift under rapid repeated
// clicks the way mismatched per-property spring settles would.
func (d *Dispatcher) buttonZoom(factor float64) {
	if d.viewportW <= 0 || d.viewportH <= 0 {
		return
	}
	cur := d.cam.Current()
	target := viewport.ClampScale(cur.Scale*factor, viewport.ScaleMin, viewport.ButtonScaleMax)
	next := viewport.ResolveZoom(cur, target-cur.Scale, d.viewportW/2, d.viewportH/2,
		viewport.ScaleMin, viewport.ButtonScaleMax)
	d.cam.AnimateTo(viewport.Full(next), viewport.Snap, false)
}

// FitToContent frames all items with padding. No-op without items or a
// measured viewport, or when the content box is degenerate.
func (d *Dispatcher) FitToContent() {
	min, max, ok := d.items.Bounds()
	if !ok {
		return
	}
	target, ok := viewport.FitToContent(min, max, d.viewportW, d.viewportH)
	if !ok {
		return
	}
	d.cam.AnimateTo(target, viewport.Coast, false)
}

// DragPreview returns the item being dragged and its transient previewed
// center. The collection holds the committed position until release; the
// render layer draws the preview on top.
func (d *Dispatcher) DragPreview() (it *item.Item, x, y float64, ok bool) {
	if d.drag == nil {
		return nil, 0, 0, false
	}
	return d.drag.target, d.drag.curX, d.drag.curY, true
}

// Panning reports whether a camera pan is in progress.
func (d *Dispatcher) Panning() bool {
	return d.pan != nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
