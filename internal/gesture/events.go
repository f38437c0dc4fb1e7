// Package gesture routes normalized input events to the viewport engine:
// it disambiguates pan, wheel pan, wheel zoom, pinch, and item drag, and
// owns the per-gesture scratch state each family needs.
package gesture

import "time"

// Phase identifies the stage of a pointer gesture.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

// PointerEvent is a normalized press/move/release event in viewport
// coordinates. DX/DY carry the movement since the previous event and are
// meaningful for PhaseMove only. The UI layer unifies mouse and touch
// sources before events reach the dispatcher.
type PointerEvent struct {
	Phase  Phase
	X, Y   float64
	DX, DY float64
	Time   time.Time
}

// WheelEvent is a normalized scroll event. Ctrl marks the zoom modifier;
// X/Y locate the cursor, which anchors ctrl-wheel zoom.
type WheelEvent struct {
	DX, DY float64
	Ctrl   bool
	X, Y   float64
	Time   time.Time
}

// PinchEvent is a normalized pinch step. WheelDY records the delta of the
// wheel event the pinch was derived from, when any: desktop trackpads
// deliver pinches as ctrl-wheel events with small deltas, and the
// dispatcher needs the raw delta to keep the wheel and pinch paths from
// double-handling the same physical input.
type PinchEvent struct {
	OriginX, OriginY float64
	DeltaScale       float64
	WheelDY          float64
	Time             time.Time
}
