package gesture

import (
	"image/color"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"driftboard/internal/item"
	"driftboard/internal/viewport"
)

const tol = 1e-9

var itemColor = color.NRGBA{R: 0xAA, G: 0xCC, B: 0xEE, A: 0xFF}

func newTestDispatcher(items *item.Collection) (*Dispatcher, *viewport.Animator) {
	cam := viewport.NewAnimator(viewport.Identity())
	d := NewDispatcher(cam, items)
	d.SetViewportSize(1000, 800)
	return d, cam
}

func boardWithItem() *item.Collection {
	items := item.NewCollection()
	items.Add(item.New(0, 0, 100, 100, itemColor, "note"))
	return items
}

func TestHandleWheel_PlainPan(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())

	d.HandleWheel(WheelEvent{DX: 10, DY: 5, Time: time.Now()})

	got := cam.Current()
	if got.X != -10 || got.Y != -5 || got.Scale != 1 {
		t.Errorf("transform = %+v, want {-10 -5 1}", got)
	}
	if cam.Animating() {
		t.Error("wheel pan must apply immediately, not animate")
	}
}

func TestHandleWheel_ZeroDeltaIgnored(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())
	before := cam.Current()

	d.HandleWheel(WheelEvent{DX: 0, DY: 0, Time: time.Now()})

	if cam.Current() != before {
		t.Error("zero-delta wheel event changed the transform")
	}
}

func TestHandleWheel_CtrlZoomsAtCursor(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())

	d.HandleWheel(WheelEvent{DY: 100, Ctrl: true, X: 0, Y: 0, Time: time.Now()})

	got := cam.Current()
	want := 0.7046880897 // exp(-100 * 0.0035)
	if !scalar.EqualWithinAbs(got.Scale, want, 1e-9) {
		t.Errorf("scale = %v, want %v", got.Scale, want)
	}
	// Anchored at the origin, so the offset stays put.
	if got.X != 0 || got.Y != 0 {
		t.Errorf("offset = (%v, %v), want (0, 0)", got.X, got.Y)
	}
}

func TestHandleWheel_DeltaClampedPerEvent(t *testing.T) {
	small, camSmall := newTestDispatcher(item.NewCollection())
	large, camLarge := newTestDispatcher(item.NewCollection())

	small.HandleWheel(WheelEvent{DY: 100, Ctrl: true, Time: time.Now()})
	large.HandleWheel(WheelEvent{DY: 5000, Ctrl: true, Time: time.Now()})

	if !scalar.EqualWithinAbs(camSmall.Current().Scale, camLarge.Current().Scale, tol) {
		t.Errorf("clamped delta differs: %v vs %v",
			camSmall.Current().Scale, camLarge.Current().Scale)
	}
}

func TestHandleWheel_SmallCtrlDeltaIsPinchDisguise(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())
	before := cam.Current()

	// |dy| below the threshold is a disguised pinch; the wheel path
	// must leave it alone.
	d.HandleWheel(WheelEvent{DY: 14, Ctrl: true, Time: time.Now()})

	if cam.Current() != before {
		t.Error("wheel path handled a pinch-disguised event")
	}
}

func TestHandlePinch_ZoomsAtOrigin(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())

	d.HandlePinch(PinchEvent{OriginX: 100, OriginY: 100, DeltaScale: 0.02, Time: time.Now()})

	got := cam.Current()
	if !scalar.EqualWithinAbs(got.Scale, 1.2, tol) {
		t.Errorf("scale = %v, want 1.2", got.Scale)
	}
	if !scalar.EqualWithinAbs(got.X, -20, tol) || !scalar.EqualWithinAbs(got.Y, -20, tol) {
		t.Errorf("offset = (%v, %v), want (-20, -20)", got.X, got.Y)
	}
}

func TestHandlePinch_LargeWheelDeltaIgnored(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())
	before := cam.Current()

	// A pinch whose source wheel delta is large is really a wheel zoom
	// the wheel path already handled.
	d.HandlePinch(PinchEvent{DeltaScale: 0.02, WheelDY: 20, Time: time.Now()})

	if cam.Current() != before {
		t.Error("pinch path double-handled a wheel zoom")
	}
}

func TestHandlePinch_GestureClamp(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())

	d.HandlePinch(PinchEvent{DeltaScale: 1e6, Time: time.Now()})

	if got := cam.Current().Scale; got != viewport.GestureScaleMax {
		t.Errorf("scale = %v, want gesture maximum %v", got, viewport.GestureScaleMax)
	}
}

func TestButtonZoom_InFromUnitScale(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())

	d.ZoomIn()

	target, ok := cam.Pending()
	if !ok {
		t.Fatal("button zoom must animate, not jump")
	}
	if !scalar.EqualWithinAbs(target.Scale, 1.3, tol) {
		t.Errorf("target scale = %v, want 1.3", target.Scale)
	}
	// Anchored at the viewport center (500, 400).
	if !scalar.EqualWithinAbs(target.X, -150, tol) || !scalar.EqualWithinAbs(target.Y, -120, tol) {
		t.Errorf("target offset = (%v, %v), want (-150, -120)", target.X, target.Y)
	}

	// The fixed 25ms ramp is done well before 50ms.
	if cam.Step(time.Now().Add(50 * time.Millisecond)) {
		t.Error("button zoom still animating past its duration")
	}
	if got := cam.Current(); !scalar.EqualWithinAbs(got.Scale, 1.3, tol) {
		t.Errorf("final scale = %v, want 1.3", got.Scale)
	}
}

func TestButtonZoom_TighterClamp(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())
	cam.AnimateTo(viewport.Full(viewport.Transform{Scale: 4.5}), viewport.Settle, true)

	d.ZoomIn()

	target, ok := cam.Pending()
	if !ok {
		t.Fatal("expected an animation")
	}
	if target.Scale != viewport.ButtonScaleMax {
		t.Errorf("target scale = %v, want button maximum %v", target.Scale, viewport.ButtonScaleMax)
	}
}

func TestButtonZoom_RequiresMeasuredViewport(t *testing.T) {
	cam := viewport.NewAnimator(viewport.Identity())
	d := NewDispatcher(cam, item.NewCollection())

	d.ZoomIn()

	if cam.Animating() {
		t.Error("button zoom acted without a measured viewport")
	}
}

func TestPan_TracksImmediately(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())
	start := time.Now()

	d.HandlePointer(PointerEvent{Phase: PhaseDown, X: 400, Y: 300, Time: start})
	d.HandlePointer(PointerEvent{Phase: PhaseMove, X: 412, Y: 295, DX: 12, DY: -5, Time: start.Add(8 * time.Millisecond)})
	d.HandlePointer(PointerEvent{Phase: PhaseMove, X: 420, Y: 290, DX: 8, DY: -5, Time: start.Add(16 * time.Millisecond)})

	got := cam.Current()
	if got.X != 20 || got.Y != -10 {
		t.Errorf("transform = %+v, want {20 -10 1}", got)
	}
	if cam.Animating() {
		t.Error("pan tracking must be immediate")
	}
	if !d.Panning() {
		t.Error("pan gesture not recorded")
	}
}

func TestPan_ReleaseHandsOffToInertia(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())
	start := time.Now()

	d.HandlePointer(PointerEvent{Phase: PhaseDown, X: 0, Y: 0, Time: start})
	for i := 1; i <= 4; i++ {
		d.HandlePointer(PointerEvent{
			Phase: PhaseMove,
			DX:    10,
			Time:  start.Add(time.Duration(i) * 10 * time.Millisecond),
		})
	}
	d.HandlePointer(PointerEvent{Phase: PhaseUp, Time: start.Add(50 * time.Millisecond)})

	// 40px over the 40ms spanned by the sample window is 1 px/ms; the
	// throw adds 1 * 1 * 200 to the released position x=40.
	target, ok := cam.Pending()
	if !ok {
		t.Fatal("release must start a coasting animation")
	}
	if !scalar.EqualWithinAbs(target.X, 240, tol) {
		t.Errorf("coast target x = %v, want 240", target.X)
	}
	if target.HasScale {
		t.Error("coasting must not animate the scale")
	}
	if d.Panning() {
		t.Error("pan memo survived release")
	}
}

func TestPan_NewGestureSupersedesCoast(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())
	start := time.Now()

	d.HandlePointer(PointerEvent{Phase: PhaseDown, X: 0, Y: 0, Time: start})
	d.HandlePointer(PointerEvent{Phase: PhaseMove, DX: 30, Time: start.Add(10 * time.Millisecond)})
	d.HandlePointer(PointerEvent{Phase: PhaseUp, Time: start.Add(20 * time.Millisecond)})

	if !cam.Animating() {
		t.Fatal("expected a coasting animation")
	}

	// Pressing again interrupts the coast outright.
	d.HandlePointer(PointerEvent{Phase: PhaseDown, X: 0, Y: 0, Time: start.Add(30 * time.Millisecond)})
	if cam.Animating() {
		t.Error("new pan gesture did not supersede the coast")
	}
}

func TestItemDrag_ScaleCompensation(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		dx    float64
		want  float64
	}{
		{"unit scale", 1, 40, 40},
		{"zoomed out", 0.1, 40, 400},
		{"zoomed in", 5, 40, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := boardWithItem()
			d, cam := newTestDispatcher(items)
			cam.AnimateTo(viewport.Full(viewport.Transform{Scale: tt.scale}), viewport.Settle, true)

			start := time.Now()
			d.HandlePointer(PointerEvent{Phase: PhaseDown, X: 0, Y: 0, Time: start})
			d.HandlePointer(PointerEvent{Phase: PhaseMove, DX: tt.dx, Time: start.Add(10 * time.Millisecond)})

			_, px, _, ok := d.DragPreview()
			if !ok {
				t.Fatal("expected an active item drag")
			}
			if !scalar.EqualWithinAbs(px, tt.want, tol) {
				t.Errorf("preview x = %v, want %v", px, tt.want)
			}

			d.HandlePointer(PointerEvent{Phase: PhaseUp, Time: start.Add(20 * time.Millisecond)})
			if got := items.Items()[0].X; !scalar.EqualWithinAbs(got, tt.want, tol) {
				t.Errorf("committed x = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemDrag_CommitsOnceOnRelease(t *testing.T) {
	items := boardWithItem()
	d, _ := newTestDispatcher(items)
	start := time.Now()

	var commits int
	d.OnItemMoved(func(*item.Item) { commits++ })

	d.HandlePointer(PointerEvent{Phase: PhaseDown, X: 0, Y: 0, Time: start})
	for i := 1; i <= 10; i++ {
		d.HandlePointer(PointerEvent{Phase: PhaseMove, DX: 5, Time: start.Add(time.Duration(i) * 5 * time.Millisecond)})
	}

	// The collection holds the committed position until release; only
	// the preview moves.
	if got := items.Items()[0].X; got != 0 {
		t.Errorf("item moved mid-drag: x = %v", got)
	}
	if commits != 0 {
		t.Errorf("%d commits before release", commits)
	}

	d.HandlePointer(PointerEvent{Phase: PhaseUp, Time: start.Add(time.Second)})
	if commits != 1 {
		t.Errorf("%d commits on release, want 1", commits)
	}
	if got := items.Items()[0].X; got != 50 {
		t.Errorf("committed x = %v, want 50", got)
	}
}

func TestItemDrag_TakesPrecedenceOverPan(t *testing.T) {
	items := boardWithItem()
	d, cam := newTestDispatcher(items)
	start := time.Now()

	d.HandlePointer(PointerEvent{Phase: PhaseDown, X: 10, Y: 10, Time: start})

	if d.Panning() {
		t.Fatal("press on an item must not start a camera pan")
	}

	d.HandlePointer(PointerEvent{Phase: PhaseMove, DX: 25, DY: 25, Time: start.Add(10 * time.Millisecond)})
	if got := cam.Current(); got != viewport.Identity() {
		t.Errorf("camera moved during item drag: %+v", got)
	}
}

func TestFitToContent_ThroughDispatcher(t *testing.T) {
	items := item.NewCollection()
	items.Add(item.New(0, 0, 200, 150, itemColor, "only"))
	d, cam := newTestDispatcher(items)

	d.FitToContent()

	target, ok := cam.Pending()
	if !ok {
		t.Fatal("fit must animate")
	}
	if !scalar.EqualWithinAbs(target.Scale, 1.5, tol) {
		t.Errorf("scale = %v, want 1.5", target.Scale)
	}
	if !scalar.EqualWithinAbs(target.X, 500, tol) || !scalar.EqualWithinAbs(target.Y, 400, tol) {
		t.Errorf("offset = (%v, %v), want (500, 400)", target.X, target.Y)
	}
}

func TestFitToContent_NoItemsNoOp(t *testing.T) {
	d, cam := newTestDispatcher(item.NewCollection())

	d.FitToContent()

	if cam.Animating() {
		t.Error("fit acted on an empty board")
	}
}
