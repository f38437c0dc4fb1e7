// Package board provides the whiteboard canvas widget: it renders the
// item collection through the camera transform and translates Fyne input
// into the normalized gesture events the dispatcher consumes.
package board

import (
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"driftboard/internal/app"
	"driftboard/internal/gesture"
	"driftboard/internal/viewport"
)

// Canvas is the pannable, zoomable board surface.
type Canvas struct {
	widget.BaseWidget

	state      *app.State
	cam        *viewport.Animator
	dispatcher *gesture.Dispatcher

	raster *fynecanvas.Raster
	ticker *fyne.Animation

	// Modifier state fed by the window's key handlers; Fyne scroll
	// events do not carry modifiers themselves.
	ctrlDown bool

	lastSize fyne.Size

	onScaleChange func(scale float64)
}

// New creates a board canvas over the given state.
func New(state *app.State) *Canvas {
	bc := &Canvas{
		state: state,
		cam:   viewport.NewAnimator(viewport.Identity()),
	}
	bc.dispatcher = gesture.NewDispatcher(bc.cam, state.Items)
	bc.dispatcher.OnItemMoved(state.ItemMoved)

	bc.cam.OnChange(func(t viewport.Transform) {
		bc.Refresh()
		if bc.onScaleChange != nil {
			bc.onScaleChange(t.Scale)
		}
	})

	state.On(app.EventItemsChanged, func(interface{}) {
		bc.dispatcher.SetItems(state.Items)
		bc.Refresh()
	})

	bc.raster = fynecanvas.NewRaster(bc.draw)
	bc.raster.ScaleMode = fynecanvas.ImageScalePixels

	bc.ExtendBaseWidget(bc)
	return bc
}

// Camera exposes the animator for the window chrome (scale readout).
func (bc *Canvas) Camera() *viewport.Animator {
	return bc.cam
}

// Dispatcher exposes the gesture dispatcher for chrome-triggered actions
// (button zoom, fit-to-content).
func (bc *Canvas) Dispatcher() *gesture.Dispatcher {
	return bc.dispatcher
}

// OnScaleChange sets a callback for scale changes, fed from every
// animation step and immediate jump.
func (bc *Canvas) OnScaleChange(callback func(scale float64)) {
	bc.onScaleChange = callback
}

// SetCtrlDown records the ctrl modifier state used to classify wheel
// events as pans or zooms.
func (bc *Canvas) SetCtrlDown(down bool) {
	bc.ctrlDown = down
}

// MouseDown starts a gesture. Whether it becomes a camera pan or an item
// drag is the dispatcher's decision.
func (bc *Canvas) MouseDown(ev *desktop.MouseEvent) {
	bc.dispatcher.HandlePointer(gesture.PointerEvent{
		Phase: gesture.PhaseDown,
		X:     float64(ev.Position.X),
		Y:     float64(ev.Position.Y),
		Time:  time.Now(),
	})
}

// MouseUp ends the active gesture.
func (bc *Canvas) MouseUp(ev *desktop.MouseEvent) {
	bc.dispatcher.HandlePointer(gesture.PointerEvent{
		Phase: gesture.PhaseUp,
		X:     float64(ev.Position.X),
		Y:     float64(ev.Position.Y),
		Time:  time.Now(),
	})
	bc.Refresh()
}

// Dragged feeds pointer movement to the active gesture.
func (bc *Canvas) Dragged(ev *fyne.DragEvent) {
	bc.dispatcher.HandlePointer(gesture.PointerEvent{
		Phase: gesture.PhaseMove,
		X:     float64(ev.Position.X),
		Y:     float64(ev.Position.Y),
		DX:    float64(ev.Dragged.DX),
		DY:    float64(ev.Dragged.DY),
		Time:  time.Now(),
	})
	// Camera pans refresh through the animator's OnChange; item drag
	// previews do not touch the camera, so refresh here as well.
	bc.Refresh()
}

// DragEnd is handled by MouseUp, which carries the release position.
func (bc *Canvas) DragEnd() {}

// Scrolled normalizes a wheel event. Fyne reports wheel-up as positive,
// the opposite of scroll deltas, so the sign flips here. Ctrl-wheel with
// a small delta is a trackpad pinch in disguise and is routed to the
// pinch path instead of the wheel path.
func (bc *Canvas) Scrolled(ev *fyne.ScrollEvent) {
	dx := float64(-ev.Scrolled.DX)
	dy := float64(-ev.Scrolled.DY)
	x := float64(ev.Position.X)
	y := float64(ev.Position.Y)
	now := time.Now()

	if bc.ctrlDown && dy != 0 && dy > -gesture.PinchWheelThreshold && dy < gesture.PinchWheelThreshold {
		bc.dispatcher.HandlePinch(gesture.PinchEvent{
			OriginX:    x,
			OriginY:    y,
			DeltaScale: -dy / 100,
			WheelDY:    dy,
			Time:       now,
		})
		return
	}

	bc.dispatcher.HandleWheel(gesture.WheelEvent{
		DX:   dx,
		DY:   dy,
		Ctrl: bc.ctrlDown,
		X:    x,
		Y:    y,
		Time: now,
	})
}

// startTicker runs the per-frame driver that advances in-flight camera
// animations. Steps while idle are free, so one persistent ticker serves
// the widget's lifetime.
func (bc *Canvas) startTicker() {
	if bc.ticker != nil {
		return
	}
	bc.ticker = &fyne.Animation{
		Duration:    time.Hour,
		Curve:       fyne.AnimationLinear,
		RepeatCount: fyne.AnimationRepeatForever,
		Tick: func(float32) {
			bc.cam.Step(time.Now())
		},
	}
	bc.ticker.Start()
}

// CreateRenderer implements fyne.Widget.
func (bc *Canvas) CreateRenderer() fyne.WidgetRenderer {
	bc.startTicker()
	return &canvasRenderer{board: bc}
}

type canvasRenderer struct {
	board *Canvas
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.board.raster.Resize(size)
	if size != r.board.lastSize && size.Width > 0 && size.Height > 0 {
		r.board.lastSize = size
		r.board.dispatcher.SetViewportSize(float64(size.Width), float64(size.Height))
	}
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 150)
}

func (r *canvasRenderer) Refresh() {
	r.board.raster.Refresh()
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.raster}
}

func (r *canvasRenderer) Destroy() {
	if r.board.ticker != nil {
		r.board.ticker.Stop()
		r.board.ticker = nil
	}
}

// Refresh redraws the board surface.
func (bc *Canvas) Refresh() {
	bc.raster.Refresh()
}

var (
	_ fyne.Widget       = (*Canvas)(nil)
	_ fyne.Draggable    = (*Canvas)(nil)
	_ fyne.Scrollable   = (*Canvas)(nil)
	_ desktop.Mouseable = (*Canvas)(nil)
)
