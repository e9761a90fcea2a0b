package input

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-trackball/common"
	"github.com/Carmen-Shannon/oxy-trackball/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Dispatcher translates input events into TrackballController gesture calls.
//
// Mouse buttons 0, 1 and 2 start rotate, zoom and pan. Holding one of the configured keys
// (A, S, D by default) overrides the button so any button starts that gesture. Touch gestures
// are selected by finger count: one finger rotates, two pinch-zoom, three pan.
//
// A Dispatcher is not safe for concurrent use; feed it from the goroutine that calls Update,
// typically by draining a Queue.
type Dispatcher struct {
	controller camera.TrackballController
	enabled    bool

	// keys holds the rotate, zoom and pan key codes.
	keys [3]uint32

	keyMode     camera.Mode
	prevKeyMode camera.Mode

	touchCount int
}

// DispatcherOption is a functional option for configuring a Dispatcher.
type DispatcherOption func(*Dispatcher)

// NewDispatcher creates an enabled Dispatcher feeding the given controller.
//
// Parameters:
//   - controller: the controller that receives gesture calls
//   - options: functional options to configure the dispatcher
//
// Returns:
//   - *Dispatcher: the dispatcher
func NewDispatcher(controller camera.TrackballController, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		controller:  controller,
		enabled:     true,
		keys:        common.TrackballKeys,
		keyMode:     camera.ModeIdle,
		prevKeyMode: camera.ModeIdle,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// WithKeys overrides the keys that select rotate, zoom and pan while held.
//
// Parameters:
//   - rotate, zoom, pan: key codes
//
// Returns:
//   - DispatcherOption: functional option to set the keys
func WithKeys(rotate, zoom, pan uint32) DispatcherOption {
	return func(d *Dispatcher) {
		d.keys = [3]uint32{rotate, zoom, pan}
	}
}

// WithEnabled sets the initial enabled state.
//
// Parameters:
//   - enabled: false to drop all events except resizes
//
// Returns:
//   - DispatcherOption: functional option to set the enabled state
func WithEnabled(enabled bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.enabled = enabled
	}
}

// Enabled reports whether events are forwarded to the controller.
func (d *Dispatcher) Enabled() bool {
	return d.enabled
}

// SetEnabled toggles event forwarding. Disabling does not end an active gesture.
//
// Parameters:
//   - enabled: false to drop all events except resizes
func (d *Dispatcher) SetEnabled(enabled bool) {
	d.enabled = enabled
}

// KeyMode returns the gesture selected by a held key, or camera.ModeIdle.
func (d *Dispatcher) KeyMode() camera.Mode {
	return d.keyMode
}

// DispatchAll forwards a batch of events in order.
//
// Parameters:
//   - events: the events to dispatch
func (d *Dispatcher) DispatchAll(events []Event) {
	for _, ev := range events {
		d.Dispatch(ev)
	}
}

// Dispatch forwards a single event to the controller.
//
// Parameters:
//   - ev: the event to dispatch
func (d *Dispatcher) Dispatch(ev Event) {
	if ev.Kind == KindResize {
		d.controller.HandleResize(ev.Width, ev.Height, ev.OffsetLeft, ev.OffsetTop)
		return
	}
	if !d.enabled {
		return
	}

	switch ev.Kind {
	case KindKeyDown:
		d.keyDown(ev.Key)
	case KindKeyUp:
		d.keyUp(ev.Key)
	case KindPointerDown:
		d.pointerDown(ev)
	case KindPointerMove:
		d.pointerMove(ev.X, ev.Y)
	case KindPointerUp:
		d.pointerUp()
	case KindWheel:
		d.controller.Wheel(ev.Delta)
	case KindTouchStart, KindTouchMove, KindTouchEnd:
		d.touch(ev)
	default:
		slog.Debug("input: dropping event of unknown kind", "kind", ev.Kind)
	}
}

func (d *Dispatcher) keyDown(key uint32) {
	if d.keyMode != camera.ModeIdle || d.controller.Mode() != camera.ModeIdle {
		return
	}

	settings := d.controller.Settings()
	mode := camera.ModeIdle
	switch {
	case key == d.keys[0] && !settings.NoRotate:
		mode = camera.ModeRotate
	case key == d.keys[1] && !settings.NoZoom:
		mode = camera.ModeZoom
	case key == d.keys[2] && !settings.NoPan:
		mode = camera.ModePan
	}
	if mode == camera.ModeIdle {
		return
	}

	d.prevKeyMode = d.keyMode
	d.keyMode = mode
}

func (d *Dispatcher) keyUp(key uint32) {
	if key != d.keys[0] && key != d.keys[1] && key != d.keys[2] {
		return
	}
	d.keyMode = d.prevKeyMode
	d.prevKeyMode = camera.ModeIdle
}

func (d *Dispatcher) pointerDown(ev Event) {
	mode := d.keyMode
	if mode == camera.ModeIdle {
		switch ev.Button {
		case ButtonLeft:
			mode = camera.ModeRotate
		case ButtonMiddle:
			mode = camera.ModeZoom
		case ButtonRight:
			mode = camera.ModePan
		default:
			return
		}
	}

	switch mode {
	case camera.ModeRotate:
		d.controller.BeginRotate(ev.X, ev.Y)
	case camera.ModeZoom:
		d.controller.BeginZoom(ev.X, ev.Y)
	case camera.ModePan:
		d.controller.BeginPan(ev.X, ev.Y)
	}
}

func (d *Dispatcher) pointerMove(x, y float32) {
	switch d.controller.Mode() {
	case camera.ModeRotate:
		d.controller.UpdateRotate(x, y)
	case camera.ModeZoom:
		d.controller.UpdateZoom(x, y)
	case camera.ModePan:
		d.controller.UpdatePan(x, y)
	}
}

func (d *Dispatcher) pointerUp() {
	switch d.controller.Mode() {
	case camera.ModeRotate, camera.ModeZoom, camera.ModePan:
		d.controller.End()
	}
}

// touch handles all three touch kinds. A change in finger count ends the running
// touch gesture and begins the one matching the new count.
func (d *Dispatcher) touch(ev Event) {
	count := len(ev.Touches)

	if ev.Kind == KindTouchMove && count == d.touchCount {
		d.updateTouch(ev.Touches)
		return
	}

	d.endTouch()
	d.touchCount = count
	if count > 0 {
		d.beginTouch(ev.Touches)
	}
}

func (d *Dispatcher) beginTouch(touches []mgl32.Vec2) {
	switch len(touches) {
	case 1:
		d.controller.BeginTouchRotate(touches[0][0], touches[0][1])
	case 2:
		d.controller.BeginTouchZoom(touches[0].Sub(touches[1]).Len())
	case 3:
		d.controller.BeginTouchPan(touches[0][0], touches[0][1])
	}
}

func (d *Dispatcher) updateTouch(touches []mgl32.Vec2) {
	switch d.controller.Mode() {
	case camera.ModeTouchRotate:
		d.controller.UpdateTouchRotate(touches[0][0], touches[0][1])
	case camera.ModeTouchZoom:
		d.controller.UpdateTouchZoom(touches[0].Sub(touches[1]).Len())
	case camera.ModeTouchPan:
		d.controller.UpdateTouchPan(touches[0][0], touches[0][1])
	}
}

func (d *Dispatcher) endTouch() {
	switch d.controller.Mode() {
	case camera.ModeTouchRotate, camera.ModeTouchZoom, camera.ModeTouchPan:
		d.controller.End()
	}
}
