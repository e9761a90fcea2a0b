package input

import "github.com/go-gl/mathgl/mgl32"

// Kind identifies the type of an input Event.
type Kind int

const (
	KindPointerDown Kind = iota
	KindPointerMove
	KindPointerUp
	KindWheel
	KindTouchStart
	KindTouchMove
	KindTouchEnd
	KindKeyDown
	KindKeyUp
	KindResize
)

// String returns a readable name for the event kind.
func (k Kind) String() string {
	switch k {
	case KindPointerDown:
		return "pointer-down"
	case KindPointerMove:
		return "pointer-move"
	case KindPointerUp:
		return "pointer-up"
	case KindWheel:
		return "wheel"
	case KindTouchStart:
		return "touch-start"
	case KindTouchMove:
		return "touch-move"
	case KindTouchEnd:
		return "touch-end"
	case KindKeyDown:
		return "key-down"
	case KindKeyUp:
		return "key-up"
	case KindResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

// Event is a single input sample from the host window.
// Only the fields relevant to Kind are populated.
type Event struct {
	Kind Kind

	// Pointer position in pixels (pointer events).
	X, Y float32

	// Button for KindPointerDown.
	Button Button

	// Delta for KindWheel; positive zooms in.
	Delta float32

	// Touches holds the positions of all fingers currently on the surface.
	// For KindTouchEnd it holds the fingers that remain.
	Touches []mgl32.Vec2

	// Key code for keyboard events.
	Key uint32

	// Viewport metrics for KindResize.
	Width, Height         float32
	OffsetLeft, OffsetTop float32
}

// PointerDown creates a pointer press event.
//
// Parameters:
//   - button: the pressed button
//   - x, y: pointer position in pixels
//
// Returns:
//   - Event: the event
func PointerDown(button Button, x, y float32) Event {
	return Event{Kind: KindPointerDown, Button: button, X: x, Y: y}
}

// PointerMove creates a pointer motion event.
//
// Parameters:
//   - x, y: pointer position in pixels
//
// Returns:
//   - Event: the event
func PointerMove(x, y float32) Event {
	return Event{Kind: KindPointerMove, X: x, Y: y}
}

// PointerUp creates a pointer release event.
//
// Parameters:
//   - x, y: pointer position in pixels
//
// Returns:
//   - Event: the event
func PointerUp(x, y float32) Event {
	return Event{Kind: KindPointerUp, X: x, Y: y}
}

// Wheel creates a scroll event.
//
// Parameters:
//   - delta: wheel delta in notches, positive zooms in
//
// Returns:
//   - Event: the event
func Wheel(delta float32) Event {
	return Event{Kind: KindWheel, Delta: delta}
}

// TouchStart creates a touch event for a finger landing.
//
// Parameters:
//   - touches: positions of every finger now on the surface
//
// Returns:
//   - Event: the event
func TouchStart(touches ...mgl32.Vec2) Event {
	return Event{Kind: KindTouchStart, Touches: touches}
}

// TouchMove creates a touch motion event.
//
// Parameters:
//   - touches: positions of every finger on the surface
//
// Returns:
//   - Event: the event
func TouchMove(touches ...mgl32.Vec2) Event {
	return Event{Kind: KindTouchMove, Touches: touches}
}

// TouchEnd creates a touch event for a finger lifting.
//
// Parameters:
//   - remaining: positions of the fingers still on the surface
//
// Returns:
//   - Event: the event
func TouchEnd(remaining ...mgl32.Vec2) Event {
	return Event{Kind: KindTouchEnd, Touches: remaining}
}

// KeyDown creates a key press event.
//
// Parameters:
//   - key: the key code
//
// Returns:
//   - Event: the event
func KeyDown(key uint32) Event {
	return Event{Kind: KindKeyDown, Key: key}
}

// KeyUp creates a key release event.
//
// Parameters:
//   - key: the key code
//
// Returns:
//   - Event: the event
func KeyUp(key uint32) Event {
	return Event{Kind: KindKeyUp, Key: key}
}

// Resize creates a viewport resize event.
//
// Parameters:
//   - width, height: viewport size in pixels
//   - offsetLeft, offsetTop: viewport offset in pixels
//
// Returns:
//   - Event: the event
func Resize(width, height, offsetLeft, offsetTop float32) Event {
	return Event{Kind: KindResize, Width: width, Height: height, OffsetLeft: offsetLeft, OffsetTop: offsetTop}
}
