package camera

import "github.com/go-gl/mathgl/mgl32"

// Mode identifies the gesture a TrackballController is currently sampling.
// Exactly one mode is active at a time; ModeIdle means no gesture.
type Mode int

const (
	ModeIdle Mode = iota - 1
	ModeRotate
	ModeZoom
	ModePan
	ModeTouchRotate
	ModeTouchZoom
	ModeTouchPan
)

// String returns a lowercase name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRotate:
		return "rotate"
	case ModeZoom:
		return "zoom"
	case ModePan:
		return "pan"
	case ModeTouchRotate:
		return "touch-rotate"
	case ModeTouchZoom:
		return "touch-zoom"
	case ModeTouchPan:
		return "touch-pan"
	default:
		return "unknown"
	}
}

// Screen holds the viewport metrics used to normalize pointer coordinates.
type Screen struct {
	Width, Height         float32
	OffsetLeft, OffsetTop float32
}

// Radius is the trackball radius in pixels: the average of the half width and half height.
func (s Screen) Radius() float32 {
	return (s.Width + s.Height) / 4
}

// TrackballController defines the interface for trackball camera control.
// It orbits a camera around a target with rotate, zoom and pan gestures, optionally
// continuing the motion with exponential damping after input stops.
//
// The controller is not safe for concurrent use: gesture calls and Update must come
// from the same goroutine, normally the engine tick loop.
type TrackballController interface {
	// HandleResize records the viewport metrics. Projection results are meaningless until it
	// has been called with positive dimensions.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	//   - offsetLeft, offsetTop: viewport offset in pixels
	HandleResize(width, height, offsetLeft, offsetTop float32)

	// Screen returns the recorded viewport metrics.
	//
	// Returns:
	//   - Screen: the current screen metrics
	Screen() Screen

	// ProjectOnBall maps a pointer position onto the virtual trackball and expresses the
	// result in the camera's frame (up, up × eye, eye).
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	//
	// Returns:
	//   - mgl32.Vec3: world-space point on or within the unit hemisphere
	ProjectOnBall(x, y float32) mgl32.Vec3

	// ScreenPoint normalizes a pointer position by the trackball radius for zoom and pan gestures.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	//
	// Returns:
	//   - mgl32.Vec2: the normalized screen point
	ScreenPoint(x, y float32) mgl32.Vec2

	// BeginRotate starts a rotate gesture at the given pointer position.
	// Ignored unless the controller is idle and rotation is enabled.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	BeginRotate(x, y float32)

	// UpdateRotate feeds a new pointer sample to an active rotate gesture.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	UpdateRotate(x, y float32)

	// BeginZoom starts a drag-zoom gesture at the given pointer position.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	BeginZoom(x, y float32)

	// UpdateZoom feeds a new pointer sample to an active drag-zoom gesture.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	UpdateZoom(x, y float32)

	// BeginPan starts a pan gesture at the given pointer position.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	BeginPan(x, y float32)

	// UpdatePan feeds a new pointer sample to an active pan gesture.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	UpdatePan(x, y float32)

	// BeginTouchRotate starts a one-finger rotate gesture.
	//
	// Parameters:
	//   - x, y: finger position in pixels
	BeginTouchRotate(x, y float32)

	// UpdateTouchRotate feeds a new finger sample to an active one-finger rotate gesture.
	//
	// Parameters:
	//   - x, y: finger position in pixels
	UpdateTouchRotate(x, y float32)

	// BeginTouchZoom starts a two-finger pinch gesture.
	//
	// Parameters:
	//   - distance: distance between the two fingers in pixels
	BeginTouchZoom(distance float32)

	// UpdateTouchZoom feeds a new finger distance to an active pinch gesture.
	//
	// Parameters:
	//   - distance: distance between the two fingers in pixels
	UpdateTouchZoom(distance float32)

	// BeginTouchPan starts a three-finger pan gesture.
	//
	// Parameters:
	//   - x, y: position of the first finger in pixels
	BeginTouchPan(x, y float32)

	// UpdateTouchPan feeds a new finger sample to an active three-finger pan gesture.
	//
	// Parameters:
	//   - x, y: position of the first finger in pixels
	UpdateTouchPan(x, y float32)

	// Wheel applies a scroll-wheel zoom impulse. Positive delta zooms in.
	// Works in any mode; ignored when zoom is disabled.
	//
	// Parameters:
	//   - delta: wheel delta in notches
	Wheel(delta float32)

	// End finishes the active gesture and returns to ModeIdle. Damped motion keeps decaying.
	End()

	// Mode returns the active gesture mode.
	//
	// Returns:
	//   - Mode: the active mode
	Mode() Mode

	// Update recomputes the camera pose from the gesture accumulators. Call once per frame.
	// Without StaticMoving, motion keeps decaying after a gesture ends; once the remaining
	// rotate, zoom or pan delta falls below 1e-6 it is snapped to zero and change
	// notifications stop.
	Update()

	// Reset restores the target, position and up vector captured at construction and
	// notifies listeners.
	Reset()

	// Target returns the orbit target.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target
	Target() mgl32.Vec3

	// SetTarget moves the orbit target. Takes effect on the next Update.
	//
	// Parameters:
	//   - target: world-space target
	SetTarget(target mgl32.Vec3)

	// Settings returns the current configuration snapshot.
	//
	// Returns:
	//   - TrackballSettings: the settings in use
	Settings() TrackballSettings

	// SetSettings replaces the configuration snapshot.
	//
	// Parameters:
	//   - settings: the new settings
	//
	// Returns:
	//   - error: a validation error wrapping ErrInvalidSettings; the old settings stay in use
	SetSettings(settings TrackballSettings) error

	// AddChangeListener registers a callback invoked after every Update that moves the camera
	// and after every Reset.
	//
	// Parameters:
	//   - listener: the callback to register
	AddChangeListener(listener func())
}
