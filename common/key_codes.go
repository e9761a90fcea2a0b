package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA     = 65  // A key (ASCII), default rotate modifier
	KeyS     = 83  // S key (ASCII), default zoom modifier
	KeyD     = 68  // D key (ASCII), default pan modifier
	KeyR     = 82  // R key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)

// TrackballKeys are the default modifier keys selecting the rotate, zoom and pan
// gestures, in that order.
var TrackballKeys = [3]uint32{KeyA, KeyS, KeyD}
