package camera

import "github.com/go-gl/mathgl/mgl32"

// TrackballControllerOption is a functional option for configuring a TrackballController.
type TrackballControllerOption func(*trackballControllerImpl)

// WithTarget sets the orbit target. It becomes part of the reset snapshot.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - TrackballControllerOption: functional option to set the target
func WithTarget(x, y, z float32) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.target = mgl32.Vec3{x, y, z}
	}
}

// WithScreen records the initial viewport metrics, as HandleResize would.
//
// Parameters:
//   - width, height: viewport size in pixels
//   - offsetLeft, offsetTop: viewport offset in pixels
//
// Returns:
//   - TrackballControllerOption: functional option to set the screen metrics
func WithScreen(width, height, offsetLeft, offsetTop float32) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.HandleResize(width, height, offsetLeft, offsetTop)
	}
}

// WithSettings replaces the whole settings snapshot. Options applied afterwards
// still adjust individual fields.
//
// Parameters:
//   - settings: the settings to use
//
// Returns:
//   - TrackballControllerOption: functional option to set the settings
func WithSettings(settings TrackballSettings) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings = settings
	}
}

// WithRotateSpeed sets the rotation speed multiplier.
//
// Parameters:
//   - speed: multiplier for the trackball angle
//
// Returns:
//   - TrackballControllerOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings.RotateSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - TrackballControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings.ZoomSpeed = speed
	}
}

// WithPanSpeed sets the pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - TrackballControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings.PanSpeed = speed
	}
}

// WithStaticMoving selects instantaneous (true) or damped (false) convergence.
//
// Parameters:
//   - static: true to stop motion as soon as input stops
//
// Returns:
//   - TrackballControllerOption: functional option to set static moving
func WithStaticMoving(static bool) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings.StaticMoving = static
	}
}

// WithDynamicDampingFactor sets the per-frame convergence rate used when static moving is off.
//
// Parameters:
//   - factor: fraction of the remaining delta consumed per frame, in (0, 1]
//
// Returns:
//   - TrackballControllerOption: functional option to set the damping factor
func WithDynamicDampingFactor(factor float32) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings.DynamicDampingFactor = factor
	}
}

// WithDistanceBounds sets the minimum camera-to-target distance and the maximum
// camera distance from the world origin.
//
// Parameters:
//   - min: minimum distance (>= 0)
//   - max: maximum distance (>= min)
//
// Returns:
//   - TrackballControllerOption: functional option to set distance bounds
func WithDistanceBounds(min, max float32) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings.MinDistance = min
		tc.settings.MaxDistance = max
	}
}

// WithNoRotate disables rotation.
//
// Parameters:
//   - disabled: true to disable rotate gestures and composition
//
// Returns:
//   - TrackballControllerOption: functional option to toggle rotation
func WithNoRotate(disabled bool) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings.NoRotate = disabled
	}
}

// WithNoZoom disables zoom.
//
// Parameters:
//   - disabled: true to disable zoom gestures and composition
//
// Returns:
//   - TrackballControllerOption: functional option to toggle zoom
func WithNoZoom(disabled bool) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings.NoZoom = disabled
	}
}

// WithNoPan disables panning.
//
// Parameters:
//   - disabled: true to disable pan gestures and composition
//
// Returns:
//   - TrackballControllerOption: functional option to toggle panning
func WithNoPan(disabled bool) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.settings.NoPan = disabled
	}
}

// WithChangeListener registers a change listener at construction time.
//
// Parameters:
//   - listener: callback invoked whenever the camera moves
//
// Returns:
//   - TrackballControllerOption: functional option to add a listener
func WithChangeListener(listener func()) TrackballControllerOption {
	return func(tc *trackballControllerImpl) {
		tc.AddChangeListener(listener)
	}
}
