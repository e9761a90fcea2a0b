package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-trackball/engine/camera"
	"github.com/Carmen-Shannon/oxy-trackball/engine/input"
	"github.com/Carmen-Shannon/oxy-trackball/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow attaches a window whose input drives the controller.
// Without a window the engine runs headless and input arrives through PushEvent.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera sets the camera the default controller drives.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithController supplies a pre-built controller. Pair it with WithCamera so Camera()
// reports the camera the controller drives.
//
// Parameters:
//   - controller: the controller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(controller camera.TrackballController) EngineBuilderOption {
	return func(e *engine) {
		e.controller = controller
	}
}

// WithDispatcherOptions configures the input dispatcher.
//
// Parameters:
//   - options: dispatcher options such as input.WithKeys
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDispatcherOptions(options ...input.DispatcherOption) EngineBuilderOption {
	return func(e *engine) {
		e.dispatcherOptions = append(e.dispatcherOptions, options...)
	}
}

// WithAutoRotate creates an AutoRotator for the controller.
//
// Parameters:
//   - startOnLaunch: start the sweep on the first tick after Run
//   - options: rotator options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAutoRotate(startOnLaunch bool, options ...camera.AutoRotatorOption) EngineBuilderOption {
	return func(e *engine) {
		e.autoRotateEnabled = true
		e.autoRotateOnLaunch = startOnLaunch
		e.autoRotateOptions = append(e.autoRotateOptions, options...)
	}
}

// WithKeyBinding runs fn on the tick goroutine whenever key is pressed.
// The key press still reaches the dispatcher afterwards.
//
// Parameters:
//   - key: the key code
//   - fn: the action to run
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithKeyBinding(key uint32, fn func()) EngineBuilderOption {
	return func(e *engine) {
		if e.keyBindings == nil {
			e.keyBindings = make(map[uint32]func())
		}
		e.keyBindings[key] = fn
	}
}
