package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidSettings is wrapped by every TrackballSettings validation failure.
var ErrInvalidSettings = errors.New("invalid trackball settings")

// TrackballSettings is the configuration snapshot a TrackballController reads once per Update.
// Replacing it between frames via SetSettings is the only way to reconfigure a running controller.
type TrackballSettings struct {
	// RotateSpeed scales the angle derived from two trackball projections.
	RotateSpeed float32 `toml:"rotate_speed"`

	// ZoomSpeed scales the vertical screen delta of a zoom gesture into a distance factor.
	ZoomSpeed float32 `toml:"zoom_speed"`

	// PanSpeed scales the screen delta of a pan gesture, relative to the camera-to-target distance.
	PanSpeed float32 `toml:"pan_speed"`

	// NoRotate, NoZoom and NoPan disable the matching composition step and gesture.
	NoRotate bool `toml:"no_rotate"`
	NoZoom   bool `toml:"no_zoom"`
	NoPan    bool `toml:"no_pan"`

	// StaticMoving snaps gesture accumulators together every frame instead of damping them.
	StaticMoving bool `toml:"static_moving"`

	// DynamicDampingFactor is the fraction of the remaining gesture delta consumed per frame
	// when StaticMoving is false. Must lie in (0, 1].
	DynamicDampingFactor float32 `toml:"dynamic_damping_factor"`

	// MinDistance is the smallest allowed camera-to-target distance.
	MinDistance float32 `toml:"min_distance"`

	// MaxDistance bounds the camera's distance from the world origin. +Inf means unbounded.
	MaxDistance float32 `toml:"max_distance"`
}

// DefaultTrackballSettings returns the stock controller configuration:
// speeds 1.0/1.2/0.3, every capability enabled, damped motion with factor 0.2 and no distance bounds.
//
// Returns:
//   - TrackballSettings: the default settings
func DefaultTrackballSettings() TrackballSettings {
	return TrackballSettings{
		RotateSpeed:          1.0,
		ZoomSpeed:            1.2,
		PanSpeed:             0.3,
		DynamicDampingFactor: 0.2,
		MinDistance:          0,
		MaxDistance:          math32.Inf(1),
	}
}

// Validate reports whether the settings can drive a controller.
//
// Returns:
//   - error: an error wrapping ErrInvalidSettings, or nil
func (s TrackballSettings) Validate() error {
	for _, f := range []struct {
		name  string
		value float32
	}{
		{"rotate speed", s.RotateSpeed},
		{"zoom speed", s.ZoomSpeed},
		{"pan speed", s.PanSpeed},
		{"dynamic damping factor", s.DynamicDampingFactor},
		{"min distance", s.MinDistance},
		{"max distance", s.MaxDistance},
	} {
		if math32.IsNaN(f.value) {
			return fmt.Errorf("%s is NaN: %w", f.name, ErrInvalidSettings)
		}
	}

	if s.RotateSpeed <= 0 || s.ZoomSpeed <= 0 || s.PanSpeed <= 0 {
		return fmt.Errorf("speeds must be positive (rotate %v, zoom %v, pan %v): %w",
			s.RotateSpeed, s.ZoomSpeed, s.PanSpeed, ErrInvalidSettings)
	}
	if s.DynamicDampingFactor <= 0 || s.DynamicDampingFactor > 1 {
		return fmt.Errorf("dynamic damping factor %v outside (0, 1]: %w", s.DynamicDampingFactor, ErrInvalidSettings)
	}
	if s.MinDistance < 0 {
		return fmt.Errorf("min distance %v is negative: %w", s.MinDistance, ErrInvalidSettings)
	}
	if s.MaxDistance < s.MinDistance {
		return fmt.Errorf("max distance %v below min distance %v: %w", s.MaxDistance, s.MinDistance, ErrInvalidSettings)
	}
	return nil
}
