package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-trackball/common"
	"github.com/Carmen-Shannon/oxy-trackball/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is wrapped by every validation failure outside the trackball settings,
// which wrap camera.ErrInvalidSettings instead.
var ErrInvalidConfig = errors.New("invalid config")

const defaultTitle = "Trackball Viewer"

// CameraConfig describes the initial camera pose and perspective.
type CameraConfig struct {
	Position [3]float32 `toml:"position"`
	Target   [3]float32 `toml:"target"`
	Up       [3]float32 `toml:"up"`

	// Fov is the vertical field of view in degrees.
	Fov  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// StreamConfig describes the pose broadcast server. An empty Address disables it.
type StreamConfig struct {
	Address string `toml:"address"`
	Workers int    `toml:"workers"`
}

// Config is the host configuration file.
//
// max_distance cannot be written as inf in the file because it does not fit a float32
// field; leave it out to keep the camera unbounded.
type Config struct {
	TickRate  float64                  `toml:"tick_rate"`
	Trackball camera.TrackballSettings `toml:"trackball"`
	Camera    CameraConfig             `toml:"camera"`
	Window    WindowConfig             `toml:"window"`
	Stream    StreamConfig             `toml:"stream"`
}

// Default returns the configuration used for every field a file leaves out.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		TickRate:  60,
		Trackball: camera.DefaultTrackballSettings(),
		Camera: CameraConfig{
			Position: [3]float32{0, 0, 10},
			Up:       [3]float32{0, 1, 0},
			Fov:      45,
			Near:     0.1,
			Far:      1000,
		},
		Window: WindowConfig{
			Title:  defaultTitle,
			Width:  1280,
			Height: 720,
		},
		Stream: StreamConfig{
			Workers: 4,
		},
	}
}

// Parse decodes TOML on top of Default and validates the result.
//
// Parameters:
//   - data: TOML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: decode error, or a validation error wrapping ErrInvalidConfig or camera.ErrInvalidSettings
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Window.Title = common.Coalesce(cfg.Window.Title, defaultTitle)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
//
// Parameters:
//   - path: path to a TOML file
//
// Returns:
//   - Config: the decoded configuration
//   - error: read, decode or validation error, annotated with the path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
//
// Returns:
//   - error: the first problem found, or nil
func (c Config) Validate() error {
	if err := c.Trackball.Validate(); err != nil {
		return fmt.Errorf("trackball: %w", err)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate %v must be positive: %w", c.TickRate, ErrInvalidConfig)
	}

	cam := c.Camera
	if cam.Fov <= 0 || cam.Fov >= 180 {
		return fmt.Errorf("camera fov %v outside (0, 180): %w", cam.Fov, ErrInvalidConfig)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("camera clip planes near %v far %v: %w", cam.Near, cam.Far, ErrInvalidConfig)
	}
	if cam.Position == cam.Target {
		return fmt.Errorf("camera position equals target %v: %w", cam.Target, ErrInvalidConfig)
	}
	if cam.Up == [3]float32{} {
		return fmt.Errorf("camera up vector is zero: %w", ErrInvalidConfig)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalidConfig)
	}
	if c.Stream.Address != "" && c.Stream.Workers <= 0 {
		return fmt.Errorf("stream workers %d must be positive: %w", c.Stream.Workers, ErrInvalidConfig)
	}
	return nil
}

// CameraOptions converts the camera section into camera builder options.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c Config) CameraOptions() []camera.CameraBuilderOption {
	cam := c.Camera
	return []camera.CameraBuilderOption{
		camera.WithPosition(cam.Position[0], cam.Position[1], cam.Position[2]),
		camera.WithUp(cam.Up[0], cam.Up[1], cam.Up[2]),
		camera.WithLookAt(cam.Target[0], cam.Target[1], cam.Target[2]),
		camera.WithFov(mgl32.DegToRad(cam.Fov)),
		camera.WithAspect(float32(c.Window.Width) / float32(c.Window.Height)),
		camera.WithNear(cam.Near),
		camera.WithFar(cam.Far),
	}
}

// ControllerOptions converts the trackball section into controller options.
//
// Returns:
//   - []camera.TrackballControllerOption: options for camera.NewTrackballController
func (c Config) ControllerOptions() []camera.TrackballControllerOption {
	return []camera.TrackballControllerOption{
		camera.WithTarget(c.Camera.Target[0], c.Camera.Target[1], c.Camera.Target[2]),
		camera.WithScreen(float32(c.Window.Width), float32(c.Window.Height), 0, 0),
		camera.WithSettings(c.Trackball),
	}
}
