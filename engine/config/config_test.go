package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-trackball/engine/camera"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, math32.IsInf(cfg.Trackball.MaxDistance, 1))
}

func TestParseKeepsUnsetDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
tick_rate = 120.0

[trackball]
rotate_speed = 2.5
static_moving = true
min_distance = 2.0
max_distance = 40.0

[window]
title = ""
width = 800
`))
	require.NoError(t, err)

	assert.Equal(t, float64(120), cfg.TickRate)
	assert.Equal(t, float32(2.5), cfg.Trackball.RotateSpeed)
	assert.Equal(t, float32(1.2), cfg.Trackball.ZoomSpeed)
	assert.True(t, cfg.Trackball.StaticMoving)
	assert.Equal(t, float32(40), cfg.Trackball.MaxDistance)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, defaultTitle, cfg.Window.Title)
	assert.Equal(t, [3]float32{0, 0, 10}, cfg.Camera.Position)
}

func TestParseRejectsBadToml(t *testing.T) {
	_, err := Parse([]byte("tick_rate = = 3"))
	assert.Error(t, err)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		sentinel error
	}{
		{"damping", "[trackball]\ndynamic_damping_factor = 0.0", camera.ErrInvalidSettings},
		{"bounds", "[trackball]\nmin_distance = 10.0\nmax_distance = 5.0", camera.ErrInvalidSettings},
		{"tick rate", "tick_rate = 0.0", ErrInvalidConfig},
		{"fov", "[camera]\nfov = 180.0", ErrInvalidConfig},
		{"clip", "[camera]\nnear = 5.0\nfar = 1.0", ErrInvalidConfig},
		{"degenerate pose", "[camera]\nposition = [0.0, 0.0, 0.0]", ErrInvalidConfig},
		{"zero up", "[camera]\nup = [0.0, 0.0, 0.0]", ErrInvalidConfig},
		{"window", "[window]\nheight = 0", ErrInvalidConfig},
		{"stream", "[stream]\naddress = ':0'\nworkers = 0", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trackball.toml")
	require.NoError(t, os.WriteFile(path, []byte("[trackball]\npan_speed = 0.9\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.9), cfg.Trackball.PanSpeed)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.toml")
}

func TestOptionsBuildMatchingCamera(t *testing.T) {
	cfg, err := Parse([]byte(`
[camera]
position = [0.0, 5.0, 20.0]
target = [0.0, 5.0, 0.0]
fov = 60.0

[trackball]
no_pan = true
`))
	require.NoError(t, err)

	cam := camera.NewCamera(cfg.CameraOptions()...)
	tc := camera.NewTrackballController(cam, cfg.ControllerOptions()...)

	assert.Equal(t, float32(20), cam.Position()[2])
	assert.Equal(t, cam.Target(), tc.Target())
	assert.InDelta(t, math32.Pi/3, cam.Fov(), 1e-5)
	assert.InDelta(t, 1280.0/720.0, cam.Aspect(), 1e-5)
	assert.True(t, tc.Settings().NoPan)
	assert.Equal(t, float32(1280), tc.Screen().Width)
}
