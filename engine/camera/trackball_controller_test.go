package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-trackball/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

// newTestController builds an 800x600 controller around a camera at (0, 0, 10) facing the origin.
// One warm-up Update is run so the initial notification does not skew listener counts.
func newTestController(t *testing.T, options ...TrackballControllerOption) (Camera, TrackballController, *int) {
	t.Helper()
	cam := NewCamera()
	changes := 0
	opts := append([]TrackballControllerOption{
		WithScreen(800, 600, 0, 0),
		WithChangeListener(func() { changes++ }),
	}, options...)
	tc := NewTrackballController(cam, opts...)
	tc.Update()
	changes = 0
	return cam, tc, &changes
}

func assertVec3InDelta(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], tolerance, "component %d of %v", i, actual)
	}
}

func TestScreenRadius(t *testing.T) {
	assert.Equal(t, float32(350), Screen{Width: 800, Height: 600}.Radius())
}

func TestScreenPoint(t *testing.T) {
	_, tc, _ := newTestController(t)
	tc.HandleResize(800, 600, 10, 20)

	p := tc.ScreenPoint(360, 90)
	assert.InDelta(t, 0.5, p[0], tolerance)
	assert.InDelta(t, 0.1, p[1], tolerance)
}

func TestProjectionWithoutScreenIsZero(t *testing.T) {
	cam := NewCamera()
	tc := NewTrackballController(cam)

	assert.Equal(t, mgl32.Vec3{}, tc.ProjectOnBall(100, 100))
	assert.Equal(t, mgl32.Vec2{}, tc.ScreenPoint(100, 100))
}

func TestProjectOnBallIsUnitLength(t *testing.T) {
	_, tc, _ := newTestController(t)

	for x := float32(-200); x <= 1000; x += 50 {
		for y := float32(-200); y <= 800; y += 50 {
			p := tc.ProjectOnBall(x, y)
			assert.LessOrEqual(t, p.Len(), float32(1+tolerance), "(%v, %v)", x, y)
			assert.InDelta(t, 1, p.Len(), tolerance, "(%v, %v)", x, y)
		}
	}

	assertVec3InDelta(t, mgl32.Vec3{0, 0, 1}, tc.ProjectOnBall(400, 300))
}

func TestStaticRotate(t *testing.T) {
	cam, tc, changes := newTestController(t, WithStaticMoving(true))

	tc.BeginRotate(400, 300)
	require.Equal(t, ModeRotate, tc.Mode())
	tc.UpdateRotate(450, 300)
	tc.Update()

	sin := float32(50.0 / 350.0)
	cos := math32.Sqrt(1 - sin*sin)
	assertVec3InDelta(t, mgl32.Vec3{-10 * sin, 0, 10 * cos}, cam.Position())
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, cam.Up())
	assert.InDelta(t, 10, cam.Position().Len(), tolerance)
	assert.Equal(t, 1, *changes)

	impl := tc.(*trackballControllerImpl)
	assert.Equal(t, impl.rotateStart, impl.rotateEnd)

	// With no new input the pose is a fixed point.
	before := cam.Position()
	tc.Update()
	assert.Equal(t, before, cam.Position())
	assert.Equal(t, 1, *changes)
}

func TestDampedRotateComesToRest(t *testing.T) {
	cam, tc, changes := newTestController(t)
	impl := tc.(*trackballControllerImpl)

	tc.BeginRotate(400, 300)
	tc.UpdateRotate(450, 300)
	tc.End()
	assert.Equal(t, ModeIdle, tc.Mode())

	residual := common.AngleBetween(impl.rotateStart, impl.rotateEnd)
	assert.InDelta(t, math32.Asin(50.0/350.0), residual, tolerance)

	tc.Update()
	first := cam.Position()
	assert.InDelta(t, 10, first.Len(), tolerance)

	// Each Update leaves (1 - dampingFactor) of the remaining angle.
	for i := range 4 {
		next := common.AngleBetween(impl.rotateStart, impl.rotateEnd)
		assert.InDelta(t, 0.8, next/residual, 1e-3, "step %d", i)
		residual = next
		tc.Update()
	}
	assert.NotEqual(t, first, cam.Position())

	for range 500 {
		tc.Update()
	}
	assert.Less(t, common.AngleBetween(impl.rotateStart, impl.rotateEnd), float32(restEpsilon))
	settled := cam.Position()
	count := *changes
	tc.Update()
	assert.Equal(t, settled, cam.Position())
	assert.Equal(t, count, *changes)
	assert.InDelta(t, 10, settled.Len(), 1e-3)
}

func TestDampedZoomDecays(t *testing.T) {
	cam, tc, changes := newTestController(t)
	impl := tc.(*trackballControllerImpl)

	tc.BeginZoom(400, 300)
	tc.UpdateZoom(400, 370)
	tc.End()

	residual := impl.zoomEnd[1] - impl.zoomStart[1]
	assert.InDelta(t, 0.1, residual, tolerance)

	tc.Update()
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 11.2}, cam.Position())

	for i := range 5 {
		next := impl.zoomEnd[1] - impl.zoomStart[1]
		assert.InDelta(t, 0.8, next/residual, 1e-3, "step %d", i)
		residual = next
		previous := cam.Position()[2]
		tc.Update()
		assert.Greater(t, cam.Position()[2], previous, "step %d", i)
	}

	for range 200 {
		tc.Update()
	}
	assert.Equal(t, impl.zoomStart, impl.zoomEnd)
	settled := cam.Position()
	count := *changes
	tc.Update()
	assert.Equal(t, settled, cam.Position())
	assert.Equal(t, count, *changes)
}

func TestStaticZoomDrag(t *testing.T) {
	cam, tc, _ := newTestController(t, WithStaticMoving(true))

	tc.BeginZoom(400, 300)
	tc.UpdateZoom(400, 370)
	tc.Update()

	// delta 0.1, factor 1 + 0.1*1.2
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 11.2}, cam.Position())

	tc.Update()
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 11.2}, cam.Position())
}

func TestZoomClampsToMinDistance(t *testing.T) {
	cam, tc, _ := newTestController(t,
		WithStaticMoving(true),
		WithDistanceBounds(5, 50),
	)

	// dy of -466.67px at radius 350 gives delta -2/3 and factor 0.2.
	tc.BeginZoom(400, 300)
	tc.UpdateZoom(400, 300-466.6667)
	tc.Update()

	assert.InDelta(t, 5, cam.Position().Sub(tc.Target()).Len(), tolerance)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 5}, cam.Position())
}

func TestZoomClampsToMaxDistance(t *testing.T) {
	cam, tc, _ := newTestController(t,
		WithStaticMoving(true),
		WithDistanceBounds(0, 8),
	)

	tc.BeginZoom(400, 300)
	tc.UpdateZoom(400, 370)
	tc.Update()

	assertVec3InDelta(t, mgl32.Vec3{0, 0, 8}, cam.Position())
}

func TestMaxDistanceIsMeasuredFromOrigin(t *testing.T) {
	cam := NewCamera(WithPosition(100, 0, 10), WithLookAt(100, 0, 0))
	tc := NewTrackballController(cam,
		WithTarget(100, 0, 0),
		WithScreen(800, 600, 0, 0),
		WithDistanceBounds(0, 50),
	)

	tc.Update()

	assert.InDelta(t, 50, cam.Position().Len(), tolerance)
}

func TestWheelZoom(t *testing.T) {
	cam, tc, _ := newTestController(t, WithStaticMoving(true))

	tc.Wheel(10)
	tc.Update()

	// zoomStart.y += 0.1, factor 1 - 0.1*1.2
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 8.8}, cam.Position())
	assert.Equal(t, ModeIdle, tc.Mode())
}

func TestWheelIgnoredWhenZoomDisabled(t *testing.T) {
	cam, tc, changes := newTestController(t, WithStaticMoving(true), WithNoZoom(true))

	tc.Wheel(10)
	tc.Update()

	assertVec3InDelta(t, mgl32.Vec3{0, 0, 10}, cam.Position())
	assert.Zero(t, *changes)
}

func TestStaticPan(t *testing.T) {
	cam, tc, _ := newTestController(t, WithStaticMoving(true))

	tc.BeginPan(400, 300)
	tc.UpdatePan(470, 300)
	tc.Update()

	// delta 0.1 * |eye| 10 * pan speed 0.3 along eye x up = -X
	assertVec3InDelta(t, mgl32.Vec3{-0.3, 0, 0}, tc.Target())
	assertVec3InDelta(t, mgl32.Vec3{-0.3, 0, 10}, cam.Position())
	assertVec3InDelta(t, mgl32.Vec3{-0.3, 0, 0}, cam.Target())

	tc.Update()
	assertVec3InDelta(t, mgl32.Vec3{-0.3, 0, 0}, tc.Target())
}

func TestDampedPanDecays(t *testing.T) {
	_, tc, _ := newTestController(t)

	tc.BeginPan(400, 300)
	tc.UpdatePan(470, 300)
	tc.End()

	tc.Update()
	step1 := tc.Target()[0]
	tc.Update()
	step2 := tc.Target()[0] - step1
	tc.Update()
	step3 := tc.Target()[0] - step1 - step2

	assert.InDelta(t, -0.3, step1, tolerance)
	assert.InDelta(t, -0.3*0.8, step2, tolerance)
	assert.InDelta(t, -0.3*0.8*0.8, step3, tolerance)
}

func TestTouchZoom(t *testing.T) {
	cam, tc, _ := newTestController(t)

	tc.BeginTouchZoom(100)
	require.Equal(t, ModeTouchZoom, tc.Mode())
	tc.UpdateTouchZoom(200)
	tc.Update()
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 5}, cam.Position())

	// The pinch ratio is consumed in one frame.
	tc.Update()
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 5}, cam.Position())

	tc.End()
	impl := tc.(*trackballControllerImpl)
	assert.Zero(t, impl.touchZoomDistanceStart)
	assert.Zero(t, impl.touchZoomDistanceEnd)
}

func TestTouchRotateEndDropsMomentum(t *testing.T) {
	cam, tc, changes := newTestController(t)

	tc.BeginTouchRotate(400, 300)
	tc.UpdateTouchRotate(450, 300)
	tc.End()
	tc.Update()

	assertVec3InDelta(t, mgl32.Vec3{0, 0, 10}, cam.Position())
	assert.Zero(t, *changes)
}

func TestTouchPanEndDropsMomentum(t *testing.T) {
	_, tc, _ := newTestController(t)

	tc.BeginTouchPan(400, 300)
	tc.UpdateTouchPan(470, 300)
	tc.End()
	tc.Update()

	assertVec3InDelta(t, mgl32.Vec3{}, tc.Target())
}

func TestModeGating(t *testing.T) {
	_, tc, _ := newTestController(t, WithStaticMoving(true))

	tc.BeginRotate(400, 300)
	tc.BeginPan(400, 300)
	tc.BeginZoom(400, 300)
	tc.BeginTouchZoom(50)
	assert.Equal(t, ModeRotate, tc.Mode())

	tc.UpdatePan(470, 300)
	tc.Update()
	assertVec3InDelta(t, mgl32.Vec3{}, tc.Target())

	tc.End()
	assert.Equal(t, ModeIdle, tc.Mode())

	tc.BeginPan(400, 300)
	assert.Equal(t, ModePan, tc.Mode())
}

func TestDisabledGesturesDoNotStart(t *testing.T) {
	_, tc, _ := newTestController(t, WithNoRotate(true), WithNoZoom(true), WithNoPan(true))

	tc.BeginRotate(1, 1)
	assert.Equal(t, ModeIdle, tc.Mode())
	tc.BeginZoom(1, 1)
	assert.Equal(t, ModeIdle, tc.Mode())
	tc.BeginPan(1, 1)
	assert.Equal(t, ModeIdle, tc.Mode())
	tc.BeginTouchRotate(1, 1)
	tc.BeginTouchZoom(1)
	tc.BeginTouchPan(1, 1)
	assert.Equal(t, ModeIdle, tc.Mode())
}

func TestDisabledCapabilitiesLeavePoseUntouched(t *testing.T) {
	tests := []struct {
		name    string
		gesture func(tc TrackballController)
		disable func(s *TrackballSettings)
	}{
		{
			name: "rotate",
			gesture: func(tc TrackballController) {
				tc.BeginRotate(400, 300)
				tc.UpdateRotate(500, 350)
			},
			disable: func(s *TrackballSettings) { s.NoRotate = true },
		},
		{
			name: "zoom",
			gesture: func(tc TrackballController) {
				tc.BeginZoom(400, 300)
				tc.UpdateZoom(400, 400)
			},
			disable: func(s *TrackballSettings) { s.NoZoom = true },
		},
		{
			name: "pan",
			gesture: func(tc TrackballController) {
				tc.BeginPan(400, 300)
				tc.UpdatePan(500, 300)
			},
			disable: func(s *TrackballSettings) { s.NoPan = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam, tc, changes := newTestController(t, WithStaticMoving(true))
			tt.gesture(tc)

			settings := tc.Settings()
			tt.disable(&settings)
			require.NoError(t, tc.SetSettings(settings))

			tc.Update()
			assert.Equal(t, mgl32.Vec3{0, 0, 10}, cam.Position())
			assert.Equal(t, mgl32.Vec3{}, tc.Target())
			assert.Zero(t, *changes)
		})
	}
}

func TestResetRestoresSnapshot(t *testing.T) {
	cam, tc, changes := newTestController(t, WithTarget(0, 0, 0))
	position0, up0, target0 := cam.Position(), cam.Up(), tc.Target()

	tc.BeginRotate(400, 300)
	tc.UpdateRotate(600, 100)
	tc.End()
	tc.Update()
	tc.BeginPan(400, 300)
	tc.UpdatePan(450, 320)
	tc.End()
	tc.Update()
	tc.Wheel(5)
	tc.Update()
	require.NotEqual(t, position0, cam.Position())

	*changes = 0
	tc.BeginZoom(400, 300)
	tc.Reset()

	assert.Equal(t, ModeIdle, tc.Mode())
	assert.Equal(t, position0, cam.Position())
	assert.Equal(t, up0, cam.Up())
	assert.Equal(t, target0, tc.Target())
	assert.Equal(t, target0, cam.Target())
	assert.Equal(t, 1, *changes)

	// Residual momentum is gone.
	tc.Update()
	assert.Equal(t, position0, cam.Position())
	assert.Equal(t, up0, cam.Up())
	assert.Equal(t, 1, *changes)
}

func TestFirstUpdateNotifies(t *testing.T) {
	cam := NewCamera()
	changes := 0
	tc := NewTrackballController(cam, WithChangeListener(func() { changes++ }))

	tc.Update()
	tc.Update()
	assert.Equal(t, 1, changes)
}

func TestAddChangeListenerIgnoresNil(t *testing.T) {
	_, tc, _ := newTestController(t, WithStaticMoving(true))
	tc.AddChangeListener(nil)

	calls := 0
	tc.AddChangeListener(func() { calls++ })
	tc.Wheel(1)
	assert.NotPanics(t, tc.Update)
	assert.Equal(t, 1, calls)
}

func TestSetSettingsRejectsInvalid(t *testing.T) {
	_, tc, _ := newTestController(t)
	original := tc.Settings()

	bad := original
	bad.DynamicDampingFactor = 0
	err := tc.SetSettings(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, original, tc.Settings())
}

func TestNewTrackballControllerPanics(t *testing.T) {
	assert.Panics(t, func() { NewTrackballController(nil) })
	assert.Panics(t, func() {
		NewTrackballController(NewCamera(), WithDynamicDampingFactor(1.5))
	})
	assert.Panics(t, func() {
		NewTrackballController(NewCamera(), WithDistanceBounds(10, 5))
	})
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *TrackballSettings)
		valid  bool
	}{
		{"defaults", func(s *TrackballSettings) {}, true},
		{"static damping one", func(s *TrackballSettings) { s.DynamicDampingFactor = 1 }, true},
		{"bounded", func(s *TrackballSettings) { s.MinDistance, s.MaxDistance = 1, 1 }, true},
		{"zero rotate speed", func(s *TrackballSettings) { s.RotateSpeed = 0 }, false},
		{"negative pan speed", func(s *TrackballSettings) { s.PanSpeed = -1 }, false},
		{"nan zoom speed", func(s *TrackballSettings) { s.ZoomSpeed = math32.NaN() }, false},
		{"zero damping", func(s *TrackballSettings) { s.DynamicDampingFactor = 0 }, false},
		{"negative min", func(s *TrackballSettings) { s.MinDistance = -1 }, false},
		{"max below min", func(s *TrackballSettings) { s.MinDistance, s.MaxDistance = 5, 4 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultTrackballSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "idle", ModeIdle.String())
	assert.Equal(t, "touch-pan", ModeTouchPan.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
