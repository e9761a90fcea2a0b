package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-trackball/common"
	"github.com/Carmen-Shannon/oxy-trackball/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T, options ...camera.TrackballControllerOption) (camera.Camera, camera.TrackballController, *Dispatcher) {
	t.Helper()
	cam := camera.NewCamera()
	opts := append([]camera.TrackballControllerOption{
		camera.WithScreen(800, 600, 0, 0),
		camera.WithStaticMoving(true),
	}, options...)
	tc := camera.NewTrackballController(cam, opts...)
	tc.Update()
	return cam, tc, NewDispatcher(tc)
}

func TestButtonsSelectGestures(t *testing.T) {
	tests := []struct {
		button Button
		mode   camera.Mode
	}{
		{ButtonLeft, camera.ModeRotate},
		{ButtonMiddle, camera.ModeZoom},
		{ButtonRight, camera.ModePan},
		{Button(7), camera.ModeIdle},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			_, tc, d := newTestDispatcher(t)

			d.Dispatch(PointerDown(tt.button, 400, 300))
			assert.Equal(t, tt.mode, tc.Mode())

			d.Dispatch(PointerUp(400, 300))
			assert.Equal(t, camera.ModeIdle, tc.Mode())
		})
	}
}

func TestPointerPan(t *testing.T) {
	cam, tc, d := newTestDispatcher(t)

	d.DispatchAll([]Event{
		PointerDown(ButtonRight, 400, 300),
		PointerMove(470, 300),
	})
	tc.Update()
	d.Dispatch(PointerUp(470, 300))

	assert.InDelta(t, -0.3, tc.Target()[0], 1e-4)
	assert.InDelta(t, -0.3, cam.Position()[0], 1e-4)
	assert.Equal(t, camera.ModeIdle, tc.Mode())
}

func TestHeldKeyOverridesButton(t *testing.T) {
	_, tc, d := newTestDispatcher(t)

	d.Dispatch(KeyDown(common.KeyS))
	assert.Equal(t, camera.ModeZoom, d.KeyMode())

	d.Dispatch(PointerDown(ButtonLeft, 400, 300))
	assert.Equal(t, camera.ModeZoom, tc.Mode())

	d.Dispatch(KeyUp(common.KeyS))
	assert.Equal(t, camera.ModeIdle, d.KeyMode())

	// The running gesture survives the key release.
	assert.Equal(t, camera.ModeZoom, tc.Mode())
	d.Dispatch(PointerUp(400, 300))
	assert.Equal(t, camera.ModeIdle, tc.Mode())
}

func TestKeyRepeatDoesNotLatch(t *testing.T) {
	_, _, d := newTestDispatcher(t)

	d.Dispatch(KeyDown(common.KeyA))
	d.Dispatch(KeyDown(common.KeyA))
	d.Dispatch(KeyDown(common.KeyD))
	assert.Equal(t, camera.ModeRotate, d.KeyMode())

	d.Dispatch(KeyUp(common.KeyA))
	assert.Equal(t, camera.ModeIdle, d.KeyMode())
}

func TestKeyForDisabledCapabilityIgnored(t *testing.T) {
	_, _, d := newTestDispatcher(t, camera.WithNoPan(true))

	d.Dispatch(KeyDown(common.KeyD))
	assert.Equal(t, camera.ModeIdle, d.KeyMode())
}

func TestUnrelatedKeyIgnored(t *testing.T) {
	_, _, d := newTestDispatcher(t)

	d.Dispatch(KeyDown(common.KeyA))
	d.Dispatch(KeyUp(common.KeyR))
	assert.Equal(t, camera.ModeRotate, d.KeyMode())
}

func TestCustomKeys(t *testing.T) {
	tc := camera.NewTrackballController(camera.NewCamera(), camera.WithScreen(800, 600, 0, 0))
	d := NewDispatcher(tc, WithKeys(common.KeyR, common.KeySpace, common.KeyEsc))

	d.Dispatch(KeyDown(common.KeySpace))
	assert.Equal(t, camera.ModeZoom, d.KeyMode())
}

func TestWheelZooms(t *testing.T) {
	cam, tc, d := newTestDispatcher(t)

	d.Dispatch(Wheel(10))
	tc.Update()

	assert.InDelta(t, 8.8, cam.Position()[2], 1e-4)
}

func TestDisabledDispatcherOnlyResizes(t *testing.T) {
	_, tc, d := newTestDispatcher(t)
	d.SetEnabled(false)
	require.False(t, d.Enabled())

	d.Dispatch(PointerDown(ButtonLeft, 400, 300))
	d.Dispatch(KeyDown(common.KeyA))
	d.Dispatch(TouchStart(mgl32.Vec2{1, 1}))
	assert.Equal(t, camera.ModeIdle, tc.Mode())
	assert.Equal(t, camera.ModeIdle, d.KeyMode())

	d.Dispatch(Resize(1024, 768, 5, 6))
	assert.Equal(t, camera.Screen{Width: 1024, Height: 768, OffsetLeft: 5, OffsetTop: 6}, tc.Screen())

	d.SetEnabled(true)
	d.Dispatch(PointerDown(ButtonLeft, 400, 300))
	assert.Equal(t, camera.ModeRotate, tc.Mode())
}

func TestWithEnabledOption(t *testing.T) {
	tc := camera.NewTrackballController(camera.NewCamera())
	assert.False(t, NewDispatcher(tc, WithEnabled(false)).Enabled())
}

func TestTouchFingerCountSelectsGesture(t *testing.T) {
	cam, tc, d := newTestDispatcher(t)

	d.Dispatch(TouchStart(mgl32.Vec2{400, 300}))
	assert.Equal(t, camera.ModeTouchRotate, tc.Mode())

	d.Dispatch(TouchStart(mgl32.Vec2{400, 300}, mgl32.Vec2{500, 300}))
	assert.Equal(t, camera.ModeTouchZoom, tc.Mode())

	// Spreading the fingers from 100px to 200px halves the distance.
	d.Dispatch(TouchMove(mgl32.Vec2{400, 300}, mgl32.Vec2{600, 300}))
	tc.Update()
	assert.InDelta(t, 5, cam.Position().Len(), 1e-4)

	d.Dispatch(TouchStart(mgl32.Vec2{400, 300}, mgl32.Vec2{500, 300}, mgl32.Vec2{450, 350}))
	assert.Equal(t, camera.ModeTouchPan, tc.Mode())

	d.Dispatch(TouchEnd())
	assert.Equal(t, camera.ModeIdle, tc.Mode())
}

func TestTouchEndWithRemainingFingerRestartsRotate(t *testing.T) {
	_, tc, d := newTestDispatcher(t)

	d.Dispatch(TouchStart(mgl32.Vec2{400, 300}, mgl32.Vec2{500, 300}))
	require.Equal(t, camera.ModeTouchZoom, tc.Mode())

	d.Dispatch(TouchEnd(mgl32.Vec2{400, 300}))
	assert.Equal(t, camera.ModeTouchRotate, tc.Mode())
}

func TestTouchMoveWithNewFingerCount(t *testing.T) {
	_, tc, d := newTestDispatcher(t)

	d.Dispatch(TouchStart(mgl32.Vec2{400, 300}))
	d.Dispatch(TouchMove(mgl32.Vec2{400, 300}, mgl32.Vec2{420, 300}, mgl32.Vec2{440, 300}))
	assert.Equal(t, camera.ModeTouchPan, tc.Mode())
}

func TestTouchRotate(t *testing.T) {
	cam, tc, d := newTestDispatcher(t)

	d.Dispatch(TouchStart(mgl32.Vec2{400, 300}))
	d.Dispatch(TouchMove(mgl32.Vec2{450, 300}))
	tc.Update()

	assert.Less(t, cam.Position()[0], float32(0))
	assert.InDelta(t, 10, cam.Position().Len(), 1e-4)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "pointer-down", KindPointerDown.String())
	assert.Equal(t, "resize", KindResize.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
