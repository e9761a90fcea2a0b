package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-trackball/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// restEpsilon is the residual gesture delta (radians for rotation, normalized screen units
// for zoom and pan) below which damped motion snaps to rest. Float32 rounding otherwise
// leaves a residue that keeps nudging the camera forever.
const restEpsilon = 1e-6

// wheelZoomScale converts one wheel notch into a zoom accumulator offset.
const wheelZoomScale = 0.01

// trackballControllerImpl is the single implementation of TrackballController.
// All accumulators are owned by the instance; nothing is shared between controllers.
type trackballControllerImpl struct {
	rig      Rig
	settings TrackballSettings
	screen   Screen

	target       mgl32.Vec3
	eye          mgl32.Vec3
	lastPosition mgl32.Vec3

	mode Mode

	// Trackball projections of the pointer-down and current pointer samples.
	rotateStart mgl32.Vec3
	rotateEnd   mgl32.Vec3

	// Normalized screen points; only the vertical component drives the zoom factor.
	zoomStart mgl32.Vec2
	zoomEnd   mgl32.Vec2

	// Finger distances for two-finger pinch zoom.
	touchZoomDistanceStart float32
	touchZoomDistanceEnd   float32

	panStart mgl32.Vec2
	panEnd   mgl32.Vec2

	// Reset snapshot.
	target0   mgl32.Vec3
	position0 mgl32.Vec3
	up0       mgl32.Vec3

	listeners []func()
}

// Compile-time interface compliance check
var _ TrackballController = &trackballControllerImpl{}

// NewTrackballController creates a trackball controller driving the given rig.
// The rig's position and up vector, together with the configured target, form the reset snapshot.
// Panics if rig is nil or the configured settings are invalid.
//
// Parameters:
//   - rig: the camera to drive (must not be nil)
//   - options: functional options to configure the controller
//
// Returns:
//   - TrackballController: the newly created controller
func NewTrackballController(rig Rig, options ...TrackballControllerOption) TrackballController {
	if rig == nil {
		panic("camera: NewTrackballController requires a non-nil Rig")
	}

	tc := &trackballControllerImpl{
		rig:      rig,
		settings: DefaultTrackballSettings(),
		mode:     ModeIdle,
	}

	for _, option := range options {
		option(tc)
	}

	if err := tc.settings.Validate(); err != nil {
		panic(fmt.Sprintf("camera: NewTrackballController: %v", err))
	}

	tc.target0 = tc.target
	tc.position0 = rig.Position()
	tc.up0 = rig.Up()
	tc.eye = tc.position0.Sub(tc.target)
	return tc
}

func (tc *trackballControllerImpl) HandleResize(width, height, offsetLeft, offsetTop float32) {
	tc.screen = Screen{
		Width:      width,
		Height:     height,
		OffsetLeft: offsetLeft,
		OffsetTop:  offsetTop,
	}
}

func (tc *trackballControllerImpl) Screen() Screen {
	return tc.screen
}

func (tc *trackballControllerImpl) ScreenPoint(x, y float32) mgl32.Vec2 {
	radius := tc.screen.Radius()
	if radius <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		(x - tc.screen.OffsetLeft) / radius * 0.5,
		(y - tc.screen.OffsetTop) / radius * 0.5,
	}
}

func (tc *trackballControllerImpl) ProjectOnBall(x, y float32) mgl32.Vec3 {
	radius := tc.screen.Radius()
	if radius <= 0 {
		return mgl32.Vec3{}
	}

	// Screen y grows downward, ball y grows upward.
	ball := mgl32.Vec3{
		(x - tc.screen.Width*0.5 - tc.screen.OffsetLeft) / radius,
		(tc.screen.Height*0.5 + tc.screen.OffsetTop - y) / radius,
		0,
	}

	length := ball.Len()
	if length > 1 {
		ball = ball.Mul(1 / length)
	} else {
		ball[2] = math32.Sqrt(1 - length*length)
	}

	eye := tc.rig.Position().Sub(tc.target)
	up := tc.rig.Up()

	projection := common.SetLength(up, ball[1])
	projection = projection.Add(common.SetLength(up.Cross(eye), ball[0]))
	projection = projection.Add(common.SetLength(eye, ball[2]))
	return projection
}

// --- gesture sampling ---

func (tc *trackballControllerImpl) BeginRotate(x, y float32) {
	tc.beginRotate(ModeRotate, x, y)
}

func (tc *trackballControllerImpl) UpdateRotate(x, y float32) {
	if tc.mode != ModeRotate {
		return
	}
	tc.rotateEnd = tc.ProjectOnBall(x, y)
}

func (tc *trackballControllerImpl) BeginZoom(x, y float32) {
	if tc.mode != ModeIdle || tc.settings.NoZoom {
		return
	}
	tc.mode = ModeZoom
	tc.zoomStart = tc.ScreenPoint(x, y)
	tc.zoomEnd = tc.zoomStart
}

func (tc *trackballControllerImpl) UpdateZoom(x, y float32) {
	if tc.mode != ModeZoom {
		return
	}
	tc.zoomEnd = tc.ScreenPoint(x, y)
}

func (tc *trackballControllerImpl) BeginPan(x, y float32) {
	tc.beginPan(ModePan, x, y)
}

func (tc *trackballControllerImpl) UpdatePan(x, y float32) {
	if tc.mode != ModePan {
		return
	}
	tc.panEnd = tc.ScreenPoint(x, y)
}

func (tc *trackballControllerImpl) BeginTouchRotate(x, y float32) {
	tc.beginRotate(ModeTouchRotate, x, y)
}

func (tc *trackballControllerImpl) UpdateTouchRotate(x, y float32) {
	if tc.mode != ModeTouchRotate {
		return
	}
	tc.rotateEnd = tc.ProjectOnBall(x, y)
}

func (tc *trackballControllerImpl) BeginTouchZoom(distance float32) {
	if tc.mode != ModeIdle || tc.settings.NoZoom {
		return
	}
	tc.mode = ModeTouchZoom
	tc.touchZoomDistanceStart = distance
	tc.touchZoomDistanceEnd = distance
}

func (tc *trackballControllerImpl) UpdateTouchZoom(distance float32) {
	if tc.mode != ModeTouchZoom {
		return
	}
	tc.touchZoomDistanceEnd = distance
}

func (tc *trackballControllerImpl) BeginTouchPan(x, y float32) {
	tc.beginPan(ModeTouchPan, x, y)
}

func (tc *trackballControllerImpl) UpdateTouchPan(x, y float32) {
	if tc.mode != ModeTouchPan {
		return
	}
	tc.panEnd = tc.ScreenPoint(x, y)
}

func (tc *trackballControllerImpl) Wheel(delta float32) {
	if tc.settings.NoZoom {
		return
	}
	tc.zoomStart[1] += delta * wheelZoomScale
}

func (tc *trackballControllerImpl) End() {
	switch tc.mode {
	case ModeTouchRotate:
		tc.rotateStart = tc.rotateEnd
	case ModeTouchZoom:
		tc.touchZoomDistanceStart = 0
		tc.touchZoomDistanceEnd = 0
	case ModeTouchPan:
		tc.panStart = tc.panEnd
	}
	tc.mode = ModeIdle
}

func (tc *trackballControllerImpl) Mode() Mode {
	return tc.mode
}

// beginRotate seeds both rotate accumulators from one sample so the first Update sees no delta.
func (tc *trackballControllerImpl) beginRotate(mode Mode, x, y float32) {
	if tc.mode != ModeIdle || tc.settings.NoRotate {
		return
	}
	tc.mode = mode
	tc.rotateStart = tc.ProjectOnBall(x, y)
	tc.rotateEnd = tc.rotateStart
}

func (tc *trackballControllerImpl) beginPan(mode Mode, x, y float32) {
	if tc.mode != ModeIdle || tc.settings.NoPan {
		return
	}
	tc.mode = mode
	tc.panStart = tc.ScreenPoint(x, y)
	tc.panEnd = tc.panStart
}

// --- per-frame update ---

func (tc *trackballControllerImpl) Update() {
	s := tc.settings

	tc.eye = tc.rig.Position().Sub(tc.target)

	if !s.NoRotate {
		tc.rotateCamera(s)
	}
	if !s.NoZoom {
		tc.zoomCamera(s)
	}
	if !s.NoPan {
		tc.panCamera(s)
	}

	position := tc.target.Add(tc.eye)
	position = tc.checkDistances(s, position)

	tc.rig.SetPosition(position)
	tc.rig.LookAt(tc.target)

	if common.DistanceSquared(tc.lastPosition, position) > 0 {
		tc.notify()
		tc.lastPosition = position
	}
}

// rotateCamera turns the eye vector and up vector by the angle between the rotate
// accumulators, then advances rotateStart toward rotateEnd.
func (tc *trackballControllerImpl) rotateCamera(s TrackballSettings) {
	angle := common.AngleBetween(tc.rotateStart, tc.rotateEnd)
	if angle == 0 {
		return
	}
	if angle < restEpsilon && !s.StaticMoving {
		tc.rotateStart = tc.rotateEnd
		return
	}

	// Antiparallel or degenerate samples have no defined axis.
	axis := common.Normalize(tc.rotateStart.Cross(tc.rotateEnd))
	if axis == (mgl32.Vec3{}) {
		return
	}

	angle *= s.RotateSpeed
	quaternion := mgl32.QuatRotate(-angle, axis)
	tc.eye = quaternion.Rotate(tc.eye)
	tc.rig.SetUp(quaternion.Rotate(tc.rig.Up()))

	tc.rotateEnd = quaternion.Rotate(tc.rotateEnd)

	if s.StaticMoving {
		tc.rotateStart = tc.rotateEnd
	} else {
		tc.rotateStart = common.RotateAxisAngle(tc.rotateStart, axis, angle*(s.DynamicDampingFactor-1))
	}
}

// zoomCamera scales the eye vector by the pinch ratio or by the vertical zoom delta.
func (tc *trackballControllerImpl) zoomCamera(s TrackballSettings) {
	if tc.mode == ModeTouchZoom {
		if tc.touchZoomDistanceStart <= 0 || tc.touchZoomDistanceEnd <= 0 {
			return
		}
		factor := tc.touchZoomDistanceStart / tc.touchZoomDistanceEnd
		tc.touchZoomDistanceStart = tc.touchZoomDistanceEnd
		tc.eye = tc.eye.Mul(factor)
		return
	}

	delta := tc.zoomEnd[1] - tc.zoomStart[1]
	if !s.StaticMoving && delta != 0 && math32.Abs(delta) < restEpsilon {
		tc.zoomStart = tc.zoomEnd
		return
	}

	factor := 1 + delta*s.ZoomSpeed
	if factor == 1 || factor <= 0 {
		return
	}

	tc.eye = tc.eye.Mul(factor)

	if s.StaticMoving {
		tc.zoomStart = tc.zoomEnd
	} else {
		tc.zoomStart[1] += delta * s.DynamicDampingFactor
	}
}

// panCamera translates the target along the camera's right and up axes. The position
// follows because Update rebuilds it as target + eye.
func (tc *trackballControllerImpl) panCamera(s TrackballSettings) {
	change := tc.panEnd.Sub(tc.panStart)
	if change.Dot(change) == 0 {
		return
	}
	if !s.StaticMoving && change.Len() < restEpsilon {
		tc.panStart = tc.panEnd
		return
	}

	change = change.Mul(tc.eye.Len() * s.PanSpeed)
	up := tc.rig.Up()
	pan := common.SetLength(tc.eye.Cross(up), change[0])
	pan = pan.Add(common.SetLength(up, change[1]))

	tc.target = tc.target.Add(pan)

	if s.StaticMoving {
		tc.panStart = tc.panEnd
	} else {
		tc.panStart = tc.panStart.Add(tc.panEnd.Sub(tc.panStart).Mul(s.DynamicDampingFactor))
	}
}

// checkDistances applies the distance bounds to the composed position.
// The max bound is measured from the world origin and the min bound from the target;
// the asymmetry is intentional and kept for compatibility.
func (tc *trackballControllerImpl) checkDistances(s TrackballSettings, position mgl32.Vec3) mgl32.Vec3 {
	if s.NoZoom && s.NoPan {
		return position
	}

	if common.LengthSquared(position) > s.MaxDistance*s.MaxDistance {
		position = common.SetLength(position, s.MaxDistance)
	}

	if common.LengthSquared(tc.eye) < s.MinDistance*s.MinDistance {
		tc.eye = common.SetLength(tc.eye, s.MinDistance)
		position = tc.target.Add(tc.eye)
	}
	return position
}

func (tc *trackballControllerImpl) Reset() {
	tc.mode = ModeIdle

	tc.target = tc.target0
	tc.rig.SetPosition(tc.position0)
	tc.rig.SetUp(tc.up0)

	tc.eye = tc.position0.Sub(tc.target0)

	// Drop residual damped motion so the restored pose stays put.
	tc.rotateStart = tc.rotateEnd
	tc.zoomStart = tc.zoomEnd
	tc.panStart = tc.panEnd
	tc.touchZoomDistanceStart = tc.touchZoomDistanceEnd

	tc.rig.LookAt(tc.target)

	tc.notify()
	tc.lastPosition = tc.position0
}

// --- configuration and observers ---

func (tc *trackballControllerImpl) Target() mgl32.Vec3 {
	return tc.target
}

func (tc *trackballControllerImpl) SetTarget(target mgl32.Vec3) {
	tc.target = target
}

func (tc *trackballControllerImpl) Settings() TrackballSettings {
	return tc.settings
}

func (tc *trackballControllerImpl) SetSettings(settings TrackballSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	tc.settings = settings
	return nil
}

func (tc *trackballControllerImpl) AddChangeListener(listener func()) {
	if listener == nil {
		return
	}
	tc.listeners = append(tc.listeners, listener)
}

func (tc *trackballControllerImpl) notify() {
	for _, listener := range tc.listeners {
		listener()
	}
}
