package camera

// AutoRotator drives a TrackballController with synthetic horizontal rotate samples,
// sweeping the pointer back and forth between an origin and the right edge of the screen.
// It owns no timer: the host calls Tick from the same loop that calls Update.
type AutoRotator struct {
	controller TrackballController

	originX float32
	y       float32
	step    float32

	// interval is the time between synthetic samples in seconds.
	interval float32

	x       float32
	move    float32
	elapsed float32
	running bool
}

// AutoRotatorOption is a functional option for configuring an AutoRotator.
type AutoRotatorOption func(*AutoRotator)

// NewAutoRotator creates an idle AutoRotator for the controller.
// Defaults: origin (400, 500), 30px per sample, one sample every 50ms.
//
// Parameters:
//   - controller: the controller to feed
//   - options: functional options to configure the rotator
//
// Returns:
//   - *AutoRotator: the rotator (not started)
func NewAutoRotator(controller TrackballController, options ...AutoRotatorOption) *AutoRotator {
	ar := &AutoRotator{
		controller: controller,
		originX:    400,
		y:          500,
		step:       30,
		interval:   0.05,
	}
	for _, option := range options {
		option(ar)
	}
	return ar
}

// WithAutoRotateOrigin sets the pointer position the sweep starts from.
//
// Parameters:
//   - x, y: pointer position in pixels
//
// Returns:
//   - AutoRotatorOption: functional option to set the origin
func WithAutoRotateOrigin(x, y float32) AutoRotatorOption {
	return func(ar *AutoRotator) {
		ar.originX = x
		ar.y = y
	}
}

// WithAutoRotateStep sets the horizontal distance covered per sample.
//
// Parameters:
//   - pixels: distance per sample
//
// Returns:
//   - AutoRotatorOption: functional option to set the step
func WithAutoRotateStep(pixels float32) AutoRotatorOption {
	return func(ar *AutoRotator) {
		ar.step = pixels
	}
}

// WithAutoRotateInterval sets the time between samples.
//
// Parameters:
//   - seconds: sample interval in seconds (must be > 0)
//
// Returns:
//   - AutoRotatorOption: functional option to set the interval
func WithAutoRotateInterval(seconds float32) AutoRotatorOption {
	return func(ar *AutoRotator) {
		ar.interval = seconds
	}
}

// Start begins the rotate gesture at the origin. It does nothing if already running
// or if the controller refuses the gesture (another gesture active, rotation disabled).
func (ar *AutoRotator) Start() {
	if ar.running {
		return
	}
	ar.x = ar.originX
	ar.move = ar.step
	ar.elapsed = 0
	ar.controller.BeginRotate(ar.x, ar.y)
	ar.running = ar.controller.Mode() == ModeRotate
}

// Tick advances the sweep by the elapsed frame time, emitting one sample per interval.
//
// Parameters:
//   - deltaTime: seconds since the previous tick
func (ar *AutoRotator) Tick(deltaTime float32) {
	if !ar.running || ar.interval <= 0 {
		return
	}
	ar.elapsed += deltaTime
	for ar.elapsed >= ar.interval {
		ar.elapsed -= ar.interval
		ar.advance()
	}
}

// Stop ends the gesture. Damped motion keeps decaying afterwards.
func (ar *AutoRotator) Stop() {
	if !ar.running {
		return
	}
	ar.running = false
	ar.controller.End()
}

// Running reports whether the sweep is active.
func (ar *AutoRotator) Running() bool {
	return ar.running
}

func (ar *AutoRotator) advance() {
	if ar.x >= ar.controller.Screen().Width {
		ar.move = -ar.step
	}
	if ar.x <= ar.originX {
		ar.move = ar.step
	}
	ar.x += ar.move
	ar.controller.UpdateRotate(ar.x, ar.y)
}
