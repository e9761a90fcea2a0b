package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-trackball/engine/camera"
	"github.com/Carmen-Shannon/oxy-trackball/engine/input"
	"github.com/Carmen-Shannon/oxy-trackball/engine/profiler"
	"github.com/Carmen-Shannon/oxy-trackball/engine/window"
)

// engine implements the Engine interface.
// The window thread only enqueues input; everything that touches the controller
// runs on the tick goroutine.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	camera      camera.Camera
	controller  camera.TrackballController
	dispatcher  *input.Dispatcher
	queue       *input.Queue
	autoRotator *camera.AutoRotator

	dispatcherOptions  []input.DispatcherOption
	autoRotateOptions  []camera.AutoRotatorOption
	autoRotateEnabled  bool
	autoRotateOnLaunch bool

	keyBindings map[uint32]func()

	postMu *sync.Mutex
	posted []func()

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
}

// Engine drives a TrackballController at a fixed tick rate from window input.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the camera driven by the controller.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Controller returns the trackball controller.
	// Only call its methods from the tick goroutine, for example inside Post or the tick callback.
	//
	// Returns:
	//   - camera.TrackballController: the controller
	Controller() camera.TrackballController

	// Dispatcher returns the input dispatcher feeding the controller.
	//
	// Returns:
	//   - *input.Dispatcher: the dispatcher
	Dispatcher() *input.Dispatcher

	// AutoRotator returns the scripted rotator, or nil unless WithAutoRotate was used.
	//
	// Returns:
	//   - *camera.AutoRotator: the rotator
	AutoRotator() *camera.AutoRotator

	// PushEvent enqueues an input event for the next tick. Safe from any goroutine.
	//
	// Parameters:
	//   - ev: the event
	PushEvent(ev input.Event)

	// Post runs fn on the tick goroutine before the next controller update. Safe from any goroutine.
	//
	// Parameters:
	//   - fn: the work to run
	Post(fn func())

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Profiler returns the profiler.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each tick after the controller update.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// Run starts the tick loop and blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Without WithCamera a default camera is created; without WithController a controller
// is built around the camera and sized to the window.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		wg:              sync.WaitGroup{},
		queue:           input.NewQueue(),
		postMu:          &sync.Mutex{},
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.controller == nil {
		if e.camera == nil {
			e.camera = camera.NewCamera()
		}
		var controllerOptions []camera.TrackballControllerOption
		if e.window != nil {
			controllerOptions = append(controllerOptions,
				camera.WithScreen(float32(e.window.Width()), float32(e.window.Height()), 0, 0))
		}
		e.controller = camera.NewTrackballController(e.camera, controllerOptions...)
	}

	e.dispatcher = input.NewDispatcher(e.controller, e.dispatcherOptions...)
	if e.autoRotateEnabled {
		e.autoRotator = camera.NewAutoRotator(e.controller, e.autoRotateOptions...)
	}

	e.controller.AddChangeListener(func() {
		if e.profilingEnabled.Load() {
			e.profiler.RecordChange()
		}
	})

	if e.window != nil {
		e.bindWindow()
	}

	return e
}

// bindWindow forwards window callbacks into the input queue.
func (e *engine) bindWindow() {
	w := e.window
	w.SetMouseDownCallback(func(button int, x, y float32) {
		e.queue.Push(input.PointerDown(input.Button(button), x, y))
	})
	w.SetMouseUpCallback(func(button int, x, y float32) {
		e.queue.Push(input.PointerUp(x, y))
	})
	w.SetMouseMoveCallback(func(x, y float32) {
		e.queue.Push(input.PointerMove(x, y))
	})
	w.SetScrollCallback(func(delta float32) {
		e.queue.Push(input.Wheel(delta))
	})
	w.SetKeyDownCallback(func(keyCode uint32) {
		e.queue.Push(input.KeyDown(keyCode))
	})
	w.SetKeyUpCallback(func(keyCode uint32) {
		e.queue.Push(input.KeyUp(keyCode))
	})
	w.SetResizeCallback(func(width, height int) {
		if width == 0 || height == 0 {
			return
		}
		e.queue.Push(input.Resize(float32(width), float32(height), 0, 0))
		if e.camera != nil {
			e.camera.SetAspect(float32(width) / float32(height))
		}
	})
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() camera.TrackballController {
	return e.controller
}

func (e *engine) Dispatcher() *input.Dispatcher {
	return e.dispatcher
}

func (e *engine) AutoRotator() *camera.AutoRotator {
	return e.autoRotator
}

func (e *engine) PushEvent(ev input.Event) {
	e.queue.Push(ev)
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.postMu.Lock()
	defer e.postMu.Unlock()
	e.posted = append(e.posted, fn)
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Run() {
	e.running.Store(true)
	slog.Info("engine started", "tick_rate", e.engineTickRate, "window", e.window != nil)

	if e.autoRotator != nil && e.autoRotateOnLaunch {
		e.Post(e.autoRotator.Start)
	}

	e.handle()
	if e.window != nil {
		// Quit from another goroutine closes the window on the message loop thread.
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				if err := e.window.Close(); err != nil {
					slog.Warn("failed to close window", "error", err)
				}
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()

	e.running.Store(false)
	slog.Info("engine stopped")
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handle launches the tick and quit goroutines.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("tick goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// step runs one tick: key bindings and queued input, posted work, auto rotation, the controller update,
// the tick callback, then the profiler.
func (e *engine) step(dt float32) {
	events := e.queue.Drain()
	for _, ev := range events {
		if ev.Kind != input.KindKeyDown {
			continue
		}
		if fn, ok := e.keyBindings[ev.Key]; ok {
			fn()
		}
	}
	e.dispatcher.DispatchAll(events)

	e.postMu.Lock()
	posted := e.posted
	e.posted = nil
	e.postMu.Unlock()
	for _, fn := range posted {
		fn()
	}

	if e.autoRotator != nil {
		e.autoRotator.Tick(dt)
	}

	e.controller.Update()

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}

	// Non-blocking send; replace a pending value if the loop has not picked it up yet.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}
