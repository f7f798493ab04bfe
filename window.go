package petal

import (
	"fmt"
	"io"
	"os"
	"time"
)

// windowShown guards the one-window-per-process rule.
// No atomic; petal is single-threaded.
var windowShown bool

// Window owns the depth-ordered scene list, the input handler tables and
// the per-frame update and render callbacks. Create one per process with
// NewWindow and hand control to it with Show.
type Window struct {
	settings windowSettings
	platform Platform

	objects  []Renderable
	drawList []Renderable // reused snapshot for RenderFrame

	events     handlerRegistry
	input      inputState
	axisValues map[string]float64
	mouseX     float64
	mouseY     float64
	sink       EventSink

	updateFn func()
	renderFn func()

	renderer Renderer // non-nil only inside RenderFrame
	opened   bool
	closed   bool
	rendered bool
	frames   uint64
	fps      fpsCounter

	logOut io.Writer
	stats  frameStats

	screenshotDir   string
	screenshotQueue []string
	injectQueue     []syntheticEvent
	script          *Script

	now func() time.Time
}

// NewWindow creates a window with the given options applied over the
// defaults: 640x480, titled "petal", black background, 60 fps, vsync on.
func NewWindow(opts ...Option) *Window {
	w := &Window{
		settings:      defaultSettings(),
		input:         newInputState(),
		axisValues:    make(map[string]float64),
		logOut:        os.Stderr,
		screenshotDir: ".",
		now:           time.Now,
	}
	w.Set(opts...)
	return w
}

// Set applies options. It may be called at any time; the platform picks up
// changes on its next tick.
func (w *Window) Set(opts ...Option) {
	for _, opt := range opts {
		opt(w)
	}
}

// Title returns the window title.
func (w *Window) Title() string { return w.settings.title }

// Width returns the window width in pixels.
func (w *Window) Width() int { return w.settings.width }

// Height returns the window height in pixels.
func (w *Window) Height() int { return w.settings.height }

// ViewportWidth returns the logical drawing width.
func (w *Window) ViewportWidth() int {
	if w.settings.viewportWidth > 0 {
		return w.settings.viewportWidth
	}
	return w.settings.width
}

// ViewportHeight returns the logical drawing height.
func (w *Window) ViewportHeight() int {
	if w.settings.viewportHeight > 0 {
		return w.settings.viewportHeight
	}
	return w.settings.height
}

// BackgroundColor returns the clear color.
func (w *Window) BackgroundColor() Color { return w.settings.background }

// Frames returns the number of frames rendered so far.
func (w *Window) Frames() uint64 { return w.frames }

// FPS returns the measured frames per second, refreshed twice a second.
func (w *Window) FPS() float64 { return w.fps.value }

// DisplaySize reports the primary display size, or zeros without a platform.
func (w *Window) DisplaySize() (int, int) {
	if w.platform == nil {
		return 0, 0
	}
	return w.platform.DisplaySize()
}

// SetEventSink forwards every dispatched input event to sink. Pass nil to
// stop forwarding.
func (w *Window) SetEventSink(sink EventSink) {
	w.sink = sink
}

// SetScreenshotDir sets the directory scripted screenshots are written to.
func (w *Window) SetScreenshotDir(dir string) {
	w.screenshotDir = dir
}

// --- Scene list ---

// Add inserts obj before the first object with a strictly greater depth,
// or at the end. It returns false if obj is already in the window.
// Panics if obj is nil.
func (w *Window) Add(obj Renderable) bool {
	if obj == nil {
		panic("petal: cannot add nil object to window")
	}
	for _, o := range w.objects {
		if o == obj {
			return false
		}
	}
	z := obj.Z()
	i := len(w.objects)
	for j, o := range w.objects {
		if o.Z() > z {
			i = j
			break
		}
	}
	w.objects = append(w.objects, nil)
	copy(w.objects[i+1:], w.objects[i:])
	w.objects[i] = obj
	obj.base().attach(w, obj)
	debugCheckObjectCount(w)
	return true
}

// AddAll adds every object in order and returns how many were inserted.
func (w *Window) AddAll(objs ...Renderable) int {
	n := 0
	for _, o := range objs {
		if w.Add(o) {
			n++
		}
	}
	return n
}

// Remove takes obj out of the scene list. It returns false if obj was not
// in the window. Panics if obj is nil.
func (w *Window) Remove(obj Renderable) bool {
	if obj == nil {
		panic("petal: cannot remove nil object from window")
	}
	for i, o := range w.objects {
		if o == obj {
			copy(w.objects[i:], w.objects[i+1:])
			w.objects[len(w.objects)-1] = nil
			w.objects = w.objects[:len(w.objects)-1]
			if b := obj.base(); b.window == w {
				b.detach()
			}
			return true
		}
	}
	return false
}

// Clear empties the scene list. The objects themselves are untouched.
func (w *Window) Clear() {
	for i, o := range w.objects {
		if b := o.base(); b.window == w {
			b.detach()
		}
		w.objects[i] = nil
	}
	w.objects = w.objects[:0]
}

// Objects returns a copy of the scene list in draw order.
func (w *Window) Objects() []Renderable {
	return append([]Renderable(nil), w.objects...)
}

// ObjectAt returns the topmost object containing (x, y), or nil.
func (w *Window) ObjectAt(x, y float64) Renderable {
	for i := len(w.objects) - 1; i >= 0; i-- {
		if w.objects[i].Contains(x, y) {
			return w.objects[i]
		}
	}
	return nil
}

// --- Frame loop ---

// Update installs the once-per-frame logic callback.
func (w *Window) Update(fn func()) {
	w.updateFn = fn
}

// Render installs the once-per-frame draw callback. Immediate draw calls
// such as DrawTriangle are only valid inside it.
func (w *Window) Render(fn func()) {
	w.renderFn = fn
}

// Show enters the platform's frame loop and blocks until the window closes.
// Only one window may be shown per process; a second call returns
// ErrWindowShown.
func (w *Window) Show() error {
	if windowShown {
		return ErrWindowShown
	}
	windowShown = true
	w.opened = true
	if w.platform == nil {
		w.platform = NewEbitenPlatform()
	}
	err := w.platform.Run(w)
	w.closed = true
	if err != nil {
		return fmt.Errorf("petal: platform: %w", err)
	}
	return nil
}

// Close requests loop termination. No callbacks fire afterwards.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	if w.platform != nil {
		w.platform.Close()
	}
}

// Opened reports whether Show has been called.
func (w *Window) Opened() bool { return w.opened }

// Closed reports whether the window has stopped.
func (w *Window) Closed() bool { return w.closed }

// BeginTick is called by a Platform before it delivers a tick's input.
// RenderFrame normally clears the transient input sets; when the platform
// skipped rendering since the previous tick they are cleared here instead,
// so a press is seen by exactly one update.
func (w *Window) BeginTick() {
	if !w.rendered {
		w.input.clear()
	}
	w.rendered = false
}

// UpdateFrame runs one logic tick: scripted input, then the update callback.
// Once the window closes no further callbacks run.
func (w *Window) UpdateFrame() {
	if w.closed {
		return
	}
	if w.script != nil {
		w.script.step(w)
		if w.closed {
			return
		}
	}
	w.processInjected()
	// An injected event's handler may have closed the window.
	if w.closed {
		return
	}

	start := w.now()
	if w.updateFn != nil {
		w.updateFn()
	}
	w.stats.update += w.now().Sub(start)
}

// RenderFrame clears r to the background, renders every object in depth
// order, runs the render callback, then clears the per-frame input sets.
func (w *Window) RenderFrame(r Renderer) {
	if w.closed {
		return
	}
	start := w.now()
	r.Clear(w.settings.background)

	w.renderer = r
	w.drawList = append(w.drawList[:0], w.objects...)
	for _, obj := range w.drawList {
		obj.Render(r)
	}
	clear(w.drawList)
	if w.renderFn != nil {
		w.renderFn()
	}
	w.renderer = nil

	w.input.clear()
	w.rendered = true
	w.frames++
	end := w.now()
	w.fps.tick(end)
	w.stats.render += end.Sub(start)
	w.stats.objects = len(w.objects)
	w.diagnosticsTick(end)
}

// RenderReadyCheck returns ErrNotReady unless the window is open and a
// render pass is in progress. Every immediate draw call runs it first.
func (w *Window) RenderReadyCheck() error {
	if !w.opened || w.renderer == nil {
		return ErrNotReady
	}
	return nil
}

func (w *Window) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.logOut, "[petal] "+format+"\n", args...)
}

// --- FPS ---

// fpsCounter samples the frame rate every half second.
type fpsCounter struct {
	value  float64
	count  int
	since  time.Time
	primed bool
}

const fpsSampleInterval = 500 * time.Millisecond

func (c *fpsCounter) tick(now time.Time) {
	if !c.primed {
		c.primed = true
		c.since = now
		return
	}
	c.count++
	elapsed := now.Sub(c.since)
	if elapsed < fpsSampleInterval {
		return
	}
	c.value = float64(c.count) / elapsed.Seconds()
	c.count = 0
	c.since = now
}
