package petal

type syntheticKind uint8

const (
	syntheticKey syntheticKind = iota
	syntheticMouse
	syntheticController
)

// syntheticEvent is one queued input event. The queue is drained one event
// per frame in UpdateFrame, before the update callback, so scripted input
// looks exactly like platform input to handlers.
type syntheticEvent struct {
	kind       syntheticKind
	key        KeyEvent
	mouse      MouseEvent
	controller ControllerEvent
}

// InjectKey queues a key press followed by its release. Consumes two frames.
func (w *Window) InjectKey(key string) {
	w.injectQueue = append(w.injectQueue,
		syntheticEvent{kind: syntheticKey, key: KeyEvent{Type: KeyPressed, Key: key}},
		syntheticEvent{kind: syntheticKey, key: KeyEvent{Type: KeyReleased, Key: key}},
	)
}

// InjectPress queues a left-button press at (x, y).
func (w *Window) InjectPress(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticEvent{
		kind:  syntheticMouse,
		mouse: MouseEvent{Type: MousePressed, Button: "left", X: x, Y: y},
	})
}

// InjectMove queues a pointer move to (x, y). Deltas are computed from the
// pointer position when the event is consumed.
func (w *Window) InjectMove(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticEvent{
		kind:  syntheticMouse,
		mouse: MouseEvent{Type: MouseMoved, X: x, Y: y},
	})
}

// InjectRelease queues a left-button release at (x, y).
func (w *Window) InjectRelease(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticEvent{
		kind:  syntheticMouse,
		mouse: MouseEvent{Type: MouseReleased, Button: "left", X: x, Y: y},
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (w *Window) InjectClick(x, y float64) {
	w.InjectPress(x, y)
	w.InjectRelease(x, y)
}

// InjectScroll queues a wheel scroll with the given deltas.
func (w *Window) InjectScroll(dx, dy float64) {
	w.injectQueue = append(w.injectQueue, syntheticEvent{
		kind:  syntheticMouse,
		mouse: MouseEvent{Type: MouseScrolled, Direction: "standard", DeltaX: dx, DeltaY: dy},
	})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (w *Window) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	w.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		w.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	w.InjectRelease(toX, toY)
}

// InjectButton queues a controller button press followed by its release.
func (w *Window) InjectButton(which int, button string) {
	w.injectQueue = append(w.injectQueue,
		syntheticEvent{kind: syntheticController, controller: ControllerEvent{
			Which: which, Type: ControllerButtonPressed, Button: button}},
		syntheticEvent{kind: syntheticController, controller: ControllerEvent{
			Which: which, Type: ControllerButtonReleased, Button: button}},
	)
}

// PendingInput reports how many injected events are still queued.
func (w *Window) PendingInput() int {
	return len(w.injectQueue)
}

// processInjected pops one event and routes it through the callback entry
// points.
func (w *Window) processInjected() {
	if len(w.injectQueue) == 0 {
		return
	}
	ev := w.injectQueue[0]
	copy(w.injectQueue, w.injectQueue[1:])
	w.injectQueue = w.injectQueue[:len(w.injectQueue)-1]

	switch ev.kind {
	case syntheticKey:
		w.KeyCallback(ev.key.Type, ev.key.Key)
	case syntheticMouse:
		m := ev.mouse
		if m.Type == MouseMoved {
			m.DeltaX, m.DeltaY = m.X-w.mouseX, m.Y-w.mouseY
		}
		w.MouseCallback(m.Type, m.Button, m.Direction, m.X, m.Y, m.DeltaX, m.DeltaY)
	case syntheticController:
		c := ev.controller
		w.ControllerCallback(c.Which, c.Type, c.Axis, c.Value, c.Button)
	}
}
