package petal

import (
	"fmt"
	"slices"
	"strings"
)

// EventCategory identifies a table of input handlers.
type EventCategory uint8

const (
	EventKey                  EventCategory = iota // every key event
	EventKeyDown                                   // key pressed, fired once
	EventKeyHeld                                   // key held, fired every frame
	EventKeyUp                                     // key released, fired once
	EventMouse                                     // every mouse event
	EventMouseDown                                 // button pressed
	EventMouseUp                                   // button released
	EventMouseScroll                               // wheel or trackpad scroll
	EventMouseMove                                 // pointer motion
	EventController                                // every controller event
	EventControllerAxis                            // analog axis motion
	EventControllerButtonDown                      // controller button pressed
	EventControllerButtonUp                        // controller button released

	eventCategoryCount
)

var eventCategoryNames = [eventCategoryCount]string{
	"key", "key_down", "key_held", "key_up",
	"mouse", "mouse_down", "mouse_up", "mouse_scroll", "mouse_move",
	"controller", "controller_axis", "controller_button_down", "controller_button_up",
}

func (c EventCategory) String() string {
	if c < eventCategoryCount {
		return eventCategoryNames[c]
	}
	return fmt.Sprintf("EventCategory(%d)", uint8(c))
}

// ParseEventCategory maps a name such as "key_down" or "mouse_scroll" to
// its category.
func ParseEventCategory(name string) (EventCategory, error) {
	name = strings.ToLower(name)
	for i, n := range eventCategoryNames {
		if n == name {
			return EventCategory(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

type eventFamily uint8

const (
	familyNone eventFamily = iota
	familyKey
	familyMouse
	familyController
)

func (c EventCategory) family() eventFamily {
	switch {
	case c <= EventKeyUp:
		return familyKey
	case c <= EventMouseMove:
		return familyMouse
	case c < eventCategoryCount:
		return familyController
	}
	return familyNone
}

// KeyEventType is the transition carried by a KeyEvent.
type KeyEventType uint8

const (
	KeyPressed  KeyEventType = iota // down
	KeyHeld                         // held
	KeyReleased                     // up
)

// KeyEvent is delivered to key handlers. Key is lowercase.
type KeyEvent struct {
	Type KeyEventType
	Key  string
}

// MouseEventType is the transition carried by a MouseEvent.
type MouseEventType uint8

const (
	MousePressed  MouseEventType = iota // down
	MouseReleased                       // up
	MouseScrolled                       // scroll
	MouseMoved                          // move
)

// MouseEvent is delivered to mouse handlers. Handlers registered for a
// specific category only see the fields relevant to it: down/up carry
// Button and X/Y, scroll carries Direction and deltas, move carries X/Y and
// deltas.
type MouseEvent struct {
	Type           MouseEventType
	Button         string // "left", "middle", "right", "x1", "x2"
	Direction      string // "standard" or "inverted"
	X, Y           float64
	DeltaX, DeltaY float64
}

// ControllerEventType is the transition carried by a ControllerEvent.
type ControllerEventType uint8

const (
	ControllerAxisMoved      ControllerEventType = iota // axis
	ControllerButtonPressed                             // button_down
	ControllerButtonReleased                            // button_up
)

// ControllerEvent is delivered to controller handlers. Axis events carry
// Axis and Value; button events carry Button.
type ControllerEvent struct {
	Which  int
	Type   ControllerEventType
	Axis   string
	Value  float64
	Button string
}

// EventDescriptor identifies a registered handler for Off.
type EventDescriptor struct {
	Category EventCategory
	ID       uint32
}

// InputEvent is the normalized record forwarded to an EventSink. Exactly
// one of Key, Mouse or Controller is meaningful, chosen by Category.
type InputEvent struct {
	Category   EventCategory
	Key        KeyEvent
	Mouse      MouseEvent
	Controller ControllerEvent
}

// EventSink receives every dispatched input event after the window's own
// handlers have run. See the ecs subpackage for a Donburi implementation.
type EventSink interface {
	EmitEvent(event InputEvent)
}

// --- Handler registry ---

type eventHandler struct {
	id         uint32
	key        func(KeyEvent)
	mouse      func(MouseEvent)
	controller func(ControllerEvent)
}

type handlerRegistry struct {
	tables [eventCategoryCount][]eventHandler
	nextID uint32
}

func (r *handlerRegistry) add(c EventCategory, want eventFamily, h eventHandler) (EventDescriptor, error) {
	if c.family() != want {
		return EventDescriptor{}, fmt.Errorf("%w: %s", ErrUnknownEvent, c)
	}
	r.nextID++
	h.id = r.nextID
	r.tables[c] = append(r.tables[c], h)
	return EventDescriptor{Category: c, ID: h.id}, nil
}

// remove drops the handler from its table. The entry is removed from the
// slice to avoid nil iteration waste.
func (r *handlerRegistry) remove(d EventDescriptor) bool {
	if d.Category >= eventCategoryCount {
		return false
	}
	s := r.tables[d.Category]
	for i := range s {
		if s[i].id == d.ID {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			r.tables[d.Category] = s[:len(s)-1]
			return true
		}
	}
	return false
}

// handlers returns a snapshot so handlers may call Off while dispatching.
func (r *handlerRegistry) handlers(c EventCategory) []eventHandler {
	if len(r.tables[c]) == 0 {
		return nil
	}
	return slices.Clone(r.tables[c])
}

// OnKey registers fn for one of the key categories. A nil fn panics.
func (w *Window) OnKey(c EventCategory, fn func(KeyEvent)) (EventDescriptor, error) {
	if fn == nil {
		panic("petal: nil key handler")
	}
	return w.events.add(c, familyKey, eventHandler{key: fn})
}

// OnMouse registers fn for one of the mouse categories.
func (w *Window) OnMouse(c EventCategory, fn func(MouseEvent)) (EventDescriptor, error) {
	if fn == nil {
		panic("petal: nil mouse handler")
	}
	return w.events.add(c, familyMouse, eventHandler{mouse: fn})
}

// OnController registers fn for one of the controller categories.
func (w *Window) OnController(c EventCategory, fn func(ControllerEvent)) (EventDescriptor, error) {
	if fn == nil {
		panic("petal: nil controller handler")
	}
	return w.events.add(c, familyController, eventHandler{controller: fn})
}

// Off unregisters the handler identified by d. It reports whether the
// handler was still registered.
func (w *Window) Off(d EventDescriptor) bool {
	return w.events.remove(d)
}

// HandlerCount returns the number of handlers registered for c.
func (w *Window) HandlerCount(c EventCategory) int {
	if c >= eventCategoryCount {
		return 0
	}
	return len(w.events.tables[c])
}

// --- Callback entry points ---

// KeyCallback is invoked by the platform once per raw key event.
func (w *Window) KeyCallback(t KeyEventType, key string) {
	if w.closed {
		return
	}
	ev := KeyEvent{Type: t, Key: strings.ToLower(key)}
	w.fireKey(EventKey, ev)

	var c EventCategory
	var set map[string]struct{}
	switch t {
	case KeyPressed:
		c, set = EventKeyDown, w.input.keysDown
	case KeyHeld:
		c, set = EventKeyHeld, w.input.keysHeld
	case KeyReleased:
		c, set = EventKeyUp, w.input.keysUp
	default:
		return
	}
	set[ev.Key] = struct{}{}
	w.fireKey(c, ev)
}

func (w *Window) fireKey(c EventCategory, ev KeyEvent) {
	for _, h := range w.events.handlers(c) {
		h.key(ev)
	}
	w.emit(InputEvent{Category: c, Key: ev})
}

// MouseCallback is invoked by the platform once per raw mouse event.
func (w *Window) MouseCallback(t MouseEventType, button, direction string, x, y, dx, dy float64) {
	if w.closed {
		return
	}
	w.fireMouse(EventMouse, MouseEvent{
		Type: t, Button: button, Direction: direction,
		X: x, Y: y, DeltaX: dx, DeltaY: dy,
	})

	switch t {
	case MousePressed:
		w.input.buttonsDown[button] = struct{}{}
		w.mouseX, w.mouseY = x, y
		w.fireMouse(EventMouseDown, MouseEvent{Type: t, Button: button, X: x, Y: y})
	case MouseReleased:
		w.input.buttonsUp[button] = struct{}{}
		w.mouseX, w.mouseY = x, y
		w.fireMouse(EventMouseUp, MouseEvent{Type: t, Button: button, X: x, Y: y})
	case MouseScrolled:
		w.input.scrolled = true
		w.input.scrollDirection = direction
		w.input.scrollDX, w.input.scrollDY = dx, dy
		w.fireMouse(EventMouseScroll, MouseEvent{Type: t, Direction: direction, DeltaX: dx, DeltaY: dy})
	case MouseMoved:
		w.input.moved = true
		w.input.moveDX, w.input.moveDY = dx, dy
		w.mouseX, w.mouseY = x, y
		w.fireMouse(EventMouseMove, MouseEvent{Type: t, X: x, Y: y, DeltaX: dx, DeltaY: dy})
	}
}

func (w *Window) fireMouse(c EventCategory, ev MouseEvent) {
	for _, h := range w.events.handlers(c) {
		h.mouse(ev)
	}
	w.emit(InputEvent{Category: c, Mouse: ev})
}

// ControllerCallback is invoked by the platform once per raw controller event.
func (w *Window) ControllerCallback(which int, t ControllerEventType, axis string, value float64, button string) {
	if w.closed {
		return
	}
	w.fireController(EventController, ControllerEvent{
		Which: which, Type: t, Axis: axis, Value: value, Button: button,
	})

	switch t {
	case ControllerAxisMoved:
		w.input.controllerID = which
		w.input.axesMoved[axis] = struct{}{}
		w.axisValues[axis] = value
		w.fireController(EventControllerAxis, ControllerEvent{Which: which, Type: t, Axis: axis, Value: value})
	case ControllerButtonPressed:
		w.input.controllerID = which
		w.input.controllerDown[button] = struct{}{}
		w.fireController(EventControllerButtonDown, ControllerEvent{Which: which, Type: t, Button: button})
	case ControllerButtonReleased:
		w.input.controllerID = which
		w.input.controllerUp[button] = struct{}{}
		w.fireController(EventControllerButtonUp, ControllerEvent{Which: which, Type: t, Button: button})
	}
}

func (w *Window) fireController(c EventCategory, ev ControllerEvent) {
	for _, h := range w.events.handlers(c) {
		h.controller(ev)
	}
	w.emit(InputEvent{Category: c, Controller: ev})
}

func (w *Window) emit(ev InputEvent) {
	if w.sink != nil {
		w.sink.EmitEvent(ev)
	}
}

// --- Transient per-frame input ---

type inputState struct {
	keysDown, keysHeld, keysUp   map[string]struct{}
	buttonsDown, buttonsUp       map[string]struct{}
	axesMoved                    map[string]struct{}
	controllerDown, controllerUp map[string]struct{}

	scrolled           bool
	scrollDirection    string
	scrollDX, scrollDY float64
	moved              bool
	moveDX, moveDY     float64
	controllerID       int
}

func newInputState() inputState {
	return inputState{
		keysDown:       make(map[string]struct{}),
		keysHeld:       make(map[string]struct{}),
		keysUp:         make(map[string]struct{}),
		buttonsDown:    make(map[string]struct{}),
		buttonsUp:      make(map[string]struct{}),
		axesMoved:      make(map[string]struct{}),
		controllerDown: make(map[string]struct{}),
		controllerUp:   make(map[string]struct{}),
	}
}

func (s *inputState) clear() {
	clear(s.keysDown)
	clear(s.keysHeld)
	clear(s.keysUp)
	clear(s.buttonsDown)
	clear(s.buttonsUp)
	clear(s.axesMoved)
	clear(s.controllerDown)
	clear(s.controllerUp)
	s.scrolled = false
	s.scrollDX, s.scrollDY = 0, 0
	s.moved = false
	s.moveDX, s.moveDY = 0, 0
}

func has(set map[string]struct{}, k string) bool {
	_, ok := set[k]
	return ok
}

// KeyDown reports whether key was pressed this frame.
func (w *Window) KeyDown(key string) bool { return has(w.input.keysDown, strings.ToLower(key)) }

// KeyHeld reports whether key was held this frame.
func (w *Window) KeyHeld(key string) bool { return has(w.input.keysHeld, strings.ToLower(key)) }

// KeyUp reports whether key was released this frame.
func (w *Window) KeyUp(key string) bool { return has(w.input.keysUp, strings.ToLower(key)) }

// MouseDown reports whether button was pressed this frame.
func (w *Window) MouseDown(button string) bool { return has(w.input.buttonsDown, button) }

// MouseUp reports whether button was released this frame.
func (w *Window) MouseUp(button string) bool { return has(w.input.buttonsUp, button) }

// MouseScroll reports whether a scroll happened this frame, with its
// direction and deltas.
func (w *Window) MouseScroll() (scrolled bool, direction string, dx, dy float64) {
	return w.input.scrolled, w.input.scrollDirection, w.input.scrollDX, w.input.scrollDY
}

// MouseMove reports whether the pointer moved this frame, with its deltas.
func (w *Window) MouseMove() (moved bool, dx, dy float64) {
	return w.input.moved, w.input.moveDX, w.input.moveDY
}

// ControllerAxisMoved reports whether axis moved this frame.
func (w *Window) ControllerAxisMoved(axis string) bool { return has(w.input.axesMoved, axis) }

// ControllerButtonDown reports whether button was pressed this frame.
func (w *Window) ControllerButtonDown(button string) bool {
	return has(w.input.controllerDown, button)
}

// ControllerButtonUp reports whether button was released this frame.
func (w *Window) ControllerButtonUp(button string) bool {
	return has(w.input.controllerUp, button)
}

// ControllerAxis returns the last value seen for a named axis
// ("left_x", "left_y", "right_x", "right_y", ...).
func (w *Window) ControllerAxis(axis string) float64 { return w.axisValues[axis] }

// ControllerID returns the id of the controller that produced the last event.
func (w *Window) ControllerID() int { return w.input.controllerID }

// MouseX returns the last known pointer x.
func (w *Window) MouseX() float64 { return w.mouseX }

// MouseY returns the last known pointer y.
func (w *Window) MouseY() float64 { return w.mouseY }
