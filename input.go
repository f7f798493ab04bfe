package petal

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyNames maps ebiten keys whose names differ from the lowercase form.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyEnter:        "return",
	ebiten.KeyNumpadEnter:  "keypad enter",
	ebiten.KeyArrowUp:      "up",
	ebiten.KeyArrowDown:    "down",
	ebiten.KeyArrowLeft:    "left",
	ebiten.KeyArrowRight:   "right",
	ebiten.KeyShiftLeft:    "left shift",
	ebiten.KeyShiftRight:   "right shift",
	ebiten.KeyControlLeft:  "left ctrl",
	ebiten.KeyControlRight: "right ctrl",
	ebiten.KeyAltLeft:      "left alt",
	ebiten.KeyAltRight:     "right alt",
	ebiten.KeyMetaLeft:     "left gui",
	ebiten.KeyMetaRight:    "right gui",
	ebiten.KeyMinus:        "-",
	ebiten.KeyEqual:        "=",
	ebiten.KeyBracketLeft:  "[",
	ebiten.KeyBracketRight: "]",
	ebiten.KeyBackslash:    "\\",
	ebiten.KeySemicolon:    ";",
	ebiten.KeyQuote:        "'",
	ebiten.KeyComma:        ",",
	ebiten.KeyPeriod:       ".",
	ebiten.KeySlash:        "/",
	ebiten.KeyBackquote:    "`",
}

// keyName returns the lowercase name used by key events, such as "a",
// "space", "left shift" or "keypad 1".
func keyName(k ebiten.Key) string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	s := k.String()
	switch {
	case strings.HasPrefix(s, "Digit"):
		return strings.TrimPrefix(s, "Digit")
	case strings.HasPrefix(s, "Numpad"):
		return "keypad " + strings.ToLower(strings.TrimPrefix(s, "Numpad"))
	}
	return strings.ToLower(s)
}

// virtualKey reports whether k is one of ebiten's side-agnostic modifiers,
// which duplicate the left and right keys.
func virtualKey(k ebiten.Key) bool {
	return k == ebiten.KeyShift || k == ebiten.KeyControl || k == ebiten.KeyAlt || k == ebiten.KeyMeta
}

var mouseButtonNames = []struct {
	button ebiten.MouseButton
	name   string
}{
	{ebiten.MouseButtonLeft, "left"},
	{ebiten.MouseButtonMiddle, "middle"},
	{ebiten.MouseButtonRight, "right"},
	{ebiten.MouseButton3, "x1"},
	{ebiten.MouseButton4, "x2"},
}

var gamepadButtonNames = map[ebiten.StandardGamepadButton]string{
	ebiten.StandardGamepadButtonRightBottom:      "a",
	ebiten.StandardGamepadButtonRightRight:       "b",
	ebiten.StandardGamepadButtonRightLeft:        "x",
	ebiten.StandardGamepadButtonRightTop:         "y",
	ebiten.StandardGamepadButtonFrontTopLeft:     "left_shoulder",
	ebiten.StandardGamepadButtonFrontTopRight:    "right_shoulder",
	ebiten.StandardGamepadButtonFrontBottomLeft:  "left_trigger",
	ebiten.StandardGamepadButtonFrontBottomRight: "right_trigger",
	ebiten.StandardGamepadButtonCenterLeft:       "back",
	ebiten.StandardGamepadButtonCenterRight:      "start",
	ebiten.StandardGamepadButtonLeftStick:        "left_stick",
	ebiten.StandardGamepadButtonRightStick:       "right_stick",
	ebiten.StandardGamepadButtonLeftTop:          "up",
	ebiten.StandardGamepadButtonLeftBottom:       "down",
	ebiten.StandardGamepadButtonLeftLeft:         "left",
	ebiten.StandardGamepadButtonLeftRight:        "right",
	ebiten.StandardGamepadButtonCenterCenter:     "guide",
}

var gamepadAxisNames = map[ebiten.StandardGamepadAxis]string{
	ebiten.StandardGamepadAxisLeftStickHorizontal:  "left_x",
	ebiten.StandardGamepadAxisLeftStickVertical:    "left_y",
	ebiten.StandardGamepadAxisRightStickHorizontal: "right_x",
	ebiten.StandardGamepadAxisRightStickVertical:   "right_y",
}

// axisDeadZone suppresses stick noise around rest.
const axisDeadZone = 0.05

type axisKey struct {
	id   ebiten.GamepadID
	axis ebiten.StandardGamepadAxis
}

// inputPoller turns ebiten's polled state into window callbacks.
type inputPoller struct {
	keys     []ebiten.Key
	gamepads []ebiten.GamepadID
	touches  []ebiten.TouchID
	axes     map[axisKey]float64

	mouseX, mouseY float64
	primed         bool
	touchID        ebiten.TouchID
	touching       bool
}

func newInputPoller() *inputPoller {
	return &inputPoller{axes: make(map[axisKey]float64)}
}

// poll dispatches every input change since the last tick.
func (p *inputPoller) poll(w *Window) {
	p.pollKeys(w)
	p.pollMouse(w)
	p.pollTouch(w)
	p.pollGamepads(w)
}

func (p *inputPoller) pollKeys(w *Window) {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if !virtualKey(k) {
			w.KeyCallback(KeyPressed, keyName(k))
		}
	}
	p.keys = inpututil.AppendPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if !virtualKey(k) {
			w.KeyCallback(KeyHeld, keyName(k))
		}
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if !virtualKey(k) {
			w.KeyCallback(KeyReleased, keyName(k))
		}
	}
}

func (p *inputPoller) pollMouse(w *Window) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	if !p.primed {
		p.mouseX, p.mouseY, p.primed = x, y, true
	}
	if x != p.mouseX || y != p.mouseY {
		w.MouseCallback(MouseMoved, "", "", x, y, x-p.mouseX, y-p.mouseY)
		p.mouseX, p.mouseY = x, y
	}

	for _, b := range mouseButtonNames {
		if inpututil.IsMouseButtonJustPressed(b.button) {
			w.MouseCallback(MousePressed, b.name, "", x, y, 0, 0)
		}
		if inpututil.IsMouseButtonJustReleased(b.button) {
			w.MouseCallback(MouseReleased, b.name, "", x, y, 0, 0)
		}
	}

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		w.MouseCallback(MouseScrolled, "", "standard", x, y, dx, dy)
	}
}

// pollTouch reports the first finger as the left mouse button.
func (p *inputPoller) pollTouch(w *Window) {
	if !p.touching {
		p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
		if len(p.touches) == 0 {
			return
		}
		p.touchID, p.touching = p.touches[0], true
		tx, ty := ebiten.TouchPosition(p.touchID)
		p.mouseX, p.mouseY = float64(tx), float64(ty)
		w.MouseCallback(MousePressed, "left", "", p.mouseX, p.mouseY, 0, 0)
		return
	}
	if inpututil.IsTouchJustReleased(p.touchID) {
		p.touching = false
		w.MouseCallback(MouseReleased, "left", "", p.mouseX, p.mouseY, 0, 0)
		return
	}
	tx, ty := ebiten.TouchPosition(p.touchID)
	x, y := float64(tx), float64(ty)
	if x != p.mouseX || y != p.mouseY {
		w.MouseCallback(MouseMoved, "", "", x, y, x-p.mouseX, y-p.mouseY)
		p.mouseX, p.mouseY = x, y
	}
}

func (p *inputPoller) pollGamepads(w *Window) {
	p.gamepads = ebiten.AppendGamepadIDs(p.gamepads[:0])
	for _, id := range p.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		which := int(id)
		for b, name := range gamepadButtonNames {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
				w.ControllerCallback(which, ControllerButtonPressed, "", 0, name)
			}
			if inpututil.IsStandardGamepadButtonJustReleased(id, b) {
				w.ControllerCallback(which, ControllerButtonReleased, "", 0, name)
			}
		}
		for a, name := range gamepadAxisNames {
			v := ebiten.StandardGamepadAxisValue(id, a)
			if v > -axisDeadZone && v < axisDeadZone {
				v = 0
			}
			k := axisKey{id, a}
			if v != p.axes[k] {
				p.axes[k] = v
				w.ControllerCallback(which, ControllerAxisMoved, name, v, "")
			}
		}
	}
}
