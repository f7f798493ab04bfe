package petal

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	Button string  `json:"button,omitempty"`
	Which  int     `json:"which,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script plays back injected input and screenshots across frames. Attach
// it to a window with RunScript. Supported actions: key, click, move,
// drag, scroll, button, screenshot, wait, close.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("petal: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("petal: parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "key", "click", "move", "drag", "scroll", "button", "screenshot", "wait", "close":
		default:
			return nil, fmt.Errorf("petal: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// RunScript attaches s to the window. Its steps run from UpdateFrame.
func (w *Window) RunScript(s *Script) {
	w.script = s
}

// Done reports whether all steps in the script have been executed.
func (s *Script) Done() bool {
	return s.done
}

// step advances the script by one frame.
func (s *Script) step(w *Window) {
	if s.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(w.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "screenshot":
		w.screenshotLabel(st.Label)
	case "key":
		w.InjectKey(st.Key)
	case "click":
		w.InjectClick(st.X, st.Y)
	case "move":
		w.InjectMove(st.X, st.Y)
	case "drag":
		w.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "scroll":
		w.InjectScroll(st.X, st.Y)
	case "button":
		w.InjectButton(st.Which, st.Button)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "close":
		s.done = true
		w.Close()
		return
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(w.injectQueue) == 0 {
		s.done = true
	}
}
