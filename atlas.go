package petal

import (
	"encoding/json"
	"fmt"
	"sort"
)

// LoadSheetFrames parses TexturePacker JSON describing a single sprite sheet
// and returns its regions as named sprite frames. Both the hash format
// (single "frames" object) and the array format ("textures" array with one
// page) are accepted. Rotated regions are rejected since sprites sample
// sheets axis-aligned.
func LoadSheetFrames(jsonData []byte) (map[string]Frame, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("petal: failed to parse sheet JSON: %w", err)
	}

	var frames map[string]jsonFrame
	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("petal: failed to parse sheet textures array: %w", err)
		}
		if len(textures) != 1 {
			return nil, fmt.Errorf("petal: sheet JSON has %d pages, want 1", len(textures))
		}
		frames = textures[0].Frames
	case probe.Frames != nil:
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("petal: failed to parse sheet frames: %w", err)
		}
	default:
		return nil, fmt.Errorf("petal: sheet JSON has neither \"frames\" nor \"textures\" key")
	}

	out := make(map[string]Frame, len(frames))
	for name, f := range frames {
		if f.Rotated {
			return nil, fmt.Errorf("petal: sheet frame %q is rotated", name)
		}
		out[name] = Frame{
			X:      float64(f.Frame.X),
			Y:      float64(f.Frame.Y),
			Width:  float64(f.Frame.W),
			Height: float64(f.Frame.H),
		}
	}
	return out, nil
}

// SheetAnimation builds an explicit-frame animation from sheet frames in
// the given order. With no names, every frame is used in name order.
func SheetAnimation(frames map[string]Frame, names ...string) (Animation, error) {
	if len(names) == 0 {
		for name := range frames {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	list := make([]Frame, 0, len(names))
	for _, name := range names {
		f, ok := frames[name]
		if !ok {
			return Animation{}, fmt.Errorf("petal: sheet frame %q not found", name)
		}
		list = append(list, f)
	}
	return Frames(list...), nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}
