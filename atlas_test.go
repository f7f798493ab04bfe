package petal

import (
	"strings"
	"testing"
	"time"
)

// --- Test JSON fixtures ---

const hashSheetJSON = `{
  "frames": {
    "walk_0.png": {
      "frame": {"x": 0, "y": 0, "w": 32, "h": 48},
      "rotated": false,
      "trimmed": false,
      "sourceSize": {"w": 32, "h": 48}
    },
    "walk_1.png": {
      "frame": {"x": 32, "y": 0, "w": 32, "h": 48},
      "rotated": false
    },
    "jump.png": {
      "frame": {"x": 64, "y": 8, "w": 30, "h": 40},
      "rotated": false
    }
  },
  "meta": {"image": "hero.png", "size": {"w": 128, "h": 64}}
}`

const arraySheetJSON = `{
  "textures": [
    {
      "image": "hero.png",
      "frames": {
        "idle.png": {"frame": {"x": 10, "y": 20, "w": 50, "h": 50}, "rotated": false}
      }
    }
  ]
}`

func TestLoadSheetFrames_Hash(t *testing.T) {
	frames, err := LoadSheetFrames([]byte(hashSheetJSON))
	if err != nil {
		t.Fatalf("LoadSheetFrames: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}
	if f := frames["jump.png"]; f != (Frame{X: 64, Y: 8, Width: 30, Height: 40}) {
		t.Errorf("jump = %+v", f)
	}
}

func TestLoadSheetFrames_Array(t *testing.T) {
	frames, err := LoadSheetFrames([]byte(arraySheetJSON))
	if err != nil {
		t.Fatalf("LoadSheetFrames: %v", err)
	}
	if f, ok := frames["idle.png"]; !ok || f.X != 10 || f.Y != 20 || f.Width != 50 {
		t.Errorf("idle = %+v, %v", f, ok)
	}
}

func TestLoadSheetFrames_Errors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"invalid json", `{`, "parse"},
		{"no keys", `{"meta": {}}`, "neither"},
		{"two pages", `{"textures": [{"frames": {}}, {"frames": {}}]}`, "2 pages"},
		{"rotated", `{"frames": {"r.png": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}, "rotated": true}}}`, "rotated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSheetFrames([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSheetAnimation(t *testing.T) {
	frames, err := LoadSheetFrames([]byte(hashSheetJSON))
	if err != nil {
		t.Fatal(err)
	}

	walk, err := SheetAnimation(frames, "walk_0.png", "walk_1.png")
	if err != nil {
		t.Fatal(err)
	}
	if walk.Len() != 2 || walk.frames[1].X != 32 {
		t.Errorf("walk = %+v", walk)
	}

	all, err := SheetAnimation(frames)
	if err != nil {
		t.Fatal(err)
	}
	// Name order: jump, walk_0, walk_1.
	if all.Len() != 3 || all.frames[0].X != 64 {
		t.Errorf("all = %+v", all)
	}

	if _, err := SheetAnimation(frames, "run.png"); err == nil {
		t.Error("missing frame accepted")
	}
}

func TestSheetAnimationDrivesSprite(t *testing.T) {
	frames, _ := LoadSheetFrames([]byte(hashSheetJSON))
	walk, _ := SheetAnimation(frames, "walk_0.png", "walk_1.png")

	sheet := newSheet(8)
	s, err := NewSpriteFromPixmap(sheet, SpriteConfig{
		ClipWidth:  32,
		ClipHeight: 48,
		Time:       100 * time.Millisecond,
		Animations: map[string]Animation{"walk": walk},
	})
	if err != nil {
		t.Fatal(err)
	}
	clk := newFakeClock()
	s.now = clk.now
	if err := s.Play("walk"); err != nil {
		t.Fatal(err)
	}
	clk.advance(150 * time.Millisecond)
	s.Render(newRecordingRenderer())
	if s.ClipX != 32 || s.ClipHeight != 48 {
		t.Errorf("clip after one frame = (%v, %v)", s.ClipX, s.ClipHeight)
	}
}
