package petal

import (
	"errors"
	"image"
	"testing"
	"time"
)

// newSheet returns a frames*16 x 16 sheet.
func newSheet(frames int) *Pixmap {
	return NewPixmap(image.NewRGBA(image.Rect(0, 0, frames*16, 16)))
}

func newTestSprite(t *testing.T, cfg SpriteConfig) (*Sprite, *fakeClock) {
	t.Helper()
	if cfg.ClipWidth == 0 {
		cfg.ClipWidth = 16
	}
	s, err := NewSpriteFromPixmap(newSheet(5), cfg)
	if err != nil {
		t.Fatal(err)
	}
	clk := newFakeClock()
	s.now = clk.now
	return s, clk
}

func TestSpriteDefaultAnimationCoversRow(t *testing.T) {
	s, _ := newTestSprite(t, SpriteConfig{})
	a := s.animations[DefaultAnimation]
	if a.Len() != 5 || a.first != 0 || a.last != 4 {
		t.Errorf("default animation = %+v, want 0..4", a)
	}
	if s.Animation() != DefaultAnimation || s.Playing() {
		t.Errorf("new sprite: animation %q, playing %v", s.Animation(), s.Playing())
	}
	if s.ClipHeight != 16 {
		t.Errorf("ClipHeight = %v, want image height", s.ClipHeight)
	}
}

func TestSpriteNonLoopingStops(t *testing.T) {
	s, clk := newTestSprite(t, SpriteConfig{Time: 100 * time.Millisecond})
	var done int
	if err := s.Play("", OnDone(func() { done++ })); err != nil {
		t.Fatal(err)
	}

	r := newRecordingRenderer()
	var seen []int
	for elapsed := time.Duration(0); elapsed <= 600*time.Millisecond; elapsed += 10 * time.Millisecond {
		s.Render(r)
		if n := len(seen); n == 0 || seen[n-1] != s.CurrentFrame() {
			seen = append(seen, s.CurrentFrame())
		}
		clk.advance(10 * time.Millisecond)
	}

	if s.Playing() {
		t.Error("sprite still playing after 600ms")
	}
	if done != 1 {
		t.Errorf("OnDone called %d times, want 1", done)
	}
	want := []int{0, 1, 2, 3, 4, 0}
	if len(seen) != len(want) {
		t.Fatalf("frames = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("frames = %v, want %v", seen, want)
		}
	}
	if s.ClipX != 0 {
		t.Errorf("ClipX after stop = %v, want default frame", s.ClipX)
	}
}

func TestSpriteLoopCycles(t *testing.T) {
	s, clk := newTestSprite(t, SpriteConfig{Time: 100 * time.Millisecond, Loop: true})
	if err := s.Play(""); err != nil {
		t.Fatal(err)
	}
	r := newRecordingRenderer()
	// Record each distinct frame over one second of 10ms renders.
	seen := []int{s.CurrentFrame()}
	for elapsed := 0; elapsed <= 1000; elapsed += 10 {
		s.Render(r)
		if f := s.CurrentFrame(); f != seen[len(seen)-1] {
			seen = append(seen, f)
		}
		clk.advance(10 * time.Millisecond)
	}
	// Frames advance once more than 100ms has passed, so every 110ms here.
	want := []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}
	if len(seen) != len(want) {
		t.Fatalf("frames = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("frames = %v, want %v", seen, want)
		}
	}
	if !s.Playing() {
		t.Error("looping sprite stopped")
	}
}

func TestSpriteOnDoneMayReplay(t *testing.T) {
	s, clk := newTestSprite(t, SpriteConfig{
		Time: 50 * time.Millisecond,
		Animations: map[string]Animation{
			"blink": Range(1, 2),
			"idle":  Range(0, 0),
		},
	})
	if err := s.Play("blink", OnDone(func() {
		if err := s.Play("idle", Looping(true)); err != nil {
			t.Error(err)
		}
	})); err != nil {
		t.Fatal(err)
	}
	r := newRecordingRenderer()
	for i := 0; i < 30; i++ {
		s.Render(r)
		clk.advance(10 * time.Millisecond)
	}
	if !s.Playing() || s.Animation() != "idle" {
		t.Errorf("after OnDone: playing %v, animation %q", s.Playing(), s.Animation())
	}
}

func TestSpritePlayErrors(t *testing.T) {
	s, _ := newTestSprite(t, SpriteConfig{})
	if err := s.Play("missing"); !errors.Is(err, ErrUnknownAnimation) {
		t.Errorf("Play(missing) = %v, want ErrUnknownAnimation", err)
	}
	if err := s.Play("", Flipped(FlipHorizontal)); !errors.Is(err, ErrFlipBounds) {
		t.Errorf("flip without size = %v, want ErrFlipBounds", err)
	}

	sized, _ := newTestSprite(t, SpriteConfig{Width: 32, Height: 32})
	if err := sized.Play("", Flipped(FlipHorizontal)); err != nil {
		t.Errorf("flip with size = %v", err)
	}
	if sized.Flip() != FlipHorizontal {
		t.Errorf("Flip = %v", sized.Flip())
	}
}

func TestSpritePlayIsIdempotent(t *testing.T) {
	s, clk := newTestSprite(t, SpriteConfig{Time: 100 * time.Millisecond, Loop: true})
	s.Play("")
	r := newRecordingRenderer()
	for i := 0; i < 25; i++ {
		s.Render(r)
		clk.advance(10 * time.Millisecond)
	}
	frame := s.CurrentFrame()
	if frame == 0 {
		t.Fatal("animation did not advance")
	}
	s.Play("")
	if s.CurrentFrame() != frame {
		t.Errorf("replaying the running animation reset frame %d to %d", frame, s.CurrentFrame())
	}
}

func TestSpriteExplicitFrames(t *testing.T) {
	s, clk := newTestSprite(t, SpriteConfig{
		Time: 100 * time.Millisecond,
		Animations: map[string]Animation{
			"jump": Frames(
				Frame{X: 32, Width: 16, Height: 8},
				Frame{X: 48, Y: 8, Width: 16, Height: 8, Time: 20 * time.Millisecond},
			),
		},
	})
	if err := s.Play("jump"); err != nil {
		t.Fatal(err)
	}
	if s.ClipX != 32 || s.ClipHeight != 8 {
		t.Errorf("first frame clip = (%v, %v)", s.ClipX, s.ClipHeight)
	}
	clk.advance(110 * time.Millisecond)
	s.Render(newRecordingRenderer())
	if s.ClipX != 48 || s.ClipY != 8 || s.frameTime != 20*time.Millisecond {
		t.Errorf("second frame clip = (%v, %v), time %v", s.ClipX, s.ClipY, s.frameTime)
	}
}

func TestSpriteStop(t *testing.T) {
	s, _ := newTestSprite(t, SpriteConfig{
		DefaultFrame: 2,
		Animations:   map[string]Animation{"walk": Range(0, 3)},
	})
	s.Play("walk")
	s.Stop("run")
	if !s.Playing() {
		t.Error("Stop with another name halted the animation")
	}
	s.Stop("walk")
	if s.Playing() || s.CurrentFrame() != 2 || s.ClipX != 32 {
		t.Errorf("after Stop: playing %v, frame %d, ClipX %v", s.Playing(), s.CurrentFrame(), s.ClipX)
	}
}

func TestSpriteEmptyAnimationRejected(t *testing.T) {
	_, err := NewSpriteFromPixmap(newSheet(2), SpriteConfig{
		ClipWidth:  16,
		Animations: map[string]Animation{"none": Frames()},
	})
	if err == nil {
		t.Error("expected error for empty animation")
	}
}

func TestSpriteRenderUploadsOnce(t *testing.T) {
	s, _ := newTestSprite(t, SpriteConfig{X: 10, Y: 20})
	r := newRecordingRenderer()
	s.Render(r)
	s.Render(r)
	if len(r.textures) != 1 {
		t.Errorf("textures = %d, want 1", len(r.textures))
	}
	c := r.calls[0]
	if c.kind != "texture" || c.coords != (Quad{10, 20, 26, 20, 26, 36, 10, 36}) {
		t.Errorf("call = %+v", c)
	}
	if c.tex != (Quad{0, 0, 0.2, 0, 0.2, 1, 0, 1}) {
		t.Errorf("tex = %v", c.tex)
	}
}

func TestSpriteExplicitFrameAtOrigin(t *testing.T) {
	s, clk := newTestSprite(t, SpriteConfig{
		ClipX: 32,
		ClipY: 4,
		Time:  100 * time.Millisecond,
		Animations: map[string]Animation{
			"walk": Frames(
				Frame{X: 0, Y: 0, Width: 16, Height: 16},
				Frame{X: 16, Y: 0},
			),
		},
	})
	if err := s.Play("walk"); err != nil {
		t.Fatal(err)
	}
	if s.ClipX != 0 || s.ClipY != 0 {
		t.Errorf("first frame clip origin = (%v, %v), want (0, 0)", s.ClipX, s.ClipY)
	}
	clk.advance(110 * time.Millisecond)
	s.Render(newRecordingRenderer())
	if s.ClipX != 16 || s.ClipY != 0 {
		t.Errorf("second frame clip origin = (%v, %v), want (16, 0)", s.ClipX, s.ClipY)
	}
	// Zero size still takes the configured clip size.
	if s.ClipWidth != 16 || s.ClipHeight != 16 {
		t.Errorf("second frame clip size = %vx%v, want 16x16", s.ClipWidth, s.ClipHeight)
	}
}
