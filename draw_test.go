package petal

import (
	"errors"
	"testing"
)

// drawInFrame runs fn inside a render pass and returns what it drew.
func drawInFrame(t *testing.T, fn func(w *Window) error) (*recordingRenderer, error) {
	t.Helper()
	w, _ := newTestWindow()
	w.opened = true
	r := newRecordingRenderer()
	var err error
	w.Render(func() { err = fn(w) })
	w.RenderFrame(r)
	return r, err
}

func TestImmediateDrawOutsideRender(t *testing.T) {
	w, _ := newTestWindow()
	w.opened = true
	checks := map[string]error{
		"triangle":  w.DrawTriangle(0, 0, 1, 0, 0, 1, ColorSet{}),
		"quad":      w.DrawQuad(Quad{}, ColorSet{}),
		"rectangle": w.DrawRectangle(0, 0, 1, 1, ColorSet{}),
		"line":      w.DrawLine(0, 0, 1, 1, 1, ColorSet{}),
		"circle":    w.DrawCircle(0, 0, 1, 0, ColorWhite),
		"pixel":     w.DrawPixel(0, 0, 1, ColorSet{}),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrNotReady) {
			t.Errorf("%s outside render = %v, want ErrNotReady", name, err)
		}
	}
}

func TestImmediateDrawShapes(t *testing.T) {
	r, err := drawInFrame(t, func(w *Window) error {
		return errors.Join(
			w.DrawTriangle(0, 0, 10, 0, 0, 10, PerVertex(ColorWhite, ColorWhite, ColorWhite)),
			w.DrawRectangle(1, 2, 3, 4, Solid(ColorWhite)),
			w.DrawLine(0, 0, 5, 5, 2, ColorSet{}),
			w.DrawCircle(5, 5, 3, 0, ColorWhite),
			w.DrawPixel(7, 8, 0, ColorSet{}),
		)
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"triangle", "quad", "line", "ellipse", "quad"}
	got := r.kinds()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, got[i], want[i])
		}
	}
	if r.calls[3].coords[4] != 30 {
		t.Errorf("circle sectors = %v, want default 30", r.calls[3].coords[4])
	}
	if r.calls[4].coords != (Quad{7, 8, 8, 8, 8, 9, 7, 9}) {
		t.Errorf("pixel quad = %v, want size 1", r.calls[4].coords)
	}
}

func TestImmediateDrawErrors(t *testing.T) {
	_, err := drawInFrame(t, func(w *Window) error {
		return w.DrawQuad(Quad{}, PerVertex(ColorWhite, ColorWhite, ColorWhite))
	})
	if !errors.Is(err, ErrColorCount) {
		t.Errorf("quad with 3 colors = %v", err)
	}
	_, err = drawInFrame(t, func(w *Window) error {
		return w.DrawCircle(0, 0, -1, 0, ColorWhite)
	})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("negative radius = %v", err)
	}
}

func TestImmediateDrawImage(t *testing.T) {
	img, err := NewImageFromPixmap(newSheet(2), ImageConfig{})
	if err != nil {
		t.Fatal(err)
	}
	r, err := drawInFrame(t, func(w *Window) error {
		return w.DrawImage(img, DrawOpts{X: 10, Y: 10, Width: 64})
	})
	if err != nil {
		t.Fatal(err)
	}
	c := r.calls[0]
	if c.kind != "texture" || c.coords != (Quad{10, 10, 74, 10, 74, 26, 10, 26}) {
		t.Errorf("call = %+v", c)
	}
	if c.tint != ColorWhite {
		t.Errorf("zero DrawOpts color tint = %+v, want white", c.tint)
	}
}

func TestImmediateDrawSpriteAndText(t *testing.T) {
	s, _ := newTestSprite(t, SpriteConfig{})
	txt := newTestText(t, "hi", TextConfig{})
	tint := Color{0, 1, 0, 1}
	r, err := drawInFrame(t, func(w *Window) error {
		return errors.Join(
			w.DrawSprite(s, DrawOpts{X: 1, Y: 1, Color: tint}),
			w.DrawText(txt, DrawOpts{X: 2, Y: 2}),
		)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 2 || r.calls[0].tint != tint {
		t.Errorf("calls = %+v", r.calls)
	}
	if len(r.textures) != 2 {
		t.Errorf("textures = %d, want 2", len(r.textures))
	}

	w := NewWindow()
	if err := w.DrawText(txt, DrawOpts{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("DrawText outside render = %v", err)
	}
}
