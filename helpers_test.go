package petal

import (
	"io"
	"math"
	"testing"
	"time"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- Recording renderer ---

type drawCall struct {
	kind   string // texture, triangle, quad, line, ellipse
	id     TextureID
	coords Quad
	tex    Quad
	tint   Color
	colors []Color
}

type recordingRenderer struct {
	clears   []Color
	calls    []drawCall
	textures map[TextureID][]byte
	nextID   TextureID
	deleted  []TextureID
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{textures: make(map[TextureID][]byte)}
}

func (r *recordingRenderer) Clear(c Color) { r.clears = append(r.clears, c) }

func (r *recordingRenderer) CreateTexture(pix []byte, width, height int) TextureID {
	r.nextID++
	r.textures[r.nextID] = pix
	return r.nextID
}

func (r *recordingRenderer) DeleteTexture(id TextureID) {
	delete(r.textures, id)
	r.deleted = append(r.deleted, id)
}

func (r *recordingRenderer) DrawTexture(coords, texQuad Quad, tint Color, id TextureID) {
	r.calls = append(r.calls, drawCall{kind: "texture", id: id, coords: coords, tex: texQuad, tint: tint})
}

func (r *recordingRenderer) DrawTriangle(p [6]float64, colors [3]Color) {
	r.calls = append(r.calls, drawCall{
		kind:   "triangle",
		coords: Quad{p[0], p[1], p[2], p[3], p[4], p[5]},
		colors: colors[:],
	})
}

func (r *recordingRenderer) DrawQuad(coords Quad, colors [4]Color) {
	r.calls = append(r.calls, drawCall{kind: "quad", coords: coords, colors: colors[:]})
}

func (r *recordingRenderer) DrawLine(x1, y1, x2, y2, width float64, colors [4]Color) {
	r.calls = append(r.calls, drawCall{kind: "line", coords: Quad{x1, y1, x2, y2, width}, colors: colors[:]})
}

func (r *recordingRenderer) DrawEllipse(x, y, rx, ry float64, sectors int, c Color) {
	r.calls = append(r.calls, drawCall{kind: "ellipse", coords: Quad{x, y, rx, ry, float64(sectors)}, tint: c})
}

func (r *recordingRenderer) kinds() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.kind
	}
	return out
}

// --- Headless platform ---

// fakePlatform pumps a fixed number of frames, stopping early on Close.
type fakePlatform struct {
	frames   int
	renderer *recordingRenderer
	closed   bool
	ran      int
	perFrame func(frame int)
}

func (p *fakePlatform) Run(w *Window) error {
	if p.renderer == nil {
		p.renderer = newRecordingRenderer()
	}
	for i := 0; i < p.frames && !p.closed && !w.Closed(); i++ {
		w.BeginTick()
		if p.perFrame != nil {
			p.perFrame(i)
		}
		w.UpdateFrame()
		w.RenderFrame(p.renderer)
		p.ran++
	}
	return nil
}

func (p *fakePlatform) Close() { p.closed = true }

func (p *fakePlatform) DisplaySize() (int, int) { return 1920, 1080 }

// resetWindowShown lets a test call Show and restores the flag afterwards.
func resetWindowShown(t *testing.T) {
	t.Helper()
	windowShown = false
	t.Cleanup(func() { windowShown = false })
}

// --- Clock ---

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestWindow returns a window with a fake clock and discarded logs.
func newTestWindow(opts ...Option) (*Window, *fakeClock) {
	clk := newFakeClock()
	w := NewWindow(append([]Option{LogOutput(io.Discard)}, opts...)...)
	w.now = clk.now
	return w, clk
}

// beginRender puts w inside a render pass on r, as RenderFrame does.
func beginRender(w *Window, r Renderer) {
	w.opened = true
	w.renderer = r
}
