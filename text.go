package petal

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextConfig places a text label. Zero Size is 20; an empty Font uses the
// built-in Go font.
type TextConfig struct {
	X, Y, Z float64
	Size    float64
	Rotate  float64
	Font    string
	Style   FontStyle
	Color   ColorSet
}

// Text is a string shaped into a white bitmap and tinted by its color.
// Changing the string or size deletes the old texture and shapes a new one.
type Text struct {
	Base
	X, Y   float64
	Rotate float64

	text     string
	fontPath string
	style    FontStyle
	font     *Font
	texture  *Texture
	width    int
	height   int
}

// NewText shapes s with the configured font.
func NewText(s string, cfg TextConfig) (*Text, error) {
	if cfg.Size == 0 {
		cfg.Size = 20
	}
	f, err := LoadFont(cfg.Font, cfg.Size, cfg.Style)
	if err != nil {
		return nil, err
	}
	t := &Text{
		X:        cfg.X,
		Y:        cfg.Y,
		Rotate:   cfg.Rotate,
		text:     s,
		fontPath: cfg.Font,
		style:    cfg.Style,
		font:     f,
	}
	if err := t.init(cfg.Z, cfg.Color, 0); err != nil {
		return nil, err
	}
	t.shape()
	return t, nil
}

// Text returns the current string.
func (t *Text) Text() string { return t.text }

// SetText replaces the string and reshapes it.
func (t *Text) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.shape()
}

// Size returns the font size in pixels.
func (t *Text) Size() float64 { return t.font.Size }

// SetSize reloads the font at a new size and reshapes the string.
func (t *Text) SetSize(size float64) error {
	if size == t.font.Size {
		return nil
	}
	f, err := LoadFont(t.fontPath, size, t.style)
	if err != nil {
		return err
	}
	t.font = f
	t.shape()
	return nil
}

// Width returns the shaped width in pixels.
func (t *Text) Width() float64 { return float64(t.width) }

// Height returns the shaped height in pixels.
func (t *Text) Height() float64 { return float64(t.height) }

// Position returns the top-left corner.
func (t *Text) Position() (float64, float64) { return t.X, t.Y }

// SetPosition moves the top-left corner.
func (t *Text) SetPosition(x, y float64) { t.X, t.Y = x, y }

// shape rasterizes the string and replaces the texture.
func (t *Text) shape() {
	if t.texture != nil {
		t.texture.Delete()
	}
	img := shapeText(t.font.face, t.text)
	t.width, t.height = img.Rect.Dx(), img.Rect.Dy()
	t.texture = NewTexture(img.Pix, t.width, t.height)
}

// shapeText draws s in white onto a transparent image sized to fit. Lines
// are split on '\n'.
func shapeText(face font.Face, s string) *image.RGBA {
	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	lines := strings.Split(s, "\n")

	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	height := lineHeight * len(lines)
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, line := range lines {
		d.Dot = fixed.Point26_6{
			X: 0,
			Y: m.Ascent + fixed.I(i*lineHeight),
		}
		d.DrawString(line)
	}
	return img
}

// Contains reports whether (x, y) lies inside the shaped bounds.
func (t *Text) Contains(x, y float64) bool {
	return Rect{t.X, t.Y, t.Width(), t.Height()}.Contains(x, y)
}

// Render draws the text.
func (t *Text) Render(r Renderer) {
	v := NewVertices(t.X, t.Y, t.Width(), t.Height(), t.Rotate, nil, FlipNone)
	t.texture.Draw(r, v.Coordinates(), v.TextureCoordinates(), t.color.At(0))
}

// Draw renders the text immediately. It is only valid inside the window's
// render callback.
func (t *Text) Draw(w *Window, opts DrawOpts) error {
	if err := w.RenderReadyCheck(); err != nil {
		return err
	}
	width, height := opts.size(t.Width(), t.Height())
	v := NewVertices(opts.X, opts.Y, width, height, opts.Rotate, nil, FlipNone)
	t.texture.Draw(w.renderer, v.Coordinates(), v.TextureCoordinates(), opts.tint())
	return nil
}
