package petal

// ImageConfig places an image. Zero Width and Height use the pixmap size.
type ImageConfig struct {
	X, Y, Z       float64
	Width, Height float64
	Rotate        float64 // degrees about the center
	Color         ColorSet
}

// Image draws a whole pixmap as a textured quad.
type Image struct {
	Base
	X, Y          float64
	Width, Height float64
	Rotate        float64

	pixmap  *Pixmap
	texture *Texture
}

// NewImage loads path and wraps it in an Image.
func NewImage(path string, cfg ImageConfig) (*Image, error) {
	p, err := LoadPixmap(path)
	if err != nil {
		return nil, err
	}
	return NewImageFromPixmap(p, cfg)
}

// NewImageFromPixmap wraps an already decoded pixmap.
func NewImageFromPixmap(p *Pixmap, cfg ImageConfig) (*Image, error) {
	img := &Image{
		X: cfg.X, Y: cfg.Y,
		Width: cfg.Width, Height: cfg.Height,
		Rotate:  cfg.Rotate,
		pixmap:  p,
		texture: p.texture(),
	}
	if img.Width == 0 {
		img.Width = float64(p.Width())
	}
	if img.Height == 0 {
		img.Height = float64(p.Height())
	}
	if err := img.init(cfg.Z, cfg.Color, 0); err != nil {
		return nil, err
	}
	return img, nil
}

// Pixmap returns the source pixels.
func (i *Image) Pixmap() *Pixmap { return i.pixmap }

// Position returns the top-left corner.
func (i *Image) Position() (float64, float64) { return i.X, i.Y }

// SetPosition moves the top-left corner.
func (i *Image) SetPosition(x, y float64) { i.X, i.Y = x, y }

// Contains reports whether (x, y) lies inside the unrotated bounds.
func (i *Image) Contains(x, y float64) bool {
	return Rect{i.X, i.Y, i.Width, i.Height}.Contains(x, y)
}

// Render draws the image.
func (i *Image) Render(r Renderer) {
	v := NewVertices(i.X, i.Y, i.Width, i.Height, i.Rotate, nil, FlipNone)
	i.texture.Draw(r, v.Coordinates(), v.TextureCoordinates(), i.color.At(0))
}

// Draw renders the image immediately with the given placement. It is only
// valid inside the window's render callback.
func (i *Image) Draw(w *Window, opts DrawOpts) error {
	if err := w.RenderReadyCheck(); err != nil {
		return err
	}
	width, height := opts.size(i.Width, i.Height)
	v := NewVertices(opts.X, opts.Y, width, height, opts.Rotate, nil, FlipNone)
	i.texture.Draw(w.renderer, v.Coordinates(), v.TextureCoordinates(), opts.tint())
	return nil
}

// DrawOpts places an immediate draw of an image, sprite or text.
type DrawOpts struct {
	// X and Y are the top-left corner in pixels.
	X, Y float64
	// Width and Height are the drawn size. Zero uses the object's own size.
	Width, Height float64
	// Rotate is the rotation in degrees about the center.
	Rotate float64
	// Color tints the draw. The zero value means opaque white.
	Color Color
}

func (o DrawOpts) size(w, h float64) (float64, float64) {
	if o.Width != 0 {
		w = o.Width
	}
	if o.Height != 0 {
		h = o.Height
	}
	return w, h
}

func (o DrawOpts) tint() Color {
	if o.Color == (Color{}) {
		return ColorWhite
	}
	return o.Color
}
