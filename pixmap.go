package petal

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Pixmap is a decoded image held in CPU memory as premultiplied RGBA.
type Pixmap struct {
	Path string
	img  *image.RGBA
}

// LoadPixmap decodes png, jpeg, gif, bmp, tiff or webp from path.
func LoadPixmap(path string) (*Pixmap, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("petal: open %s: %w", path, err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidImage, path, err)
	}
	p := NewPixmap(src)
	p.Path = path
	return p, nil
}

// NewPixmap copies any image into a Pixmap.
func NewPixmap(src image.Image) *Pixmap {
	b := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}
	return &Pixmap{img: rgba}
}

// Width returns the image width in pixels.
func (p *Pixmap) Width() int { return p.img.Rect.Dx() }

// Height returns the image height in pixels.
func (p *Pixmap) Height() int { return p.img.Rect.Dy() }

// Image returns the underlying pixels. Do not modify them after a texture
// has been made from the pixmap.
func (p *Pixmap) Image() *image.RGBA { return p.img }

// texture returns a fresh, not yet uploaded texture of the pixmap.
func (p *Pixmap) texture() *Texture {
	pix := make([]byte, len(p.img.Pix))
	copy(pix, p.img.Pix)
	return NewTexture(pix, p.Width(), p.Height())
}

// PixmapAtlas keeps loaded pixmaps by name so sprites and tilesets built
// from the same sheet share one decode.
type PixmapAtlas struct {
	pixmaps map[string]*Pixmap
}

// NewPixmapAtlas creates an empty atlas.
func NewPixmapAtlas() *PixmapAtlas {
	return &PixmapAtlas{pixmaps: make(map[string]*Pixmap)}
}

// Load decodes path and stores it under name. An empty name uses the path.
// A name that is already loaded is returned without decoding again.
func (a *PixmapAtlas) Load(path, name string) (*Pixmap, error) {
	if name == "" {
		name = path
	}
	if p, ok := a.pixmaps[name]; ok {
		return p, nil
	}
	p, err := LoadPixmap(path)
	if err != nil {
		return nil, err
	}
	a.pixmaps[name] = p
	return p, nil
}

// Get returns the pixmap stored under name.
func (a *PixmapAtlas) Get(name string) (*Pixmap, bool) {
	p, ok := a.pixmaps[name]
	return p, ok
}

// Count returns the number of stored pixmaps.
func (a *PixmapAtlas) Count() int { return len(a.pixmaps) }

// Clear forgets every pixmap.
func (a *PixmapAtlas) Clear() { clear(a.pixmaps) }
