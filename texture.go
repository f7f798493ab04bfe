package petal

// Texture is a block of premultiplied RGBA pixels that is uploaded to a
// Renderer the first time it is drawn. After upload the CPU copy is
// released; the handle is reused until Delete.
type Texture struct {
	pix           []byte
	width, height int

	id       TextureID
	renderer Renderer
}

// NewTexture wraps premultiplied RGBA pixels. The slice is retained until
// the first draw.
func NewTexture(pix []byte, width, height int) *Texture {
	return &Texture{pix: pix, width: width, height: height}
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// ID returns the renderer handle, or 0 before the first draw.
func (t *Texture) ID() TextureID { return t.id }

// Draw uploads the texture if needed and draws texCoords of it onto coords.
func (t *Texture) Draw(r Renderer, coords, texCoords Quad, tint Color) {
	if t.id == 0 {
		if t.pix == nil {
			return
		}
		t.id = r.CreateTexture(t.pix, t.width, t.height)
		t.renderer = r
		t.pix = nil
	}
	r.DrawTexture(coords, texCoords, tint, t.id)
}

// Delete releases the renderer handle. The texture cannot be drawn again.
func (t *Texture) Delete() {
	if t.id != 0 && t.renderer != nil {
		t.renderer.DeleteTexture(t.id)
	}
	t.id = 0
	t.renderer = nil
	t.pix = nil
}
