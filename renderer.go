package petal

// Renderer rasterizes quads and primitives onto the current frame. The
// window passes one to every Renderable during RenderFrame.
type Renderer interface {
	// Clear fills the whole target with c.
	Clear(c Color)

	// CreateTexture uploads premultiplied RGBA pixels and returns a handle.
	CreateTexture(pix []byte, width, height int) TextureID
	// DeleteTexture releases a handle. Using it afterwards is undefined.
	DeleteTexture(id TextureID)
	// DrawTexture maps the texQuad region of a texture onto coords.
	DrawTexture(coords, texQuad Quad, tint Color, id TextureID)

	DrawTriangle(points [6]float64, colors [3]Color)
	DrawQuad(coords Quad, colors [4]Color)
	DrawLine(x1, y1, x2, y2, width float64, colors [4]Color)
	DrawEllipse(x, y, rx, ry float64, sectors int, c Color)
}

// Platform owns the OS window and pumps frames into a Window until it
// closes. EbitenPlatform is the default.
type Platform interface {
	// Run blocks until Close is called or the user quits. Each tick calls
	// BeginTick, then the input callbacks, then UpdateFrame. RenderFrame
	// follows whenever the platform draws.
	Run(w *Window) error
	// Close requests that Run return after the current frame.
	Close()
	// DisplaySize reports the size of the primary display.
	DisplaySize() (width, height int)
}
