package petal

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices bounds one DrawTriangles32 submission.
const maxBatchVertices = 1 << 16

// EbitenRenderer implements Renderer on an ebiten target image. Consecutive
// draws sampling the same image are coalesced into one DrawTriangles32
// call; Flush submits whatever is pending.
type EbitenRenderer struct {
	target *ebiten.Image

	textures map[TextureID]*ebiten.Image
	nextID   TextureID

	batchSrc *ebiten.Image
	verts    []ebiten.Vertex
	inds     []uint32
}

// NewEbitenRenderer returns a renderer with no target. Call Begin before
// drawing.
func NewEbitenRenderer() *EbitenRenderer {
	return &EbitenRenderer{textures: make(map[TextureID]*ebiten.Image)}
}

// Begin directs subsequent draws at target.
func (r *EbitenRenderer) Begin(target *ebiten.Image) {
	r.Flush()
	r.target = target
}

// --- White image (no sync.Once; petal is single-threaded) ---

var whiteImage *ebiten.Image

// ensureWhite returns the 1x1 white region untextured primitives sample.
// It is cut from a 3x3 image so filtering never reaches an edge.
func ensureWhite() *ebiten.Image {
	if whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteImage
}

// Clear fills the target with c.
func (r *EbitenRenderer) Clear(c Color) {
	r.Flush()
	if r.target != nil {
		r.target.Fill(c.toRGBA())
	}
}

// CreateTexture uploads premultiplied RGBA pixels.
func (r *EbitenRenderer) CreateTexture(pix []byte, width, height int) TextureID {
	img := ebiten.NewImage(width, height)
	img.WritePixels(pix)
	r.nextID++
	r.textures[r.nextID] = img
	return r.nextID
}

// DeleteTexture releases the image behind id.
func (r *EbitenRenderer) DeleteTexture(id TextureID) {
	img, ok := r.textures[id]
	if !ok {
		return
	}
	if img == r.batchSrc {
		r.Flush()
	}
	img.Deallocate()
	delete(r.textures, id)
}

// TextureCount returns the number of live textures.
func (r *EbitenRenderer) TextureCount() int { return len(r.textures) }

// DrawTexture maps the normalized texQuad region of a texture onto coords.
func (r *EbitenRenderer) DrawTexture(coords, texQuad Quad, tint Color, id TextureID) {
	src, ok := r.textures[id]
	if !ok {
		return
	}
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	var uv Quad
	for i := 0; i < 4; i++ {
		uv[i*2] = texQuad[i*2] * w
		uv[i*2+1] = texQuad[i*2+1] * h
	}
	r.appendQuad(src, coords, uv, [4]Color{tint, tint, tint, tint})
}

// DrawTriangle draws a filled triangle with per-vertex colors.
func (r *EbitenRenderer) DrawTriangle(p [6]float64, colors [3]Color) {
	white := ensureWhite()
	r.use(white, 3)
	base := uint32(len(r.verts))
	for i := 0; i < 3; i++ {
		r.verts = append(r.verts, whiteVertex(p[i*2], p[i*2+1], colors[i]))
	}
	r.inds = append(r.inds, base, base+1, base+2)
}

// DrawQuad draws a filled quad with per-vertex colors.
func (r *EbitenRenderer) DrawQuad(coords Quad, colors [4]Color) {
	white := ensureWhite()
	uv := Quad{1, 1, 2, 1, 2, 2, 1, 2}
	r.appendQuad(white, coords, uv, colors)
}

// DrawLine draws a segment as a quad of the given width.
func (r *EbitenRenderer) DrawLine(x1, y1, x2, y2, width float64, colors [4]Color) {
	q, ok := lineQuad(x1, y1, x2, y2, width)
	if !ok {
		return
	}
	r.DrawQuad(q, colors)
}

// DrawEllipse draws a filled ellipse as a triangle fan.
func (r *EbitenRenderer) DrawEllipse(x, y, rx, ry float64, sectors int, c Color) {
	if sectors < 3 {
		sectors = 3
	}
	white := ensureWhite()
	r.use(white, sectors+1)
	center := uint32(len(r.verts))
	r.verts = append(r.verts, whiteVertex(x, y, c))
	for i := 0; i < sectors; i++ {
		a := 2 * math.Pi * float64(i) / float64(sectors)
		r.verts = append(r.verts, whiteVertex(x+rx*math.Cos(a), y+ry*math.Sin(a), c))
	}
	for i := 0; i < sectors; i++ {
		next := (i + 1) % sectors
		r.inds = append(r.inds, center, center+1+uint32(i), center+1+uint32(next))
	}
}

// Flush submits the pending batch.
func (r *EbitenRenderer) Flush() {
	if len(r.verts) == 0 || r.target == nil || r.batchSrc == nil {
		r.verts = r.verts[:0]
		r.inds = r.inds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	r.target.DrawTriangles32(r.verts, r.inds, r.batchSrc, &op)
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// pending returns the number of vertices awaiting Flush.
func (r *EbitenRenderer) pending() int { return len(r.verts) }

// use flushes if the batch samples a different image or would overflow.
func (r *EbitenRenderer) use(src *ebiten.Image, n int) {
	if src != r.batchSrc || len(r.verts)+n > maxBatchVertices {
		r.Flush()
		r.batchSrc = src
	}
}

// appendQuad adds coords (TL, TR, BR, BL) sampling uv in source pixels.
func (r *EbitenRenderer) appendQuad(src *ebiten.Image, coords, uv Quad, colors [4]Color) {
	r.use(src, 4)
	base := uint32(len(r.verts))
	for i := 0; i < 4; i++ {
		cr, cg, cb, ca := premultiplied(colors[i])
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   float32(coords[i*2]),
			DstY:   float32(coords[i*2+1]),
			SrcX:   float32(uv[i*2]),
			SrcY:   float32(uv[i*2+1]),
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	// Two triangles: TL-TR-BR, TL-BR-BL
	r.inds = append(r.inds,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
}

func whiteVertex(x, y float64, c Color) ebiten.Vertex {
	cr, cg, cb, ca := premultiplied(c)
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: cr,
		ColorG: cg,
		ColorB: cb,
		ColorA: ca,
	}
}

func premultiplied(c Color) (r, g, b, a float32) {
	a = float32(clamp01(c.A))
	return float32(clamp01(c.R)) * a, float32(clamp01(c.G)) * a, float32(clamp01(c.B)) * a, a
}
