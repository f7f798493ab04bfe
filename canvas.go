package petal

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// CanvasConfig configures an offscreen drawing surface.
type CanvasConfig struct {
	X, Y, Z       float64
	Width, Height int
	Rotate        float64
	// Fill is the initial background. The zero value is transparent.
	Fill Color
	// Color tints the canvas when it is drawn.
	Color ColorSet
	// ManualUpdate stops draw calls from republishing the texture; call
	// Update when the picture is complete.
	ManualUpdate bool
}

// Canvas accumulates immediate-mode drawing into a CPU pixel buffer and
// draws it as a single texture.
type Canvas struct {
	Base
	X, Y   float64
	Rotate float64

	img     *image.RGBA
	raster  *vector.Rasterizer
	texture *Texture
	manual  bool
	dirty   bool
}

// NewCanvas creates a canvas. Width and Height must be positive.
func NewCanvas(cfg CanvasConfig) (*Canvas, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", ErrInvalidGeometry, cfg.Width, cfg.Height)
	}
	c := &Canvas{
		X:      cfg.X,
		Y:      cfg.Y,
		Rotate: cfg.Rotate,
		img:    image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		raster: vector.NewRasterizer(cfg.Width, cfg.Height),
		manual: cfg.ManualUpdate,
	}
	if err := c.init(cfg.Z, cfg.Color, 0); err != nil {
		return nil, err
	}
	c.Clear(cfg.Fill)
	c.Update()
	return c, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Image returns the pixel buffer. It is premultiplied RGBA.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Position returns the top-left corner.
func (c *Canvas) Position() (float64, float64) { return c.X, c.Y }

// SetPosition moves the top-left corner.
func (c *Canvas) SetPosition(x, y float64) { c.X, c.Y = x, y }

// Update republishes the pixel buffer as a new texture, deleting the old one.
func (c *Canvas) Update() {
	if c.texture != nil {
		c.texture.Delete()
	}
	pix := make([]byte, len(c.img.Pix))
	copy(pix, c.img.Pix)
	c.texture = NewTexture(pix, c.Width(), c.Height())
	c.dirty = false
}

func (c *Canvas) changed() {
	c.dirty = true
}

// Clear overwrites every pixel with fill.
func (c *Canvas) Clear(fill Color) {
	col := fill.toRGBA()
	pix := c.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = col.R, col.G, col.B, col.A
	}
	c.changed()
}

// --- Fills ---

// FillTriangle fills a triangle. A per-vertex set blends its three colors.
func (c *Canvas) FillTriangle(x1, y1, x2, y2, x3, y3 float64, colors ColorSet) error {
	if err := colors.check(3); err != nil {
		return err
	}
	pts := [6]float64{x1, y1, x2, y2, x3, y3}
	if colors.perVertex {
		c.blendTriangle(pts, colors.triangle())
	} else {
		c.fillPath(pts[:], colors.At(0))
	}
	c.changed()
	return nil
}

// FillQuad fills a quad. A per-vertex set blends its four colors.
func (c *Canvas) FillQuad(q Quad, colors ColorSet) error {
	if err := colors.check(4); err != nil {
		return err
	}
	if colors.perVertex {
		cs := colors.quad()
		c.blendTriangle([6]float64{q[0], q[1], q[2], q[3], q[4], q[5]}, [3]Color{cs[0], cs[1], cs[2]})
		c.blendTriangle([6]float64{q[0], q[1], q[4], q[5], q[6], q[7]}, [3]Color{cs[0], cs[2], cs[3]})
	} else {
		c.fillPath(q[:], colors.At(0))
	}
	c.changed()
	return nil
}

// FillRectangle fills an axis-aligned rectangle.
func (c *Canvas) FillRectangle(x, y, width, height float64, colors ColorSet) error {
	return c.FillQuad(rectQuad(x, y, width, height), colors)
}

// FillPolygon fills a convex polygon given as x, y pairs. A per-vertex set
// needs one color per point and is blended as a triangle fan.
func (c *Canvas) FillPolygon(coords []float64, colors ColorSet) error {
	if len(coords) < 6 || len(coords)%2 != 0 {
		return fmt.Errorf("%w: polygon needs at least 3 points, got %d values", ErrInvalidGeometry, len(coords))
	}
	n := len(coords) / 2
	if !colors.perVertex {
		c.fillPath(coords, colors.At(0))
		c.changed()
		return nil
	}
	if len(colors.colors) != n {
		return fmt.Errorf("%w: got %d, polygon has %d vertices", ErrColorCount, len(colors.colors), n)
	}
	for i := 1; i < n-1; i++ {
		c.blendTriangle(
			[6]float64{coords[0], coords[1], coords[i*2], coords[i*2+1], coords[i*2+2], coords[i*2+3]},
			[3]Color{colors.colors[0], colors.colors[i], colors.colors[i+1]},
		)
	}
	c.changed()
	return nil
}

// FillCircle fills a circle approximated by sectors segments (default 30).
func (c *Canvas) FillCircle(x, y, radius float64, sectors int, col Color) {
	c.FillEllipse(x, y, radius, radius, sectors, col)
}

// FillEllipse fills an ellipse approximated by sectors segments (default 30).
func (c *Canvas) FillEllipse(x, y, rx, ry float64, sectors int, col Color) {
	c.fillPath(ellipsePoints(x, y, rx, ry, sectors), col)
	c.changed()
}

// --- Strokes ---

// DrawLine draws a segment of the given width. A per-vertex set needs four
// colors, one per corner of the line's quad.
func (c *Canvas) DrawLine(x1, y1, x2, y2, width float64, colors ColorSet) error {
	if err := colors.check(4); err != nil {
		return err
	}
	q, ok := lineQuad(x1, y1, x2, y2, width)
	if !ok {
		return nil
	}
	return c.FillQuad(q, colors)
}

// DrawPolyline strokes a path given as x, y pairs. With closed set the last
// point joins the first.
func (c *Canvas) DrawPolyline(coords []float64, stroke float64, col Color, closed bool) error {
	if len(coords) < 4 || len(coords)%2 != 0 {
		return fmt.Errorf("%w: polyline needs at least 2 points, got %d values", ErrInvalidGeometry, len(coords))
	}
	if closed && len(coords) < 6 {
		return fmt.Errorf("%w: closed polyline needs at least 3 points", ErrInvalidGeometry)
	}
	c.strokePath(coords, stroke, col, closed)
	c.changed()
	return nil
}

// DrawTriangle strokes a triangle outline.
func (c *Canvas) DrawTriangle(x1, y1, x2, y2, x3, y3, stroke float64, col Color) {
	c.strokePath([]float64{x1, y1, x2, y2, x3, y3}, stroke, col, true)
	c.changed()
}

// DrawQuad strokes a quad outline.
func (c *Canvas) DrawQuad(q Quad, stroke float64, col Color) {
	c.strokePath(q[:], stroke, col, true)
	c.changed()
}

// DrawRectangle strokes a rectangle outline.
func (c *Canvas) DrawRectangle(x, y, width, height, stroke float64, col Color) {
	q := rectQuad(x, y, width, height)
	c.strokePath(q[:], stroke, col, true)
	c.changed()
}

// DrawCircle strokes a circle outline.
func (c *Canvas) DrawCircle(x, y, radius float64, sectors int, stroke float64, col Color) {
	c.DrawEllipse(x, y, radius, radius, sectors, stroke, col)
}

// DrawEllipse strokes an ellipse outline.
func (c *Canvas) DrawEllipse(x, y, rx, ry float64, sectors int, stroke float64, col Color) {
	c.strokePath(ellipsePoints(x, y, rx, ry, sectors), stroke, col, true)
	c.changed()
}

// DrawPixmap copies a pixmap region onto the canvas, scaled to width x
// height at (x, y). A nil crop uses the whole pixmap; zero width or height
// uses the crop size.
func (c *Canvas) DrawPixmap(p *Pixmap, x, y, width, height float64, crop *Rect) {
	sr := p.img.Bounds()
	if crop != nil {
		sr = image.Rect(
			int(crop.X), int(crop.Y),
			int(crop.X+crop.Width), int(crop.Y+crop.Height),
		).Intersect(sr)
	}
	if width == 0 {
		width = float64(sr.Dx())
	}
	if height == 0 {
		height = float64(sr.Dy())
	}
	dr := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+width)), int(math.Round(y+height)),
	)
	xdraw.NearestNeighbor.Scale(c.img, dr, p.img, sr, xdraw.Over, nil)
	c.changed()
}

// --- Renderable ---

// Contains reports whether (x, y) lies inside the unrotated bounds.
func (c *Canvas) Contains(x, y float64) bool {
	return Rect{c.X, c.Y, float64(c.Width()), float64(c.Height())}.Contains(x, y)
}

// Render publishes pending drawing unless updates are manual, then draws
// the canvas texture.
func (c *Canvas) Render(r Renderer) {
	if c.dirty && !c.manual {
		c.Update()
	}
	v := NewVertices(c.X, c.Y, float64(c.Width()), float64(c.Height()), c.Rotate, nil, FlipNone)
	c.texture.Draw(r, v.Coordinates(), v.TextureCoordinates(), c.color.At(0))
}

// --- Raster helpers ---

// fillPath fills the closed polygon with anti-aliased coverage.
func (c *Canvas) fillPath(coords []float64, col Color) {
	z := c.raster
	z.Reset(c.Width(), c.Height())
	z.DrawOp = xdraw.Over
	addPolygon(z, coords)
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col.toRGBA()), image.Point{})
}

func addPolygon(z *vector.Rasterizer, coords []float64) {
	z.MoveTo(float32(coords[0]), float32(coords[1]))
	for i := 2; i+1 < len(coords); i += 2 {
		z.LineTo(float32(coords[i]), float32(coords[i+1]))
	}
	z.ClosePath()
}

// maxMiter caps miter length relative to half the stroke.
const maxMiter = 4

// strokePath rasterizes one quad per segment. Quads meet at mitered
// corners so neighbours neither overlap nor leave gaps.
func (c *Canvas) strokePath(coords []float64, stroke float64, col Color, closed bool) {
	n := len(coords) / 2
	if n < 2 || stroke <= 0 {
		return
	}
	half := stroke / 2
	offsets := make([]Vec2, n)
	for i := 0; i < n; i++ {
		prev, next := i-1, i+1
		if closed {
			prev, next = (i+n-1)%n, (i+1)%n
		}
		var nIn, nOut Vec2
		haveIn, haveOut := prev >= 0, next < n
		if haveIn {
			nIn = segmentNormal(coords, prev, i)
		}
		if haveOut {
			nOut = segmentNormal(coords, i, next)
		}
		switch {
		case haveIn && haveOut:
			m := Vec2{nIn.X + nOut.X, nIn.Y + nOut.Y}
			l := math.Hypot(m.X, m.Y)
			if l < 1e-9 {
				offsets[i] = Vec2{nOut.X * half, nOut.Y * half}
				continue
			}
			m.X, m.Y = m.X/l, m.Y/l
			scale := half / math.Max(m.X*nOut.X+m.Y*nOut.Y, 1/maxMiter)
			offsets[i] = Vec2{m.X * scale, m.Y * scale}
		case haveIn:
			offsets[i] = Vec2{nIn.X * half, nIn.Y * half}
		default:
			offsets[i] = Vec2{nOut.X * half, nOut.Y * half}
		}
	}

	z := c.raster
	z.Reset(c.Width(), c.Height())
	z.DrawOp = xdraw.Over
	segments := n - 1
	if closed {
		segments = n
	}
	for s := 0; s < segments; s++ {
		a, b := s, (s+1)%n
		ax, ay := coords[a*2], coords[a*2+1]
		bx, by := coords[b*2], coords[b*2+1]
		oa, ob := offsets[a], offsets[b]
		addPolygon(z, []float64{
			ax + oa.X, ay + oa.Y,
			bx + ob.X, by + ob.Y,
			bx - ob.X, by - ob.Y,
			ax - oa.X, ay - oa.Y,
		})
	}
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col.toRGBA()), image.Point{})
}

func segmentNormal(coords []float64, a, b int) Vec2 {
	dx := coords[b*2] - coords[a*2]
	dy := coords[b*2+1] - coords[a*2+1]
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Vec2{}
	}
	return Vec2{-dy / l, dx / l}
}

// blendTriangle fills a triangle with colors interpolated across its
// vertices, sampling at pixel centers.
func (c *Canvas) blendTriangle(p [6]float64, cs [3]Color) {
	x1, y1, x2, y2, x3, y3 := p[0], p[1], p[2], p[3], p[4], p[5]
	den := (y2-y3)*(x1-x3) + (x3-x2)*(y1-y3)
	if den == 0 {
		return
	}
	b := c.img.Rect
	minX := max(int(math.Floor(min(x1, x2, x3))), b.Min.X)
	maxX := min(int(math.Ceil(max(x1, x2, x3))), b.Max.X)
	minY := max(int(math.Floor(min(y1, y2, y3))), b.Min.Y)
	maxY := min(int(math.Ceil(max(y1, y2, y3))), b.Max.Y)
	for py := minY; py < maxY; py++ {
		sy := float64(py) + 0.5
		for px := minX; px < maxX; px++ {
			sx := float64(px) + 0.5
			l1 := ((y2-y3)*(sx-x3) + (x3-x2)*(sy-y3)) / den
			l2 := ((y3-y1)*(sx-x3) + (x1-x3)*(sy-y3)) / den
			l3 := 1 - l1 - l2
			if l1 < 0 || l2 < 0 || l3 < 0 {
				continue
			}
			c.blendPixel(px, py, Color{
				R: l1*cs[0].R + l2*cs[1].R + l3*cs[2].R,
				G: l1*cs[0].G + l2*cs[1].G + l3*cs[2].G,
				B: l1*cs[0].B + l2*cs[1].B + l3*cs[2].B,
				A: l1*cs[0].A + l2*cs[1].A + l3*cs[2].A,
			})
		}
	}
}

// blendPixel composites col over the pixel at (x, y), source-over.
func (c *Canvas) blendPixel(x, y int, col Color) {
	src := col.toRGBA()
	inv := 255 - uint32(src.A)
	i := c.img.PixOffset(x, y)
	pix := c.img.Pix[i : i+4 : i+4]
	pix[0] = uint8(uint32(src.R) + uint32(pix[0])*inv/255)
	pix[1] = uint8(uint32(src.G) + uint32(pix[1])*inv/255)
	pix[2] = uint8(uint32(src.B) + uint32(pix[2])*inv/255)
	pix[3] = uint8(uint32(src.A) + uint32(pix[3])*inv/255)
}

func lineQuad(x1, y1, x2, y2, width float64) (Quad, bool) {
	l := math.Hypot(x2-x1, y2-y1)
	if l == 0 {
		return Quad{}, false
	}
	ox := -(y2 - y1) / l * width / 2
	oy := (x2 - x1) / l * width / 2
	return Quad{
		x1 + ox, y1 + oy,
		x2 + ox, y2 + oy,
		x2 - ox, y2 - oy,
		x1 - ox, y1 - oy,
	}, true
}

func ellipsePoints(x, y, rx, ry float64, sectors int) []float64 {
	if sectors <= 0 {
		sectors = 30
	}
	pts := make([]float64, 0, sectors*2)
	for i := 0; i < sectors; i++ {
		a := 2 * math.Pi * float64(i) / float64(sectors)
		pts = append(pts, x+rx*math.Cos(a), y+ry*math.Sin(a))
	}
	return pts
}
