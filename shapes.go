package petal

import "math"

// --- Quad ---

// QuadConfig places a four-point polygon. A zero config yields a 100x100
// square at the origin. Points go clockwise from the top-left.
type QuadConfig struct {
	X1, Y1, X2, Y2, X3, Y3, X4, Y4 float64
	Z                              float64
	Color                          ColorSet
}

// QuadShape is a filled four-point polygon.
type QuadShape struct {
	Base
	X1, Y1, X2, Y2, X3, Y3, X4, Y4 float64
}

// NewQuad creates a quad. A per-vertex color set must have four colors.
func NewQuad(cfg QuadConfig) (*QuadShape, error) {
	if allZero(cfg.X1, cfg.Y1, cfg.X2, cfg.Y2, cfg.X3, cfg.Y3, cfg.X4, cfg.Y4) {
		cfg.X2, cfg.X3, cfg.Y3, cfg.Y4 = 100, 100, 100, 100
	}
	q := &QuadShape{
		X1: cfg.X1, Y1: cfg.Y1, X2: cfg.X2, Y2: cfg.Y2,
		X3: cfg.X3, Y3: cfg.Y3, X4: cfg.X4, Y4: cfg.Y4,
	}
	if err := q.init(cfg.Z, cfg.Color, 4); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *QuadShape) coords() Quad {
	return Quad{q.X1, q.Y1, q.X2, q.Y2, q.X3, q.Y3, q.X4, q.Y4}
}

// Contains reports whether (x, y) lies inside the quad.
func (q *QuadShape) Contains(x, y float64) bool {
	return quadContains(q.coords(), x, y)
}

// Render draws the quad.
func (q *QuadShape) Render(r Renderer) {
	r.DrawQuad(q.coords(), q.color.quad())
}

// --- Rectangle ---

// RectangleConfig places an axis-aligned rectangle. Zero Width and Height
// default to 200x100.
type RectangleConfig struct {
	X, Y, Z       float64
	Width, Height float64
	Color         ColorSet
}

// Rectangle is a filled axis-aligned rectangle.
type Rectangle struct {
	Base
	X, Y          float64
	Width, Height float64
}

// NewRectangle creates a rectangle. A per-vertex color set must have four
// colors.
func NewRectangle(cfg RectangleConfig) (*Rectangle, error) {
	if cfg.Width == 0 {
		cfg.Width = 200
	}
	if cfg.Height == 0 {
		cfg.Height = 100
	}
	r := &Rectangle{X: cfg.X, Y: cfg.Y, Width: cfg.Width, Height: cfg.Height}
	if err := r.init(cfg.Z, cfg.Color, 4); err != nil {
		return nil, err
	}
	return r, nil
}

// Position returns the top-left corner.
func (r *Rectangle) Position() (float64, float64) { return r.X, r.Y }

// SetPosition moves the top-left corner.
func (r *Rectangle) SetPosition(x, y float64) { r.X, r.Y = x, y }

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (r *Rectangle) Contains(x, y float64) bool {
	return Rect{r.X, r.Y, r.Width, r.Height}.Contains(x, y)
}

// Render draws the rectangle.
func (r *Rectangle) Render(rr Renderer) {
	rr.DrawQuad(rectQuad(r.X, r.Y, r.Width, r.Height), r.color.quad())
}

func rectQuad(x, y, w, h float64) Quad {
	return Quad{x, y, x + w, y, x + w, y + h, x, y + h}
}

// --- Square ---

// SquareConfig places a square. Zero Size defaults to 100.
type SquareConfig struct {
	X, Y, Z float64
	Size    float64
	Color   ColorSet
}

// Square is a Rectangle whose sides stay equal.
type Square struct {
	Rectangle
}

// NewSquare creates a square.
func NewSquare(cfg SquareConfig) (*Square, error) {
	if cfg.Size == 0 {
		cfg.Size = 100
	}
	r, err := NewRectangle(RectangleConfig{
		X: cfg.X, Y: cfg.Y, Z: cfg.Z,
		Width: cfg.Size, Height: cfg.Size,
		Color: cfg.Color,
	})
	if err != nil {
		return nil, err
	}
	return &Square{Rectangle: *r}, nil
}

// Size returns the side length.
func (s *Square) Size() float64 { return s.Width }

// SetSize sets both sides.
func (s *Square) SetSize(size float64) {
	s.Width, s.Height = size, size
}

// --- Triangle ---

// TriangleConfig places a triangle. A zero config yields (50,0), (100,100),
// (0,100).
type TriangleConfig struct {
	X1, Y1, X2, Y2, X3, Y3 float64
	Z                      float64
	Color                  ColorSet
}

// Triangle is a filled triangle.
type Triangle struct {
	Base
	X1, Y1, X2, Y2, X3, Y3 float64
}

// NewTriangle creates a triangle. A per-vertex color set must have three
// colors.
func NewTriangle(cfg TriangleConfig) (*Triangle, error) {
	if allZero(cfg.X1, cfg.Y1, cfg.X2, cfg.Y2, cfg.X3, cfg.Y3) {
		cfg.X1, cfg.Y1 = 50, 0
		cfg.X2, cfg.Y2 = 100, 100
		cfg.X3, cfg.Y3 = 0, 100
	}
	t := &Triangle{X1: cfg.X1, Y1: cfg.Y1, X2: cfg.X2, Y2: cfg.Y2, X3: cfg.X3, Y3: cfg.Y3}
	if err := t.init(cfg.Z, cfg.Color, 3); err != nil {
		return nil, err
	}
	return t, nil
}

// Contains reports whether (x, y) lies inside the triangle.
func (t *Triangle) Contains(x, y float64) bool {
	self := triangleArea(t.X1, t.Y1, t.X2, t.Y2, t.X3, t.Y3)
	question := triangleArea(t.X1, t.Y1, t.X2, t.Y2, x, y) +
		triangleArea(t.X2, t.Y2, t.X3, t.Y3, x, y) +
		triangleArea(t.X3, t.Y3, t.X1, t.Y1, x, y)
	return areaEqual(question, self)
}

// Render draws the triangle.
func (t *Triangle) Render(r Renderer) {
	r.DrawTriangle([6]float64{t.X1, t.Y1, t.X2, t.Y2, t.X3, t.Y3}, t.color.triangle())
}

// --- Line ---

// LineConfig places a line segment. A zero config yields (0,0)-(100,100)
// with width 2.
type LineConfig struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Z              float64
	Color          ColorSet
}

// Line is a thick line segment drawn as a quad.
type Line struct {
	Base
	X1, Y1, X2, Y2 float64
	Width          float64
}

// NewLine creates a line. A per-vertex color set must have four colors.
func NewLine(cfg LineConfig) (*Line, error) {
	if allZero(cfg.X1, cfg.Y1, cfg.X2, cfg.Y2) {
		cfg.X2, cfg.Y2 = 100, 100
	}
	if cfg.Width == 0 {
		cfg.Width = 2
	}
	l := &Line{X1: cfg.X1, Y1: cfg.Y1, X2: cfg.X2, Y2: cfg.Y2, Width: cfg.Width}
	if err := l.init(cfg.Z, cfg.Color, 4); err != nil {
		return nil, err
	}
	return l, nil
}

// Length returns the distance between the endpoints.
func (l *Line) Length() float64 {
	return math.Hypot(l.X2-l.X1, l.Y2-l.Y1)
}

// Contains reports whether (x, y) lies within the line's width, between
// its endpoints.
func (l *Line) Contains(x, y float64) bool {
	length := l.Length()
	if length == 0 {
		return false
	}
	return math.Hypot(x-l.X1, y-l.Y1) <= length &&
		math.Hypot(x-l.X2, y-l.Y2) <= length &&
		math.Abs((l.Y2-l.Y1)*x-(l.X2-l.X1)*y+l.X2*l.Y1-l.Y2*l.X1)/length <= 0.5*l.Width
}

// Render draws the line.
func (l *Line) Render(r Renderer) {
	r.DrawLine(l.X1, l.Y1, l.X2, l.Y2, l.Width, l.color.quad())
}

// --- Circle ---

// CircleConfig places a circle. A zero config yields radius 50 with 30
// sectors at (25, 25).
type CircleConfig struct {
	X, Y, Z float64
	Radius  float64
	Sectors int
	Color   Color
}

// Circle is a filled circle approximated by Sectors triangles.
type Circle struct {
	Base
	X, Y    float64
	Radius  float64
	Sectors int
}

// NewCircle creates a circle. A zero Color is white.
func NewCircle(cfg CircleConfig) (*Circle, error) {
	if cfg.X == 0 && cfg.Y == 0 {
		cfg.X, cfg.Y = 25, 25
	}
	if cfg.Radius == 0 {
		cfg.Radius = 50
	}
	if cfg.Sectors == 0 {
		cfg.Sectors = 30
	}
	if cfg.Color == (Color{}) {
		cfg.Color = ColorWhite
	}
	c := &Circle{X: cfg.X, Y: cfg.Y, Radius: cfg.Radius, Sectors: cfg.Sectors}
	if err := c.init(cfg.Z, Solid(cfg.Color), 0); err != nil {
		return nil, err
	}
	return c, nil
}

// Position returns the center.
func (c *Circle) Position() (float64, float64) { return c.X, c.Y }

// SetPosition moves the center.
func (c *Circle) SetPosition(x, y float64) { c.X, c.Y = x, y }

// Contains reports whether (x, y) lies inside or on the circle.
func (c *Circle) Contains(x, y float64) bool {
	return math.Hypot(x-c.X, y-c.Y) <= c.Radius
}

// Render draws the circle.
func (c *Circle) Render(r Renderer) {
	r.DrawEllipse(c.X, c.Y, c.Radius, c.Radius, c.Sectors, c.color.At(0))
}

// --- Pixel ---

// PixelConfig places a square pixel of side Size (default 1).
type PixelConfig struct {
	X, Y, Z float64
	Size    float64
	Color   ColorSet
}

// Pixel is a small filled square.
type Pixel struct {
	Base
	X, Y float64
	Size float64
}

// NewPixel creates a pixel.
func NewPixel(cfg PixelConfig) (*Pixel, error) {
	if cfg.Size == 0 {
		cfg.Size = 1
	}
	p := &Pixel{X: cfg.X, Y: cfg.Y, Size: cfg.Size}
	if err := p.init(cfg.Z, cfg.Color, 4); err != nil {
		return nil, err
	}
	return p, nil
}

// Position returns the top-left corner.
func (p *Pixel) Position() (float64, float64) { return p.X, p.Y }

// SetPosition moves the top-left corner.
func (p *Pixel) SetPosition(x, y float64) { p.X, p.Y = x, y }

// Contains reports whether (x, y) lies inside the pixel.
func (p *Pixel) Contains(x, y float64) bool {
	return Rect{p.X, p.Y, p.Size, p.Size}.Contains(x, y)
}

// Render draws the pixel.
func (p *Pixel) Render(r Renderer) {
	r.DrawQuad(rectQuad(p.X, p.Y, p.Size, p.Size), p.color.quad())
}

// --- Geometry helpers ---

func triangleArea(x1, y1, x2, y2, x3, y3 float64) float64 {
	return math.Abs(x1*y2+x2*y3+x3*y1-x3*y2-x1*y3-x2*y1) / 2
}

func quadContains(q Quad, x, y float64) bool {
	self := triangleArea(q[0], q[1], q[2], q[3], q[4], q[5]) +
		triangleArea(q[0], q[1], q[4], q[5], q[6], q[7])
	question := triangleArea(q[0], q[1], q[2], q[3], x, y) +
		triangleArea(q[2], q[3], q[4], q[5], x, y) +
		triangleArea(q[4], q[5], q[6], q[7], x, y) +
		triangleArea(q[6], q[7], q[0], q[1], x, y)
	return areaEqual(question, self)
}

func allZero(vs ...float64) bool {
	for _, v := range vs {
		if v != 0 {
			return false
		}
	}
	return true
}

func areaEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
