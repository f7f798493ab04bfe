package petal

// Renderable is anything that can sit in a Window's depth-ordered scene
// list. Implementations embed Base, which supplies depth, color and
// window registration.
type Renderable interface {
	// Z is the draw-order key. Lower values draw first.
	Z() float64
	// Contains reports whether the point lies inside the object.
	Contains(x, y float64) bool
	// Render draws the object for the current frame.
	Render(r Renderer)

	base() *Base
}

// Base carries the state shared by every Renderable. Embed it by value.
type Base struct {
	z        float64
	color    ColorSet
	vertices int // 3 or 4 allows per-vertex colors

	window *Window
	self   Renderable
}

func (b *Base) base() *Base { return b }

func (b *Base) init(z float64, c ColorSet, vertices int) error {
	if err := c.check(vertices); err != nil {
		return err
	}
	if c.perVertex && vertices == 0 {
		return ErrColorCount
	}
	b.z = z
	b.color = c
	b.vertices = vertices
	return nil
}

// Z returns the depth.
func (b *Base) Z() float64 { return b.z }

// SetZ changes the depth. When the object is in a window it is re-inserted
// so the scene list stays ordered.
func (b *Base) SetZ(z float64) {
	w, self := b.window, b.self
	if w == nil {
		b.z = z
		return
	}
	w.Remove(self)
	b.z = z
	w.Add(self)
}

// Color returns the object's color set.
func (b *Base) Color() ColorSet { return b.color }

// SetColor replaces the color set. A per-vertex set must match the shape's
// vertex count.
func (b *Base) SetColor(c ColorSet) error {
	if err := c.check(b.vertices); err != nil {
		return err
	}
	if c.perVertex && b.vertices == 0 {
		return ErrColorCount
	}
	b.color = c
	return nil
}

// Opacity returns the alpha of the first color.
func (b *Base) Opacity() float64 { return b.color.Opacity() }

// SetOpacity sets the alpha of every color.
func (b *Base) SetOpacity(a float64) { b.color = b.color.WithOpacity(a) }

// Remove takes the object out of the window it was added to. It reports
// false when the object is in no window.
func (b *Base) Remove() bool {
	if b.window == nil {
		return false
	}
	return b.window.Remove(b.self)
}

// Window returns the window the object is registered with, or nil.
func (b *Base) Window() *Window { return b.window }

func (b *Base) attach(w *Window, self Renderable) {
	b.window = w
	b.self = self
}

func (b *Base) detach() {
	b.window = nil
	b.self = nil
}

// Positioner is implemented by renderables placed by a single (x, y) point.
type Positioner interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
}
