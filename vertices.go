package petal

import "math"

// Crop selects a sub-region of a source image, in source pixel units.
type Crop struct {
	X, Y, Width, Height     float64
	ImageWidth, ImageHeight float64
}

// Vertices converts a placed rectangle into a destination quad and a
// texture quad. Flip is folded into the geometry at construction and both
// quads are computed at most once. Build a new value when geometry changes.
type Vertices struct {
	x, y, width, height float64
	rotate              float64
	rx, ry              float64 // rotation center
	crop                Crop
	hasCrop             bool

	coords    Quad
	texCoords Quad
	haveCoord bool
	haveTex   bool
}

// NewVertices returns the geometry for a rectangle at (x, y) of the given
// size, rotated by rotate degrees about its center. crop may be nil.
func NewVertices(x, y, width, height, rotate float64, crop *Crop, flip FlipMode) *Vertices {
	v := &Vertices{
		x: x, y: y, width: width, height: height,
		rotate: rotate,
		rx:     x + width/2,
		ry:     y + height/2,
	}
	if crop != nil {
		v.crop = *crop
		v.hasCrop = true
	}
	if flip.horizontal() {
		v.x += v.width
		v.width = -v.width
	}
	if flip.vertical() {
		v.y += v.height
		v.height = -v.height
	}
	return v
}

// Coordinates returns the destination corners in TL, TR, BR, BL order.
func (v *Vertices) Coordinates() Quad {
	if v.haveCoord {
		return v.coords
	}
	x1, y1 := v.x, v.y
	x2, y2 := v.x+v.width, v.y
	x3, y3 := v.x+v.width, v.y+v.height
	x4, y4 := v.x, v.y+v.height
	if v.rotate != 0 {
		sin, cos := math.Sincos(v.rotate * math.Pi / 180)
		x1, y1 = v.rotatePoint(x1, y1, sin, cos)
		x2, y2 = v.rotatePoint(x2, y2, sin, cos)
		x3, y3 = v.rotatePoint(x3, y3, sin, cos)
		x4, y4 = v.rotatePoint(x4, y4, sin, cos)
	}
	v.coords = Quad{x1, y1, x2, y2, x3, y3, x4, y4}
	v.haveCoord = true
	return v.coords
}

func (v *Vertices) rotatePoint(x, y, sin, cos float64) (float64, float64) {
	x -= v.rx
	y -= v.ry
	return x*cos - y*sin + v.rx, x*sin + y*cos + v.ry
}

// TextureCoordinates returns normalized (u, v) corners matching Coordinates.
// Without a crop this is the full unit square.
func (v *Vertices) TextureCoordinates() Quad {
	if v.haveTex {
		return v.texCoords
	}
	if !v.hasCrop {
		v.texCoords = Quad{0, 0, 1, 0, 1, 1, 0, 1}
	} else {
		c := v.crop
		tx1 := c.X / c.ImageWidth
		ty1 := c.Y / c.ImageHeight
		tx2 := tx1 + c.Width/c.ImageWidth
		ty2 := ty1 + c.Height/c.ImageHeight
		v.texCoords = Quad{tx1, ty1, tx2, ty1, tx2, ty2, tx1, ty2}
	}
	v.haveTex = true
	return v.texCoords
}
