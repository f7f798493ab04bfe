package petal

import (
	"errors"
	"fmt"
	"strings"
)

// Vec2 is a 2D point used for tile placements, polygon points and positions.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Quad holds four (x, y) points in top-left, top-right, bottom-right,
// bottom-left order.
type Quad [8]float64

// Point returns the i-th corner of the quad.
func (q Quad) Point(i int) (x, y float64) {
	return q[i*2], q[i*2+1]
}

// TextureID is an opaque handle issued by a Renderer. Zero means "not created".
type TextureID uint32

// FlipMode mirrors the sampling order of a textured quad.
type FlipMode uint8

const (
	FlipNone       FlipMode = iota // no mirroring
	FlipHorizontal                 // mirror across the vertical axis
	FlipVertical                   // mirror across the horizontal axis
	FlipBoth                       // mirror across both axes
)

func (f FlipMode) horizontal() bool { return f == FlipHorizontal || f == FlipBoth }
func (f FlipMode) vertical() bool   { return f == FlipVertical || f == FlipBoth }

func (f FlipMode) String() string {
	switch f {
	case FlipNone:
		return "none"
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	case FlipBoth:
		return "both"
	default:
		return fmt.Sprintf("FlipMode(%d)", uint8(f))
	}
}

// ParseFlipMode maps "", "none", "horizontal", "vertical" and "both" to a FlipMode.
func ParseFlipMode(s string) (FlipMode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return FlipNone, nil
	case "horizontal":
		return FlipHorizontal, nil
	case "vertical":
		return FlipVertical, nil
	case "both":
		return FlipBoth, nil
	}
	return FlipNone, fmt.Errorf("petal: unknown flip mode %q", s)
}

// Construction and usage errors. Callers test them with errors.Is.
var (
	ErrInvalidColor     = errors.New("petal: invalid color")
	ErrColorCount       = errors.New("petal: wrong number of colors for shape")
	ErrUnknownEvent     = errors.New("petal: unknown event category")
	ErrWindowShown      = errors.New("petal: Window.Show called multiple times")
	ErrNotReady         = errors.New("petal: drawing before the window is ready")
	ErrUnknownAnimation = errors.New("petal: unknown animation")
	ErrFlipBounds       = errors.New("petal: sprite width and height required to flip")
	ErrUnknownTile      = errors.New("petal: unknown tile")
	ErrImageNotFound    = errors.New("petal: cannot find image file")
	ErrInvalidImage     = errors.New("petal: failed to load image file")
	ErrFontNotFound     = errors.New("petal: cannot find font file")
	ErrAudioNotFound    = errors.New("petal: cannot find audio file")
	ErrInvalidGeometry  = errors.New("petal: invalid geometry")
)
