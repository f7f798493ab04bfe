package petal

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{}

// namedColors is the clrs.cc palette. Note that "black" is a soft #111111.
var namedColors = map[string]string{
	"navy":    "#001f3f",
	"blue":    "#0074d9",
	"aqua":    "#7fdbff",
	"teal":    "#39cccc",
	"olive":   "#3d9970",
	"green":   "#2ecc40",
	"lime":    "#01ff70",
	"yellow":  "#ffdc00",
	"orange":  "#ff851b",
	"red":     "#ff4136",
	"brown":   "#663300",
	"fuchsia": "#f012be",
	"purple":  "#b10dc9",
	"maroon":  "#85144b",
	"white":   "#ffffff",
	"silver":  "#dddddd",
	"gray":    "#aaaaaa",
	"black":   "#111111",
}

// ParseColor accepts a palette keyword, "random", or a "#rrggbb" hex string.
// Alpha is always 1.
func ParseColor(s string) (Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "random" {
		return fromColorful(colorful.FastHappyColor()), nil
	}
	if hex, ok := namedColors[key]; ok {
		key = hex
	}
	if len(key) != 7 || key[0] != '#' {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	return fromColorful(c), nil
}

// MustParseColor is like ParseColor but panics on error. Use it for literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ColorFromSlice builds a color from exactly four components in [0, 1].
func ColorFromSlice(v []float64) (Color, error) {
	if len(v) != 4 {
		return Color{}, fmt.Errorf("%w: need 4 components, got %d", ErrInvalidColor, len(v))
	}
	for _, c := range v {
		if c < 0 || c > 1 {
			return Color{}, fmt.Errorf("%w: component %v out of range [0, 1]", ErrInvalidColor, c)
		}
	}
	return Color{v[0], v[1], v[2], v[3]}, nil
}

func fromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// WithAlpha returns a copy of c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// UnmarshalText parses any string ParseColor accepts, so colors can be
// written as "red" or "#ff8800" in config files.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// RGBA implements image/color.Color with alpha-premultiplied values.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

// Lerp interpolates between c and to by t.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
		A: c.A + (to.A-c.A)*t,
	}
}

// toRGBA converts a petal Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ColorSet is either one solid color or one color per vertex. The zero
// value is solid white.
type ColorSet struct {
	colors    []Color
	perVertex bool
}

// Solid returns a set that tints every vertex with c.
func Solid(c Color) ColorSet {
	return ColorSet{colors: []Color{c}}
}

// PerVertex returns a set with one color per vertex, in vertex order.
func PerVertex(cs ...Color) ColorSet {
	return ColorSet{colors: append([]Color(nil), cs...), perVertex: true}
}

// IsPerVertex reports whether the set carries one color per vertex.
func (s ColorSet) IsPerVertex() bool { return s.perVertex }

// Len returns the number of colors in the set.
func (s ColorSet) Len() int {
	if len(s.colors) == 0 {
		return 1
	}
	return len(s.colors)
}

// At returns the color for vertex i.
func (s ColorSet) At(i int) Color {
	switch {
	case len(s.colors) == 0:
		return ColorWhite
	case !s.perVertex:
		return s.colors[0]
	case i < len(s.colors):
		return s.colors[i]
	}
	return s.colors[len(s.colors)-1]
}

// check validates a per-vertex set against a shape with n vertices.
func (s ColorSet) check(n int) error {
	if !s.perVertex {
		return nil
	}
	if (n != 3 && n != 4) || len(s.colors) != n {
		return fmt.Errorf("%w: got %d, shape has %d vertices", ErrColorCount, len(s.colors), n)
	}
	return nil
}

// Opacity returns the alpha of the first color.
func (s ColorSet) Opacity() float64 {
	return s.At(0).A
}

// WithOpacity returns a copy of the set with every alpha replaced.
func (s ColorSet) WithOpacity(a float64) ColorSet {
	if len(s.colors) == 0 {
		return Solid(ColorWhite.WithAlpha(a))
	}
	out := ColorSet{colors: make([]Color, len(s.colors)), perVertex: s.perVertex}
	for i, c := range s.colors {
		out.colors[i] = c.WithAlpha(a)
	}
	return out
}

func (s ColorSet) triangle() [3]Color {
	return [3]Color{s.At(0), s.At(1), s.At(2)}
}

func (s ColorSet) quad() [4]Color {
	return [4]Color{s.At(0), s.At(1), s.At(2), s.At(3)}
}
