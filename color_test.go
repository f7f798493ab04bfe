package petal

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"white", Color{1, 1, 1, 1}},
		{"WHITE", Color{1, 1, 1, 1}},
		{"black", Color{0x11 / 255.0, 0x11 / 255.0, 0x11 / 255.0, 1}},
		{"red", Color{0xff / 255.0, 0x41 / 255.0, 0x36 / 255.0, 1}},
		{"#000000", Color{0, 0, 0, 1}},
		{"#FF8000", Color{1, 0x80 / 255.0, 0, 1}},
		{" navy ", Color{0, 0x1f / 255.0, 0x3f / 255.0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			for i, pair := range [][2]float64{{got.R, tt.want.R}, {got.G, tt.want.G}, {got.B, tt.want.B}, {got.A, tt.want.A}} {
				if !approxEqual(pair[0], pair[1], 1e-6) {
					t.Errorf("component %d = %v, want %v", i, pair[0], pair[1])
				}
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "nope", "#12345", "123456", "#1234567", "#gggggg"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
				t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
			}
		})
	}
}

func TestParseColorRandom(t *testing.T) {
	for i := 0; i < 20; i++ {
		c, err := ParseColor("random")
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range []float64{c.R, c.G, c.B} {
			if v < 0 || v > 1 {
				t.Fatalf("random component %v out of range", v)
			}
		}
		if c.A != 1 {
			t.Fatalf("random alpha = %v, want 1", c.A)
		}
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid color")
		}
	}()
	MustParseColor("not-a-color")
}

func TestColorFromSlice(t *testing.T) {
	c, err := ColorFromSlice([]float64{0.1, 0.2, 0.3, 0.4})
	if err != nil {
		t.Fatal(err)
	}
	if c != (Color{0.1, 0.2, 0.3, 0.4}) {
		t.Errorf("got %+v", c)
	}
	if _, err := ColorFromSlice([]float64{1, 1, 1}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("3 components: err = %v", err)
	}
	if _, err := ColorFromSlice([]float64{1, 1, 1.5, 1}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("out of range: err = %v", err)
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	want := color.RGBA{R: 127, G: 63, B: 0, A: 127}
	if got != want {
		t.Errorf("toRGBA = %+v, want %+v", got, want)
	}
}

func TestColorLerp(t *testing.T) {
	c := Color{0, 0, 0, 0}.Lerp(Color{1, 1, 1, 1}, 0.25)
	assertNear(t, "R", c.R, 0.25)
	assertNear(t, "A", c.A, 0.25)
}

func TestColorSetZeroIsWhite(t *testing.T) {
	var s ColorSet
	if s.At(0) != ColorWhite || s.At(3) != ColorWhite {
		t.Errorf("zero ColorSet = %+v, want white", s.At(0))
	}
	if s.Len() != 1 || s.IsPerVertex() {
		t.Errorf("Len = %d, perVertex = %v", s.Len(), s.IsPerVertex())
	}
}

func TestColorSetCheck(t *testing.T) {
	red, green, blue := Color{1, 0, 0, 1}, Color{0, 1, 0, 1}, Color{0, 0, 1, 1}
	tests := []struct {
		name    string
		set     ColorSet
		n       int
		wantErr bool
	}{
		{"solid on triangle", Solid(red), 3, false},
		{"solid on circle", Solid(red), 0, false},
		{"three on triangle", PerVertex(red, green, blue), 3, false},
		{"three on quad", PerVertex(red, green, blue), 4, true},
		{"four on quad", PerVertex(red, green, blue, red), 4, false},
		{"per-vertex on circle", PerVertex(red, green, blue), 0, true},
		{"two colors", PerVertex(red, green), 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.check(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("check(%d) = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrColorCount) {
				t.Errorf("error %v is not ErrColorCount", err)
			}
		})
	}
}

func TestColorSetOpacity(t *testing.T) {
	s := PerVertex(Color{1, 0, 0, 1}, Color{0, 1, 0, 1}, Color{0, 0, 1, 1})
	faded := s.WithOpacity(0.3)
	for i := 0; i < 3; i++ {
		assertNear(t, "alpha", faded.At(i).A, 0.3)
	}
	if s.At(0).A != 1 {
		t.Error("WithOpacity modified the original set")
	}
	assertNear(t, "Opacity", faded.Opacity(), 0.3)
}

func TestColorUnmarshalText(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("#ff0000")); err != nil {
		t.Fatal(err)
	}
	if c != (Color{1, 0, 0, 1}) {
		t.Errorf("c = %+v", c)
	}
	before := c
	if err := c.UnmarshalText([]byte("mauve")); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("err = %v, want ErrInvalidColor", err)
	}
	if c != before {
		t.Error("failed unmarshal modified the color")
	}
}

func TestColorImplementsImageColor(t *testing.T) {
	var c color.Color = Color{R: 1, A: 1}
	r, g, _, a := c.RGBA()
	if r != 0xffff || g != 0 || a != 0xffff {
		t.Errorf("RGBA = %x %x %x", r, g, a)
	}
}
