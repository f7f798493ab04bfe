package petal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestText(t *testing.T, s string, cfg TextConfig) *Text {
	t.Helper()
	txt, err := NewText(s, cfg)
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	return txt
}

// --- Shaping ---

func TestNewText_Defaults(t *testing.T) {
	txt := newTestText(t, "Hello", TextConfig{})
	if txt.Size() != 20 {
		t.Errorf("Size = %v, want 20", txt.Size())
	}
	if txt.Width() <= 0 || txt.Height() <= 0 {
		t.Fatalf("shaped size = %vx%v", txt.Width(), txt.Height())
	}
	if txt.Text() != "Hello" {
		t.Errorf("Text = %q", txt.Text())
	}
}

func TestNewText_ShapesWhiteGlyphs(t *testing.T) {
	txt := newTestText(t, "W", TextConfig{Size: 32})
	pix := txt.texture.pix
	var covered int
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		covered++
		// Premultiplied white: color channels equal alpha.
		if pix[i] != pix[i+3] || pix[i+1] != pix[i+3] || pix[i+2] != pix[i+3] {
			t.Fatalf("pixel %d = %v, want premultiplied white", i/4, pix[i:i+4])
		}
	}
	if covered == 0 {
		t.Error("no glyph pixels drawn")
	}
}

func TestText_EmptyStringHasMinimumSize(t *testing.T) {
	txt := newTestText(t, "", TextConfig{})
	if txt.Width() != 1 {
		t.Errorf("Width = %v, want 1", txt.Width())
	}
}

func TestText_MultiLine(t *testing.T) {
	one := newTestText(t, "line", TextConfig{})
	two := newTestText(t, "line\nline", TextConfig{})
	if two.Height() != 2*one.Height() {
		t.Errorf("two lines height = %v, want %v", two.Height(), 2*one.Height())
	}
	if two.Width() != one.Width() {
		t.Errorf("two lines width = %v, want %v", two.Width(), one.Width())
	}
}

func TestText_SetTextReshapes(t *testing.T) {
	txt := newTestText(t, "a", TextConfig{})
	r := newRecordingRenderer()
	txt.Render(r)
	first := txt.texture.ID()
	w := txt.Width()

	txt.SetText("a")
	if txt.texture.ID() != first {
		t.Error("SetText with the same string reshaped")
	}

	txt.SetText("a much longer string")
	if txt.Width() <= w {
		t.Errorf("Width = %v, want > %v", txt.Width(), w)
	}
	if len(r.deleted) != 1 || r.deleted[0] != first {
		t.Errorf("deleted = %v, want [%d]", r.deleted, first)
	}
	txt.Render(r)
	if len(r.textures) != 1 {
		t.Errorf("live textures = %d, want 1", len(r.textures))
	}
}

func TestText_SetSize(t *testing.T) {
	txt := newTestText(t, "Size", TextConfig{Size: 12})
	h := txt.Height()
	if err := txt.SetSize(36); err != nil {
		t.Fatal(err)
	}
	if txt.Size() != 36 || txt.Height() <= h {
		t.Errorf("after SetSize: size %v, height %v (was %v)", txt.Size(), txt.Height(), h)
	}
}

func TestText_RenderAndContains(t *testing.T) {
	txt := newTestText(t, "Hi", TextConfig{X: 10, Y: 20, Color: Solid(Color{1, 0, 0, 1})})
	r := newRecordingRenderer()
	txt.Render(r)
	if len(r.calls) != 1 {
		t.Fatalf("calls = %d", len(r.calls))
	}
	c := r.calls[0]
	if c.tint != (Color{1, 0, 0, 1}) {
		t.Errorf("tint = %+v", c.tint)
	}
	if x, y := c.coords.Point(0); x != 10 || y != 20 {
		t.Errorf("top-left = (%v, %v)", x, y)
	}
	if !txt.Contains(11, 21) || txt.Contains(9, 21) {
		t.Error("Contains wrong")
	}
}

// --- Fonts ---

func TestLoadFont_Cached(t *testing.T) {
	a, err := LoadFont("", 17, FontNormal)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := LoadFont("", 17, FontNormal)
	if a != b {
		t.Error("same key returned different fonts")
	}
	c, _ := LoadFont("", 17, FontBold)
	if c == a {
		t.Error("bold shares the regular face")
	}
}

func TestLoadFont_Errors(t *testing.T) {
	if _, err := LoadFont(filepath.Join(t.TempDir(), "missing.ttf"), 12, FontNormal); !errors.Is(err, ErrFontNotFound) {
		t.Errorf("missing font = %v, want ErrFontNotFound", err)
	}
	bad := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(bad, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFont(bad, 12, FontNormal); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseFontStyle(t *testing.T) {
	tests := []struct {
		in   string
		want FontStyle
	}{
		{"", FontNormal},
		{"Bold", FontBold},
		{"italic", FontItalic},
		{"bold italic", FontBoldItalic},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFontStyle(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseFontStyle(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
	if _, err := ParseFontStyle("heavy"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestFindFonts(t *testing.T) {
	dir := t.TempDir()
	files := []string{"Arial.ttf", "Arial-Bold.ttf", "Noto-Italic.ttf", "readme.txt", "sub/Verdana.TTF", "mono.otf"}
	for _, f := range files {
		p := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got := findFonts(dir)
	if len(got) != 2 {
		t.Fatalf("findFonts = %v, want arial and verdana", got)
	}
	if got["arial"] != filepath.Join(dir, "Arial.ttf") {
		t.Errorf("arial = %q", got["arial"])
	}
	if got["verdana"] != filepath.Join(dir, "sub", "Verdana.TTF") {
		t.Errorf("verdana = %q", got["verdana"])
	}
	if n := len(findFonts(filepath.Join(dir, "nope"))); n != 0 {
		t.Errorf("missing dir gave %d fonts", n)
	}
}

func TestPickDefaultFont(t *testing.T) {
	tests := []struct {
		name  string
		fonts map[string]string
		want  string
	}{
		{"prefers arial", map[string]string{"zed": "/z.ttf", "arial": "/a.ttf"}, "/a.ttf"},
		{"first by name", map[string]string{"zed": "/z.ttf", "dejavu": "/d.ttf"}, "/d.ttf"},
		{"none", map[string]string{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickDefaultFont(tt.fonts); got != tt.want {
				t.Errorf("pickDefaultFont = %q, want %q", got, tt.want)
			}
		})
	}
}
