package petal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle selects a face variant.
type FontStyle uint8

const (
	FontNormal FontStyle = iota
	FontBold
	FontItalic
	FontBoldItalic
)

// ParseFontStyle maps "", "normal", "bold", "italic" and "bold italic".
func ParseFontStyle(s string) (FontStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return FontNormal, nil
	case "bold":
		return FontBold, nil
	case "italic":
		return FontItalic, nil
	case "bold italic", "bold_italic", "italic bold":
		return FontBoldItalic, nil
	}
	return FontNormal, fmt.Errorf("petal: unknown font style %q", s)
}

// Font is a sized face ready for shaping text.
type Font struct {
	Path  string
	Size  float64
	Style FontStyle
	face  font.Face
}

// Face returns the underlying face.
func (f *Font) Face() font.Face { return f.face }

type fontKey struct {
	path  string
	size  float64
	style FontStyle
}

// fontCacheLimit caps the number of open faces; the oldest is evicted.
const fontCacheLimit = 100

// Font cache. No mutex; petal is single-threaded.
var (
	fontCache = make(map[fontKey]*Font)
	fontOrder []fontKey
)

// LoadFont opens a TrueType or OpenType font at the given pixel size. An
// empty path uses the built-in Go fonts, with style choosing the variant.
// Faces are cached by (path, size, style).
func LoadFont(path string, size float64, style FontStyle) (*Font, error) {
	key := fontKey{path, size, style}
	if f, ok := fontCache[key]; ok {
		return f, nil
	}

	data, err := fontData(path, style)
	if err != nil {
		return nil, err
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("petal: parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("petal: font face %s: %w", path, err)
	}

	f := &Font{Path: path, Size: size, Style: style, face: face}
	if len(fontOrder) >= fontCacheLimit {
		oldest := fontOrder[0]
		fontOrder = fontOrder[1:]
		if old := fontCache[oldest]; old != nil {
			_ = old.face.Close()
		}
		delete(fontCache, oldest)
	}
	fontCache[key] = f
	fontOrder = append(fontOrder, key)
	return f, nil
}

func fontData(path string, style FontStyle) ([]byte, error) {
	if path == "" {
		switch style {
		case FontBold:
			return gobold.TTF, nil
		case FontItalic:
			return goitalic.TTF, nil
		case FontBoldItalic:
			return gobolditalic.TTF, nil
		default:
			return goregular.TTF, nil
		}
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFontNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("petal: read font %s: %w", path, err)
	}
	return data, nil
}

// systemFontDir returns where the OS keeps its fonts.
func systemFontDir() string {
	switch runtime.GOOS {
	case "darwin":
		return "/Library/Fonts"
	case "windows":
		return "C:/Windows/Fonts"
	case "openbsd":
		return "/usr/X11R6/lib/X11/fonts"
	default:
		return "/usr/share/fonts"
	}
}

var styledFontName = regexp.MustCompile(`(?i)(bold|italic|oblique|narrow|black)`)

// SystemFonts returns the regular-weight .ttf fonts installed on the
// system, keyed by lowercase base name.
func SystemFonts() map[string]string {
	return findFonts(systemFontDir())
}

func findFonts(dir string) map[string]string {
	fonts := make(map[string]string)
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".ttf") || styledFontName.MatchString(d.Name()) {
			return nil
		}
		name := strings.ToLower(strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())))
		fonts[name] = path
		return nil
	})
	return fonts
}

// DefaultSystemFont returns the path of Arial if installed, else the first
// system font by name, else "" (the built-in Go font).
func DefaultSystemFont() string {
	return pickDefaultFont(SystemFonts())
}

func pickDefaultFont(fonts map[string]string) string {
	if p, ok := fonts["arial"]; ok {
		return p
	}
	names := make([]string, 0, len(fonts))
	for n := range fonts {
		names = append(names, n)
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return fonts[names[0]]
}
