package petal

import "io"

type windowSettings struct {
	title          string
	background     Color
	width, height  int
	viewportWidth  int
	viewportHeight int
	resizable      bool
	borderless     bool
	fullscreen     bool
	highDPI        bool
	fpsCap         int
	vsync          bool
	icon           string
	diagnostics    bool
}

func defaultSettings() windowSettings {
	return windowSettings{
		title:      "petal",
		background: Color{0, 0, 0, 1},
		width:      640,
		height:     480,
		fpsCap:     60,
		vsync:      true,
	}
}

// Option configures a Window. Pass options to NewWindow or Window.Set.
type Option func(*Window)

// Title sets the window title.
func Title(title string) Option {
	return func(w *Window) { w.settings.title = title }
}

// Background sets the color the frame is cleared to.
func Background(c Color) Option {
	return func(w *Window) { w.settings.background = c }
}

// Size sets the window size in pixels. Non-positive values are ignored.
func Size(width, height int) Option {
	return func(w *Window) {
		if width > 0 {
			w.settings.width = width
		}
		if height > 0 {
			w.settings.height = height
		}
	}
}

// ViewportSize sets the logical drawing size. Zero means "same as the window".
func ViewportSize(width, height int) Option {
	return func(w *Window) {
		w.settings.viewportWidth = width
		w.settings.viewportHeight = height
	}
}

// Resizable lets the user resize the window.
func Resizable(on bool) Option {
	return func(w *Window) { w.settings.resizable = on }
}

// Borderless hides window decorations.
func Borderless(on bool) Option {
	return func(w *Window) { w.settings.borderless = on }
}

// Fullscreen toggles fullscreen mode.
func Fullscreen(on bool) Option {
	return func(w *Window) { w.settings.fullscreen = on }
}

// HighDPI requests a device-scale framebuffer.
func HighDPI(on bool) Option {
	return func(w *Window) { w.settings.highDPI = on }
}

// FPSCap sets the target ticks per second. Non-positive values are ignored.
func FPSCap(fps int) Option {
	return func(w *Window) {
		if fps > 0 {
			w.settings.fpsCap = fps
		}
	}
}

// VSync toggles vertical sync.
func VSync(on bool) Option {
	return func(w *Window) { w.settings.vsync = on }
}

// Icon sets the path of an image used as the window icon.
func Icon(path string) Option {
	return func(w *Window) { w.settings.icon = path }
}

// Diagnostics enables per-second frame timing logs.
func Diagnostics(on bool) Option {
	return func(w *Window) { w.settings.diagnostics = on }
}

// WithPlatform replaces the default Ebitengine platform.
func WithPlatform(p Platform) Option {
	return func(w *Window) { w.platform = p }
}

// LogOutput sets the writer diagnostics and warnings are printed to.
// Defaults to os.Stderr.
func LogOutput(out io.Writer) Option {
	return func(w *Window) { w.logOut = out }
}

// Attribute names a readable window attribute for Window.Get.
type Attribute uint8

const (
	AttrTitle Attribute = iota
	AttrBackground
	AttrWidth
	AttrHeight
	AttrViewportWidth
	AttrViewportHeight
	AttrDisplayWidth
	AttrDisplayHeight
	AttrResizable
	AttrBorderless
	AttrFullscreen
	AttrHighDPI
	AttrFrames
	AttrFPS
	AttrFPSCap
	AttrVSync
	AttrMouseX
	AttrMouseY
	AttrDiagnostics
	AttrIcon
)

var attributeNames = map[string]Attribute{
	"title":           AttrTitle,
	"background":      AttrBackground,
	"width":           AttrWidth,
	"height":          AttrHeight,
	"viewport_width":  AttrViewportWidth,
	"viewport_height": AttrViewportHeight,
	"display_width":   AttrDisplayWidth,
	"display_height":  AttrDisplayHeight,
	"resizable":       AttrResizable,
	"borderless":      AttrBorderless,
	"fullscreen":      AttrFullscreen,
	"highdpi":         AttrHighDPI,
	"frames":          AttrFrames,
	"fps":             AttrFPS,
	"fps_cap":         AttrFPSCap,
	"vsync":           AttrVSync,
	"mouse_x":         AttrMouseX,
	"mouse_y":         AttrMouseY,
	"diagnostics":     AttrDiagnostics,
	"icon":            AttrIcon,
}

// ParseAttribute looks up an attribute by its snake_case name.
func ParseAttribute(name string) (Attribute, bool) {
	a, ok := attributeNames[name]
	return a, ok
}

// Get returns the value of an attribute, or nil for an unknown one.
func (w *Window) Get(attr Attribute) any {
	s := &w.settings
	switch attr {
	case AttrTitle:
		return s.title
	case AttrBackground:
		return s.background
	case AttrWidth:
		return s.width
	case AttrHeight:
		return s.height
	case AttrViewportWidth:
		return w.ViewportWidth()
	case AttrViewportHeight:
		return w.ViewportHeight()
	case AttrDisplayWidth:
		dw, _ := w.DisplaySize()
		return dw
	case AttrDisplayHeight:
		_, dh := w.DisplaySize()
		return dh
	case AttrResizable:
		return s.resizable
	case AttrBorderless:
		return s.borderless
	case AttrFullscreen:
		return s.fullscreen
	case AttrHighDPI:
		return s.highDPI
	case AttrFrames:
		return w.frames
	case AttrFPS:
		return w.fps.value
	case AttrFPSCap:
		return s.fpsCap
	case AttrVSync:
		return s.vsync
	case AttrMouseX:
		return w.mouseX
	case AttrMouseY:
		return w.mouseY
	case AttrDiagnostics:
		return s.diagnostics
	case AttrIcon:
		return s.icon
	}
	return nil
}
