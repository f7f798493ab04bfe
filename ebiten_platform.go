package petal

import (
	"errors"
	"image"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mitchellh/go-homedir"
)

// ControllerMappingsPath is where extra SDL GameControllerDB mappings are
// read from when the window opens.
var ControllerMappingsPath = "~/.petal/controllers.txt"

// EbitenPlatform runs a Window inside ebiten's game loop. It is the
// default Platform.
type EbitenPlatform struct {
	window   *Window
	renderer *EbitenRenderer
	input    *inputPoller

	applied windowSettings
	primed  bool
	closing bool
	pixels  []byte
}

// NewEbitenPlatform returns an unstarted platform.
func NewEbitenPlatform() *EbitenPlatform {
	return &EbitenPlatform{
		renderer: NewEbitenRenderer(),
		input:    newInputPoller(),
	}
}

// Run applies the window settings and blocks in ebiten.RunGame until the
// window closes.
func (p *EbitenPlatform) Run(w *Window) error {
	p.window = w
	p.applySettings()
	p.loadControllerMappings()
	err := ebiten.RunGame(p)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close asks the loop to stop at the next tick.
func (p *EbitenPlatform) Close() { p.closing = true }

// DisplaySize returns the size of the monitor the window is on.
func (p *EbitenPlatform) DisplaySize() (int, int) {
	return ebiten.Monitor().Size()
}

// Update implements ebiten.Game.
func (p *EbitenPlatform) Update() error {
	w := p.window
	if p.closing || w.Closed() {
		return ebiten.Termination
	}
	p.applySettings()
	w.BeginTick()
	p.input.poll(w)
	w.UpdateFrame()
	return nil
}

// Draw implements ebiten.Game.
func (p *EbitenPlatform) Draw(screen *ebiten.Image) {
	w := p.window
	p.renderer.Begin(screen)
	w.RenderFrame(p.renderer)
	p.renderer.Flush()

	if w.PendingScreenshots() == 0 {
		return
	}
	b := screen.Bounds()
	if n := 4 * b.Dx() * b.Dy(); cap(p.pixels) < n {
		p.pixels = make([]byte, n)
	} else {
		p.pixels = p.pixels[:n]
	}
	screen.ReadPixels(p.pixels)
	w.FlushScreenshots(p.pixels, b.Dx(), b.Dy())
}

// Layout implements ebiten.Game. The logical screen is the viewport.
func (p *EbitenPlatform) Layout(_, _ int) (int, int) {
	return p.window.ViewportWidth(), p.window.ViewportHeight()
}

// applySettings pushes changed window settings to ebiten.
func (p *EbitenPlatform) applySettings() {
	s := p.window.settings
	if p.primed && s == p.applied {
		return
	}
	old := p.applied
	first := !p.primed
	p.applied, p.primed = s, true

	if first || s.title != old.title {
		ebiten.SetWindowTitle(s.title)
	}
	if first || s.width != old.width || s.height != old.height {
		ebiten.SetWindowSize(s.width, s.height)
	}
	if first || s.resizable != old.resizable {
		mode := ebiten.WindowResizingModeDisabled
		if s.resizable {
			mode = ebiten.WindowResizingModeEnabled
		}
		ebiten.SetWindowResizingMode(mode)
	}
	if first || s.borderless != old.borderless {
		ebiten.SetWindowDecorated(!s.borderless)
	}
	if first || s.fullscreen != old.fullscreen {
		ebiten.SetFullscreen(s.fullscreen)
	}
	if first || s.vsync != old.vsync {
		ebiten.SetVsyncEnabled(s.vsync)
	}
	if first || s.fpsCap != old.fpsCap {
		ebiten.SetTPS(s.fpsCap)
	}
	if s.icon != "" && (first || s.icon != old.icon) {
		px, err := LoadPixmap(s.icon)
		if err != nil {
			p.window.logf("window icon: %v", err)
		} else {
			ebiten.SetWindowIcon([]image.Image{px.Image()})
		}
	}
}

// loadControllerMappings feeds extra gamepad mappings to ebiten. A missing
// file is not an error.
func (p *EbitenPlatform) loadControllerMappings() {
	path, err := homedir.Expand(ControllerMappingsPath)
	if err != nil {
		p.window.logf("controller mappings: %v", err)
		return
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		p.window.logf("controller mappings: %v", err)
		return
	}
	if _, err := ebiten.UpdateStandardGamepadLayoutMappings(string(data)); err != nil {
		p.window.logf("controller mappings %s: %v", path, err)
	}
}
