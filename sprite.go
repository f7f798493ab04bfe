package petal

import (
	"fmt"
	"time"
)

// DefaultAnimation is the animation every sprite has: the first row of the
// sheet, one clip width per frame.
const DefaultAnimation = "default"

const defaultFrameTime = 300 * time.Millisecond

// Frame is one explicit sheet region. X and Y are used as given; a zero
// Width, Height or Time falls back to the sprite's configured clip size and
// frame time.
type Frame struct {
	X, Y, Width, Height float64
	Time                time.Duration
}

// Animation is either a contiguous range of clip-width frames along the
// sheet's first row, or an explicit list of frames.
type Animation struct {
	first, last int
	frames      []Frame
	explicit    bool
}

// Range returns an animation over frames first..last inclusive.
func Range(first, last int) Animation {
	return Animation{first: first, last: last}
}

// Frames returns an animation over an explicit frame list.
func Frames(frames ...Frame) Animation {
	return Animation{frames: append([]Frame(nil), frames...), explicit: true}
}

// Len returns the number of frames in the animation.
func (a Animation) Len() int {
	if a.explicit {
		return len(a.frames)
	}
	return a.last - a.first + 1
}

// SpriteConfig configures a sprite sheet. Zero clip size uses the whole
// image; zero Time is 300ms.
type SpriteConfig struct {
	X, Y, Z float64
	// Width and Height are the drawn size. Zero uses the clip size; a flip
	// requires both to be set.
	Width, Height float64
	Rotate        float64
	Color         ColorSet

	ClipX, ClipY          float64
	ClipWidth, ClipHeight float64

	Time         time.Duration
	Loop         bool
	DefaultFrame int
	Animations   map[string]Animation
}

// Sprite animates clip rectangles of a sheet. It advances frames each time
// it renders while playing.
type Sprite struct {
	Base
	X, Y          float64
	Width, Height float64
	Rotate        float64

	ClipX, ClipY          float64
	ClipWidth, ClipHeight float64

	pixmap  *Pixmap
	texture *Texture

	animations   map[string]Animation
	defaults     spriteDefaults
	frameTime    time.Duration
	playing      bool
	animation    string
	first, last  int
	current      int
	loop         bool
	flip         FlipMode
	onDone       func()
	lastAdvanced time.Time
	now          func() time.Time
}

type spriteDefaults struct {
	clipY                 float64
	clipWidth, clipHeight float64
	frameTime             time.Duration
	loop                  bool
	frame                 int
}

// NewSprite loads a sheet from path.
func NewSprite(path string, cfg SpriteConfig) (*Sprite, error) {
	p, err := LoadPixmap(path)
	if err != nil {
		return nil, err
	}
	return NewSpriteFromPixmap(p, cfg)
}

// NewSpriteFromPixmap builds a sprite over an already decoded sheet.
func NewSpriteFromPixmap(p *Pixmap, cfg SpriteConfig) (*Sprite, error) {
	if cfg.ClipWidth == 0 {
		cfg.ClipWidth = float64(p.Width())
	}
	if cfg.ClipHeight == 0 {
		cfg.ClipHeight = float64(p.Height())
	}
	if cfg.Time == 0 {
		cfg.Time = defaultFrameTime
	}
	s := &Sprite{
		X:          cfg.X,
		Y:          cfg.Y,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Rotate:     cfg.Rotate,
		ClipX:      cfg.ClipX,
		ClipY:      cfg.ClipY,
		ClipWidth:  cfg.ClipWidth,
		ClipHeight: cfg.ClipHeight,
		pixmap:     p,
		texture:    p.texture(),
		animations: make(map[string]Animation, len(cfg.Animations)+1),
		defaults: spriteDefaults{
			clipY:      cfg.ClipY,
			clipWidth:  cfg.ClipWidth,
			clipHeight: cfg.ClipHeight,
			frameTime:  cfg.Time,
			loop:       cfg.Loop,
			frame:      cfg.DefaultFrame,
		},
		frameTime: cfg.Time,
		animation: DefaultAnimation,
		current:   cfg.DefaultFrame,
		loop:      cfg.Loop,
		now:       time.Now,
	}
	for name, a := range cfg.Animations {
		if a.Len() <= 0 {
			return nil, fmt.Errorf("petal: animation %q has no frames", name)
		}
		s.animations[name] = a
	}
	if _, ok := s.animations[DefaultAnimation]; !ok {
		n := max(int(float64(p.Width())/cfg.ClipWidth), 1)
		s.animations[DefaultAnimation] = Range(0, n-1)
	}
	if err := s.init(cfg.Z, cfg.Color, 0); err != nil {
		return nil, err
	}
	return s, nil
}

// Position returns the top-left corner.
func (s *Sprite) Position() (float64, float64) { return s.X, s.Y }

// SetPosition moves the top-left corner.
func (s *Sprite) SetPosition(x, y float64) { s.X, s.Y = x, y }

// Playing reports whether an animation is running.
func (s *Sprite) Playing() bool { return s.playing }

// Animation returns the name of the current animation.
func (s *Sprite) Animation() string { return s.animation }

// CurrentFrame returns the index of the frame being shown.
func (s *Sprite) CurrentFrame() int { return s.current }

// Flip returns the active flip mode.
func (s *Sprite) Flip() FlipMode { return s.flip }

// PlayOption adjusts a single Play call.
type PlayOption func(*playSettings)

type playSettings struct {
	loop   *bool
	flip   FlipMode
	onDone func()
}

// Looping overrides the sprite's default loop setting for this run.
func Looping(loop bool) PlayOption {
	return func(p *playSettings) { p.loop = &loop }
}

// Flipped mirrors the sprite while this animation plays.
func Flipped(f FlipMode) PlayOption {
	return func(p *playSettings) { p.flip = f }
}

// OnDone is called once when a non-looping run finishes. The callback is
// cleared before it runs, so it may call Play again.
func OnDone(fn func()) PlayOption {
	return func(p *playSettings) { p.onDone = fn }
}

// Play starts the named animation. An empty name plays DefaultAnimation.
// Playing the animation that is already running with the same flip is a
// no-op.
func (s *Sprite) Play(name string, opts ...PlayOption) error {
	if name == "" {
		name = DefaultAnimation
	}
	var ps playSettings
	for _, opt := range opts {
		opt(&ps)
	}
	if s.playing && name == s.animation && ps.flip == s.flip {
		return nil
	}
	a, ok := s.animations[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	if ps.flip != FlipNone && (s.Width == 0 || s.Height == 0) {
		return ErrFlipBounds
	}

	s.playing = true
	s.animation = name
	s.flip = ps.flip
	s.onDone = ps.onDone
	if a.explicit {
		s.first, s.last = 0, len(a.frames)-1
	} else {
		s.first, s.last = a.first, a.last
	}
	s.current = s.first
	s.loop = s.defaults.loop
	if ps.loop != nil {
		s.loop = *ps.loop
	}
	s.setFrame()
	s.lastAdvanced = s.now()
	return nil
}

// Stop halts the animation and shows the default frame. A non-empty name
// only stops that animation.
func (s *Sprite) Stop(name string) {
	if name != "" && name != s.animation {
		return
	}
	s.playing = false
	s.animation = DefaultAnimation
	s.current = s.defaults.frame
	s.setFrame()
}

// update advances the current frame when its time has elapsed.
func (s *Sprite) update() {
	if !s.playing {
		return
	}
	now := s.now()
	if now.Sub(s.lastAdvanced) > s.frameTime {
		s.current++
		s.lastAdvanced = now
	}
	if s.current > s.last {
		s.current = s.first
		if !s.loop {
			s.Stop("")
			if done := s.onDone; done != nil {
				s.onDone = nil
				done()
			}
		}
	}
	if s.playing {
		s.setFrame()
	}
}

// setFrame points the clip rectangle at the current frame.
func (s *Sprite) setFrame() {
	a := s.animations[s.animation]
	if !a.explicit {
		s.ClipX = float64(s.current) * s.defaults.clipWidth
		s.ClipY = s.defaults.clipY
		s.ClipWidth = s.defaults.clipWidth
		s.ClipHeight = s.defaults.clipHeight
		s.frameTime = s.defaults.frameTime
		return
	}
	if s.current < 0 || s.current >= len(a.frames) {
		return
	}
	f := a.frames[s.current]
	s.ClipX = f.X
	s.ClipY = f.Y
	s.ClipWidth = orDefault(f.Width, s.defaults.clipWidth)
	s.ClipHeight = orDefault(f.Height, s.defaults.clipHeight)
	s.frameTime = s.defaults.frameTime
	if f.Time > 0 {
		s.frameTime = f.Time
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func (s *Sprite) vertices(x, y, width, height, rotate float64) *Vertices {
	if width == 0 {
		width = s.ClipWidth
	}
	if height == 0 {
		height = s.ClipHeight
	}
	crop := &Crop{
		X: s.ClipX, Y: s.ClipY,
		Width: s.ClipWidth, Height: s.ClipHeight,
		ImageWidth:  float64(s.pixmap.Width()),
		ImageHeight: float64(s.pixmap.Height()),
	}
	return NewVertices(x, y, width, height, rotate, crop, s.flip)
}

// Contains reports whether (x, y) lies inside the drawn bounds.
func (s *Sprite) Contains(x, y float64) bool {
	w, h := s.Width, s.Height
	if w == 0 {
		w = s.ClipWidth
	}
	if h == 0 {
		h = s.ClipHeight
	}
	return Rect{s.X, s.Y, w, h}.Contains(x, y)
}

// Render advances the animation and draws the current frame.
func (s *Sprite) Render(r Renderer) {
	s.update()
	v := s.vertices(s.X, s.Y, s.Width, s.Height, s.Rotate)
	s.texture.Draw(r, v.Coordinates(), v.TextureCoordinates(), s.color.At(0))
}

// Draw advances the animation and draws the current frame immediately. It
// is only valid inside the window's render callback.
func (s *Sprite) Draw(w *Window, opts DrawOpts) error {
	if err := w.RenderReadyCheck(); err != nil {
		return err
	}
	s.update()
	width, height := opts.size(s.Width, s.Height)
	v := s.vertices(opts.X, opts.Y, width, height, opts.Rotate)
	s.texture.Draw(w.renderer, v.Coordinates(), v.TextureCoordinates(), opts.tint())
	return nil
}
