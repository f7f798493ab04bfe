package petal

import (
	"fmt"
	"time"
)

// FPSText is a Text label showing the window's measured frame rate. The
// label is refreshed every ~0.5 seconds while it renders.
type FPSText struct {
	*Text
	window     *Window
	lastUpdate time.Time
}

// NewFPSText creates a label that tracks w.FPS(). Zero Z is replaced by a
// large value so the label draws on top.
func NewFPSText(w *Window, cfg TextConfig) (*FPSText, error) {
	if cfg.Z == 0 {
		cfg.Z = 1 << 20
	}
	t, err := NewText(formatFPS(w.FPS()), cfg)
	if err != nil {
		return nil, err
	}
	return &FPSText{Text: t, window: w}, nil
}

// Render refreshes the label if due, then draws it.
func (f *FPSText) Render(r Renderer) {
	now := f.window.now()
	if now.Sub(f.lastUpdate) >= fpsSampleInterval {
		f.lastUpdate = now
		f.SetText(formatFPS(f.window.FPS()))
	}
	f.Text.Render(r)
}

func formatFPS(fps float64) string {
	return fmt.Sprintf("FPS: %.1f", fps)
}
