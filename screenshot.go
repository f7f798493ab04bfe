package petal

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Screenshot queues a capture of the next rendered frame. An empty path
// writes ./screenshot-<UTC timestamp>.png. Returns the path that will be
// written.
func (w *Window) Screenshot(path string) string {
	if path == "" {
		path = "./screenshot-" + w.now().UTC().Format("2006-01-02--15-04-05") + ".png"
	}
	w.screenshotQueue = append(w.screenshotQueue, path)
	return path
}

// screenshotLabel queues a capture named after label in the screenshot
// directory. Used by scripted runs.
func (w *Window) screenshotLabel(label string) {
	stamp := w.now().Format("20060102_150405")
	w.Screenshot(filepath.Join(w.screenshotDir, stamp+"_"+sanitizeLabel(label)+".png"))
}

// PendingScreenshots reports how many captures are queued.
func (w *Window) PendingScreenshots() int {
	return len(w.screenshotQueue)
}

// FlushScreenshots writes every queued capture from a premultiplied RGBA
// frame. Platforms call it after RenderFrame.
func (w *Window) FlushScreenshots(pix []byte, width, height int) {
	if len(w.screenshotQueue) == 0 {
		return
	}

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i+3 < len(pix) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pix[i], pix[i+1], pix[i+2], pix[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}

	for _, path := range w.screenshotQueue {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				w.logf("screenshot: mkdir %s: %v", dir, err)
				continue
			}
		}
		if err := writePNG(path, img); err != nil {
			w.logf("screenshot: %v", err)
		}
	}
	w.screenshotQueue = w.screenshotQueue[:0]
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
