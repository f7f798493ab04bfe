package petal

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-spawn", "after-spawn"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#", "special___"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotDefaultPath(t *testing.T) {
	w, _ := newTestWindow()
	got := w.Screenshot("")
	if got != "./screenshot-2024-03-01--12-00-00.png" {
		t.Errorf("Screenshot(\"\") = %q", got)
	}
	if w.PendingScreenshots() != 1 {
		t.Errorf("PendingScreenshots = %d", w.PendingScreenshots())
	}
}

func decodePNG(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	n, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded %T, want *image.NRGBA", img)
	}
	return n
}

func TestFlushScreenshotsWritesPNG(t *testing.T) {
	dir := t.TempDir()
	w, _ := newTestWindow()
	path := filepath.Join(dir, "nested", "shot.png")
	w.Screenshot(path)

	// 2x1 frame: opaque red, then half-transparent premultiplied gray.
	w.FlushScreenshots([]byte{255, 0, 0, 255, 64, 32, 0, 128}, 2, 1)
	if w.PendingScreenshots() != 0 {
		t.Error("queue not drained")
	}

	img := decodePNG(t, path)
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Fatalf("bounds = %v", b)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel 0 = %v", got)
	}
	// Stored straight alpha: 64*255/128 = 127, 32*255/128 = 63.
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{127, 63, 0, 128}) {
		t.Errorf("pixel 1 = %v, want unpremultiplied", got)
	}
}

func TestFlushScreenshotsLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	w, _ := newTestWindow(LogOutput(&buf))
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	// A path under a regular file cannot be created.
	w.Screenshot(filepath.Join(blocker, "sub", "shot.png"))
	w.FlushScreenshots([]byte{0, 0, 0, 255}, 1, 1)
	if !strings.Contains(buf.String(), "[petal] screenshot:") {
		t.Errorf("log = %q", buf.String())
	}
	if w.PendingScreenshots() != 0 {
		t.Error("failed capture left in queue")
	}
}

func TestScreenshotLabel(t *testing.T) {
	w, _ := newTestWindow()
	w.SetScreenshotDir("shots")
	w.screenshotLabel("after spawn")
	want := filepath.Join("shots", "20240301_120000_after_spawn.png")
	if w.screenshotQueue[0] != want {
		t.Errorf("queued %q, want %q", w.screenshotQueue[0], want)
	}
}
