package petal

import "fmt"

// Immediate-mode drawing. These bypass the scene list and are only valid
// inside the render callback; outside it they return ErrNotReady.

// DrawTriangle draws a filled triangle.
func (w *Window) DrawTriangle(x1, y1, x2, y2, x3, y3 float64, colors ColorSet) error {
	if err := w.RenderReadyCheck(); err != nil {
		return err
	}
	if err := colors.check(3); err != nil {
		return err
	}
	w.renderer.DrawTriangle([6]float64{x1, y1, x2, y2, x3, y3}, colors.triangle())
	return nil
}

// DrawQuad draws a filled quad.
func (w *Window) DrawQuad(q Quad, colors ColorSet) error {
	if err := w.RenderReadyCheck(); err != nil {
		return err
	}
	if err := colors.check(4); err != nil {
		return err
	}
	w.renderer.DrawQuad(q, colors.quad())
	return nil
}

// DrawRectangle draws a filled axis-aligned rectangle.
func (w *Window) DrawRectangle(x, y, width, height float64, colors ColorSet) error {
	return w.DrawQuad(rectQuad(x, y, width, height), colors)
}

// DrawLine draws a segment of the given width.
func (w *Window) DrawLine(x1, y1, x2, y2, width float64, colors ColorSet) error {
	if err := w.RenderReadyCheck(); err != nil {
		return err
	}
	if err := colors.check(4); err != nil {
		return err
	}
	w.renderer.DrawLine(x1, y1, x2, y2, width, colors.quad())
	return nil
}

// DrawCircle draws a filled circle. Zero sectors means 30.
func (w *Window) DrawCircle(x, y, radius float64, sectors int, c Color) error {
	if err := w.RenderReadyCheck(); err != nil {
		return err
	}
	if radius < 0 {
		return fmt.Errorf("%w: negative radius %g", ErrInvalidGeometry, radius)
	}
	if sectors <= 0 {
		sectors = 30
	}
	w.renderer.DrawEllipse(x, y, radius, radius, sectors, c)
	return nil
}

// DrawPixel draws a square of side size at (x, y).
func (w *Window) DrawPixel(x, y, size float64, colors ColorSet) error {
	if size == 0 {
		size = 1
	}
	return w.DrawQuad(rectQuad(x, y, size, size), colors)
}

// DrawImage draws img with opts.
func (w *Window) DrawImage(img *Image, opts DrawOpts) error { return img.Draw(w, opts) }

// DrawSprite draws the sprite's current frame with opts.
func (w *Window) DrawSprite(s *Sprite, opts DrawOpts) error { return s.Draw(w, opts) }

// DrawText draws t with opts.
func (w *Window) DrawText(t *Text, opts DrawOpts) error { return t.Draw(w, opts) }
