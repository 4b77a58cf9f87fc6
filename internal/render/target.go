// Package render owns the on-screen side of a splash session: the shared
// render target and the goroutine that plays an animation into it.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync"
)

// Surface is the host primitive that puts pixels on screen. Draw must not
// retain img after returning.
type Surface interface {
	Draw(img *image.RGBA) error
}

// Painter paints on top of a frame already copied to the target.
type Painter interface {
	Paint(dst draw.Image)
}

// Target is the single on-screen surface of a session. Every access goes
// through mu, the render lock.
type Target struct {
	mu sync.Mutex

	surface Surface
	overlay Painter

	// frame is the last presented composite, canvas is frame plus overlay.
	frame  *image.RGBA
	canvas *image.RGBA

	closed bool
}

// NewTarget returns a target of the given size, initially filled with bg.
func NewTarget(surface Surface, size image.Point, bg color.Color) *Target {
	if bg == nil {
		bg = color.Black
	}
	r := image.Rectangle{Max: size}

	frame := image.NewRGBA(r)
	draw.Draw(frame, r, image.NewUniform(bg), image.Point{}, draw.Src)

	return &Target{
		surface: surface,
		frame:   frame,
		canvas:  image.NewRGBA(r),
	}
}

// SetOverlay installs the painter applied after every frame copy.
func (t *Target) SetOverlay(p Painter) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.overlay = p
}

// Bounds returns the target rectangle.
func (t *Target) Bounds() image.Rectangle {
	return t.frame.Rect
}

// Present copies src to the target, paints the overlay over it and draws the
// result, all in one acquisition of the render lock. It is a no-op once the
// target is closed.
func (t *Target) Present(src *image.RGBA) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	draw.Draw(t.frame, t.frame.Rect, src, t.frame.Rect.Min, draw.Src)
	return t.flush()
}

// Repaint redraws the last presented frame with a fresh overlay.
func (t *Target) Repaint() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	return t.flush()
}

func (t *Target) flush() error {
	copy(t.canvas.Pix, t.frame.Pix)
	if t.overlay != nil {
		t.overlay.Paint(t.canvas)
	}
	return t.surface.Draw(t.canvas)
}

// Close releases the target. The surface is closed too when it implements
// io.Closer. Close is idempotent.
func (t *Target) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.overlay = nil

	if c, ok := t.surface.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Closed reports whether Close was called.
func (t *Target) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.closed
}
