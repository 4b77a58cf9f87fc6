package host

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
)

// Recorder is a headless host. It keeps the last drawn image and can write
// it as a PNG when closed.
type Recorder struct {
	bg       color.RGBA
	snapshot string

	mu     sync.Mutex
	draws  int
	last   *image.RGBA
	closed bool

	cancel cancelers
}

// NewRecorder returns a recorder. When snapshot is not empty, Close writes
// the last image there.
func NewRecorder(bg color.Color, snapshot string) *Recorder {
	return &Recorder{
		bg:       rgba(bg),
		snapshot: snapshot,
	}
}

func (r *Recorder) Background() color.Color {
	return r.bg
}

func (r *Recorder) OnCancel(fn func()) {
	r.cancel.add(fn)
}

// Cancel behaves like a user pressing the cancel key.
func (r *Recorder) Cancel() {
	r.cancel.fire()
}

func (r *Recorder) Draw(img *image.RGBA) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("host: draw on closed recorder")
	}
	if r.last == nil || r.last.Rect != img.Rect {
		r.last = image.NewRGBA(img.Rect)
	}
	copy(r.last.Pix, img.Pix)
	r.draws++
	return nil
}

// Draws returns how many times Draw was called.
func (r *Recorder) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.draws
}

// Last returns a copy of the last drawn image, nil if nothing was drawn.
func (r *Recorder) Last() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last == nil {
		return nil
	}
	out := image.NewRGBA(r.last.Rect)
	copy(out.Pix, r.last.Pix)
	return out
}

func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.closed
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.snapshot == "" || r.last == nil {
		return nil
	}

	f, err := os.Create(r.snapshot)
	if err != nil {
		return fmt.Errorf("host: creating snapshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, r.last); err != nil {
		return fmt.Errorf("host: encoding snapshot: %w", err)
	}
	return nil
}
