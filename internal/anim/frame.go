package anim

import (
	"image"
	"image/color"
	"time"
)

// Disposal tells the compositor how to prepare the canvas region of a frame
// before the next frame is drawn.
type Disposal uint8

const (
	DisposalNone       Disposal = iota // leave the canvas as is
	DisposalBackground                 // fill the frame rectangle with the background color
	DisposalPrevious                   // redraw the frame's own pixels into its rectangle
)

func (d Disposal) String() string {
	switch d {
	case DisposalNone:
		return "none"
	case DisposalBackground:
		return "background"
	case DisposalPrevious:
		return "previous"
	default:
		return "unknown"
	}
}

// Frame is one decoded animation frame. Pixels bounds are expressed in canvas
// coordinates, so Pixels.Rect.Min is the frame offset.
type Frame struct {
	Pixels   *image.RGBA
	Disposal Disposal
	Delay    time.Duration
}

// Offset returns the position of the frame on the canvas.
func (f *Frame) Offset() image.Point {
	return f.Pixels.Rect.Min
}

// Size returns the width and height of the frame rectangle.
func (f *Frame) Size() image.Point {
	return f.Pixels.Rect.Size()
}

// Bounds returns the frame rectangle on the canvas.
func (f *Frame) Bounds() image.Rectangle {
	return f.Pixels.Rect
}

// Sequence is an immutable, ordered list of frames.
type Sequence struct {
	Frames []Frame

	// Repeat is the number of times the whole sequence is played.
	// Zero means the sequence loops forever.
	Repeat int

	Canvas image.Point

	// Background is the color declared by the container, nil when undefined.
	Background color.Color
}

// Animated reports whether the sequence has more than one frame.
// Single-frame sequences are drawn once and never start a render loop.
func (s *Sequence) Animated() bool {
	return len(s.Frames) > 1
}

// Infinite reports whether the sequence loops forever.
func (s *Sequence) Infinite() bool {
	return s.Repeat == 0
}

// Duration returns the duration of a single cycle.
func (s *Sequence) Duration() time.Duration {
	var d time.Duration
	for i := range s.Frames {
		d += s.Frames[i].Delay
	}
	return d
}

// ClampDelay converts a container delay into a pacing delay. Very short
// delays are slowed down the way common viewers do, so 0 becomes 30ms.
func ClampDelay(d time.Duration) time.Duration {
	if d < 20*time.Millisecond {
		d += 30 * time.Millisecond
	}
	if d < 30*time.Millisecond {
		d += 10 * time.Millisecond
	}
	return d
}
