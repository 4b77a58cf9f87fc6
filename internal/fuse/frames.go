// Package fuse exposes the composited frames of an animation as a read-only
// directory of PNG files.
package fuse

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"

	"github.com/ostafen/splash/internal/anim"
	"github.com/ostafen/splash/internal/composite"
)

// Entry is one file of the mounted directory.
type Entry struct {
	Name string
	Data []byte
}

// FrameName returns the file name of the i-th frame.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%04d.png", i)
}

// EncodeFrames composites one cycle of seq over bg and encodes every canvas
// as PNG.
func EncodeFrames(seq *anim.Sequence, bg color.Color) ([]Entry, error) {
	canvases := composite.Render(seq, bg)

	entries := make([]Entry, len(canvases))
	for i, img := range canvases {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encoding frame %d: %w", i, err)
		}
		entries[i] = Entry{Name: FrameName(i), Data: buf.Bytes()}
	}
	return entries, nil
}
