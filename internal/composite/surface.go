// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package composite maintains the off-screen canvas of an animation and
// applies frame disposal policies to it.
package composite

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is the off-screen buffer an animation is composited into. It is
// not safe for concurrent use: the render loop owns it exclusively.
type Surface struct {
	img *image.RGBA

	host     color.Color
	disposal color.Color
}

// NewSurface allocates a canvas of the given size filled with the host
// background. seqBackground is used by DisposalBackground; when nil the host
// background is used instead.
func NewSurface(size image.Point, host, seqBackground color.Color) *Surface {
	if host == nil {
		host = color.Black
	}
	disposal := seqBackground
	if disposal == nil {
		disposal = host
	}

	s := &Surface{
		img:      image.NewRGBA(image.Rectangle{Max: size}),
		host:     host,
		disposal: disposal,
	}
	s.Reset()
	return s
}

// Image returns the canvas. It must not be retained after Release.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Bounds returns the canvas rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Rect
}

// Reset fills the whole canvas with the host background.
func (s *Surface) Reset() {
	draw.Draw(s.img, s.img.Rect, image.NewUniform(s.host), image.Point{}, draw.Src)
}

// Fill paints r with the disposal background.
func (s *Surface) Fill(r image.Rectangle) {
	draw.Draw(s.img, r.Intersect(s.img.Rect), image.NewUniform(s.disposal), image.Point{}, draw.Src)
}

// Blit draws src over the canvas at its own bounds.
func (s *Surface) Blit(src *image.RGBA) {
	r := src.Rect.Intersect(s.img.Rect)
	draw.Draw(s.img, r, src, r.Min, draw.Over)
}

// Release drops the pixel buffer. Any later use of the surface panics.
func (s *Surface) Release() {
	s.img = nil
}

// Released reports whether Release was called.
func (s *Surface) Released() bool {
	return s.img == nil
}

// Snapshot returns a copy of the canvas.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}
