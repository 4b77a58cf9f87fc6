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
package anim

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

var (
	ErrUnsupported = errors.New("unsupported format")
	ErrMalformed   = errors.New("malformed container")
	ErrEmpty       = errors.New("empty frame list")
)

// DecodeError reports why a resource could not be turned into a Sequence.
// Kind is one of ErrUnsupported, ErrMalformed or ErrEmpty.
type DecodeError struct {
	Kind error
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "anim: " + e.Kind.Error()
	}
	return fmt.Sprintf("anim: %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Decode reads a GIF container and returns its frames ready for compositing.
func Decode(r io.Reader) (*Sequence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("anim: reading resource: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is like Decode but works on an in-memory resource.
func DecodeBytes(data []byte) (*Sequence, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Kind: ErrEmpty}
	}
	if !bytes.HasPrefix(data, []byte("GIF8")) {
		return nil, &DecodeError{Kind: ErrUnsupported, Err: fmt.Errorf("unknown signature %q", head(data, 6))}
	}

	if _, err := probeBytes(data); err != nil {
		if errors.Is(err, errMissingImageData) {
			return nil, &DecodeError{Kind: ErrEmpty, Err: err}
		}
		return nil, &DecodeError{Kind: ErrMalformed, Err: err}
	}

	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Kind: ErrMalformed, Err: err}
	}
	if len(g.Image) == 0 {
		return nil, &DecodeError{Kind: ErrEmpty}
	}
	return fromGIF(g), nil
}

func fromGIF(g *gif.GIF) *Sequence {
	seq := &Sequence{
		Frames: make([]Frame, len(g.Image)),
		Repeat: repeatFromLoopCount(g.LoopCount),
		Canvas: image.Pt(g.Config.Width, g.Config.Height),
	}

	var union image.Rectangle
	for i, p := range g.Image {
		pixels := image.NewRGBA(p.Rect)
		draw.Draw(pixels, p.Rect, p, p.Rect.Min, draw.Src)

		var delay time.Duration
		if i < len(g.Delay) {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		seq.Frames[i] = Frame{
			Pixels:   pixels,
			Disposal: disposalFromGIF(disposal),
			Delay:    ClampDelay(delay),
		}
		union = union.Union(p.Rect)
	}

	if seq.Canvas.X == 0 || seq.Canvas.Y == 0 {
		seq.Canvas = union.Max
	}

	if pal, ok := g.Config.ColorModel.(color.Palette); ok && int(g.BackgroundIndex) < len(pal) {
		seq.Background = pal[g.BackgroundIndex]
	}
	return seq
}

// repeatFromLoopCount maps image/gif loop semantics onto play counts:
// 0 loops forever, -1 plays once, n restarts the animation n times.
func repeatFromLoopCount(n int) int {
	switch {
	case n == 0:
		return 0
	case n < 0:
		return 1
	default:
		return n + 1
	}
}

func disposalFromGIF(d byte) Disposal {
	switch d {
	case gif.DisposalBackground:
		return DisposalBackground
	case gif.DisposalPrevious:
		return DisposalPrevious
	default:
		return DisposalNone
	}
}

func head(b []byte, n int) []byte {
	if len(b) < n {
		return b
	}
	return b[:n]
}
