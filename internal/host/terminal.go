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
package host

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

// Terminal shows the splash in a terminal. Every cell holds two vertically
// stacked pixels drawn with an upper half block.
type Terminal struct {
	screen tcell.Screen
	bg     color.RGBA

	mu   sync.Mutex
	last *image.RGBA

	cancel cancelers

	done      chan struct{}
	closeOnce sync.Once
}

// NewTerminal takes over the controlling terminal until Close.
func NewTerminal(bg color.Color) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("host: creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("host: initializing screen: %w", err)
	}
	return newTerminal(screen, bg), nil
}

func newTerminal(screen tcell.Screen, bg color.Color) *Terminal {
	t := &Terminal{
		screen: screen,
		bg:     rgba(bg),
		done:   make(chan struct{}),
	}
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(cellColor(t.bg)))
	screen.Clear()

	go t.poll()
	return t
}

func (t *Terminal) Background() color.Color {
	return t.bg
}

// OnCancel registers fn to run when Esc or Ctrl-C is pressed.
func (t *Terminal) OnCancel(fn func()) {
	t.cancel.add(fn)
}

// Size returns the drawable area in pixels.
func (t *Terminal) Size() image.Point {
	w, h := t.screen.Size()
	return image.Pt(w, 2*h)
}

func (t *Terminal) Draw(img *image.RGBA) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.last == nil || t.last.Rect != img.Rect {
		t.last = image.NewRGBA(img.Rect)
	}
	copy(t.last.Pix, img.Pix)

	t.paint()
	return nil
}

func (t *Terminal) paint() {
	if t.last == nil {
		return
	}

	w, h := t.screen.Size()
	grid := fit(t.last, image.Pt(w, 2*h), t.bg)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := grid.RGBAAt(x, 2*y)
			bottom := grid.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(cellColor(top)).
				Background(cellColor(bottom))
			t.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	t.screen.Show()
}

func (t *Terminal) poll() {
	defer close(t.done)

	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.screen.Sync()

			t.mu.Lock()
			t.paint()
			t.mu.Unlock()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				t.cancel.fire()
			}
		}
	}
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		t.screen.Fini()
		<-t.done
	})
	return nil
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// fit scales src into a canvas of the given size keeping its aspect ratio.
// The uncovered area is filled with bg.
func fit(src *image.RGBA, size image.Point, bg color.RGBA) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Rect, image.NewUniform(bg), image.Point{}, draw.Src)

	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	if sw == 0 || sh == 0 || size.X == 0 || size.Y == 0 {
		return dst
	}

	w, h := size.X, sh*size.X/sw
	if h > size.Y {
		w, h = sw*size.Y/sh, size.Y
	}
	w, h = max(w, 1), max(h, 1)

	off := image.Pt((size.X-w)/2, (size.Y-h)/2)
	r := image.Rectangle{Min: off, Max: off.Add(image.Pt(w, h))}
	xdraw.ApproxBiLinear.Scale(dst, r, src, src.Rect, xdraw.Over, nil)
	return dst
}
