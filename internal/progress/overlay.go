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
package progress

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const DefaultTicks = 60

var (
	DefaultTextColor     = gg.Hex("#f57e20")
	DefaultGradientColor = gg.Hex("#000000")
)

// Style controls how the bar is drawn.
type Style struct {
	// TextColor is used for the label and the end of the gradient.
	TextColor gg.RGBA

	// GradientColor starts the gradient and draws the tick marks.
	GradientColor gg.RGBA

	Ticks int
}

func DefaultStyle() Style {
	return Style{
		TextColor:     DefaultTextColor,
		GradientColor: DefaultGradientColor,
		Ticks:         DefaultTicks,
	}
}

// Overlay paints the progress bar along the bottom edge of the target, with
// the label right-aligned above it.
type Overlay struct {
	state func() State
	style Style
	face  font.Face
}

func NewOverlay(state func() State, style Style) *Overlay {
	if style.Ticks <= 0 {
		style.Ticks = DefaultTicks
	}
	return &Overlay{
		state: state,
		style: style,
		face:  basicfont.Face7x13,
	}
}

// Paint draws the overlay on dst. It must be called with the render lock held.
func (o *Overlay) Paint(dst draw.Image) {
	s := o.state()
	b := dst.Bounds()

	m := o.face.Metrics()
	barHeight := m.Height.Ceil()
	bar := image.Rect(b.Min.X, b.Max.Y-barHeight, b.Max.X, b.Max.Y).Intersect(b)

	filled := b.Dx() * s.Percentage() / 100
	o.paintBar(dst, bar, filled)

	label := s.Label()
	if label == "" {
		return
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(o.style.TextColor.Color()),
		Face: o.face,
	}
	width := d.MeasureString(label).Ceil()
	d.Dot = fixed.P(b.Max.X-width, bar.Min.Y-m.Descent.Ceil())
	d.DrawString(label)
}

func (o *Overlay) paintBar(dst draw.Image, bar image.Rectangle, filled int) {
	if filled <= 0 || bar.Empty() {
		return
	}

	grad := gg.NewLinearGradientBrush(0, 0, float64(filled), 0).
		AddColorStop(0, o.style.GradientColor).
		AddColorStop(1, o.style.TextColor)

	for x := 0; x < filled; x++ {
		c := grad.ColorAt(float64(x)+0.5, 0).Color()
		vline(dst, bar.Min.X+x, bar.Min.Y, bar.Max.Y, c)
	}

	width := bar.Dx()
	tick := o.style.GradientColor.Color()
	for i := 1; i < o.style.Ticks; i++ {
		x := i * width / o.style.Ticks
		if filled >= x {
			vline(dst, bar.Min.X+x, bar.Min.Y, bar.Max.Y, tick)
		}
	}
}

func vline(dst draw.Image, x, y0, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		dst.Set(x, y, c)
	}
}
