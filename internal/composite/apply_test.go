package composite_test

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/ostafen/splash/internal/anim"
	"github.com/ostafen/splash/internal/composite"
	"github.com/stretchr/testify/require"
)

var (
	host  = color.RGBA{10, 10, 10, 255}
	seqBg = color.RGBA{0, 0, 200, 255}
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
)

func frame(r image.Rectangle, c color.Color, d anim.Disposal) anim.Frame {
	img := image.NewRGBA(r)
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	return anim.Frame{Pixels: img, Disposal: d, Delay: 50 * time.Millisecond}
}

func at(s *composite.Surface, x, y int) color.RGBA {
	return s.Image().RGBAAt(x, y)
}

func TestNewSurface(t *testing.T) {
	s := composite.NewSurface(image.Pt(3, 2), host, nil)
	require.Equal(t, image.Rect(0, 0, 3, 2), s.Bounds())

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			require.Equal(t, host, at(s, x, y))
		}
	}
}

func TestApplyFirstFrame(t *testing.T) {
	s := composite.NewSurface(image.Pt(4, 4), host, seqBg)
	f := frame(image.Rect(1, 1, 3, 3), red, anim.DisposalNone)

	composite.ApplyFrame(s, nil, &f)

	require.Equal(t, red, at(s, 1, 1))
	require.Equal(t, red, at(s, 2, 2))
	require.Equal(t, host, at(s, 0, 0))
	require.Equal(t, host, at(s, 3, 3))
}

func TestApplyDisposalNone(t *testing.T) {
	s := composite.NewSurface(image.Pt(4, 4), host, seqBg)
	prev := frame(image.Rect(0, 0, 2, 2), red, anim.DisposalNone)
	cur := frame(image.Rect(2, 2, 4, 4), green, anim.DisposalNone)

	composite.ApplyFrame(s, nil, &prev)
	composite.ApplyFrame(s, &prev, &cur)

	require.Equal(t, red, at(s, 0, 0))
	require.Equal(t, green, at(s, 3, 3))
	require.Equal(t, host, at(s, 3, 0))
}

func TestApplyDisposalBackground(t *testing.T) {
	s := composite.NewSurface(image.Pt(4, 4), host, seqBg)
	prev := frame(image.Rect(0, 0, 2, 2), red, anim.DisposalBackground)
	cur := frame(image.Rect(2, 2, 4, 4), green, anim.DisposalNone)

	composite.ApplyFrame(s, nil, &prev)
	composite.ApplyFrame(s, &prev, &cur)

	require.Equal(t, seqBg, at(s, 0, 0))
	require.Equal(t, seqBg, at(s, 1, 1))
	require.Equal(t, green, at(s, 3, 3))
	require.Equal(t, host, at(s, 3, 0))
}

func TestApplyDisposalBackgroundFallsBackToHost(t *testing.T) {
	s := composite.NewSurface(image.Pt(2, 2), host, nil)
	prev := frame(image.Rect(0, 0, 2, 2), red, anim.DisposalBackground)
	cur := frame(image.Rect(0, 0, 1, 1), green, anim.DisposalNone)

	composite.ApplyFrame(s, nil, &prev)
	composite.ApplyFrame(s, &prev, &cur)

	require.Equal(t, green, at(s, 0, 0))
	require.Equal(t, host, at(s, 1, 1))
}

func TestApplyDisposalPrevious(t *testing.T) {
	s := composite.NewSurface(image.Pt(4, 4), host, seqBg)
	prev := frame(image.Rect(0, 0, 3, 3), red, anim.DisposalPrevious)
	cur := frame(image.Rect(1, 1, 2, 2), green, anim.DisposalNone)

	composite.ApplyFrame(s, nil, &prev)
	// Scribble over the previous rectangle; the disposal must restore it.
	s.Fill(image.Rect(0, 0, 3, 3))
	composite.ApplyFrame(s, &prev, &cur)

	require.Equal(t, red, at(s, 0, 0))
	require.Equal(t, red, at(s, 2, 2))
	require.Equal(t, green, at(s, 1, 1))
	require.Equal(t, host, at(s, 3, 3))
}

func TestApplyKeepsTransparentPixels(t *testing.T) {
	s := composite.NewSurface(image.Pt(2, 1), host, nil)
	cur := anim.Frame{Pixels: image.NewRGBA(image.Rect(0, 0, 2, 1))}
	cur.Pixels.SetRGBA(1, 0, red)

	composite.ApplyFrame(s, nil, &cur)

	require.Equal(t, host, at(s, 0, 0))
	require.Equal(t, red, at(s, 1, 0))
}

func TestApplyDeterministic(t *testing.T) {
	frames := []anim.Frame{
		frame(image.Rect(0, 0, 5, 5), red, anim.DisposalBackground),
		frame(image.Rect(1, 2, 4, 5), green, anim.DisposalPrevious),
		frame(image.Rect(2, 0, 5, 3), seqBg, anim.DisposalNone),
	}

	for _, d := range []anim.Disposal{anim.DisposalNone, anim.DisposalBackground, anim.DisposalPrevious} {
		a := composite.NewSurface(image.Pt(5, 5), host, seqBg)
		b := composite.NewSurface(image.Pt(5, 5), host, seqBg)

		for i := range frames {
			frames[i].Disposal = d
		}
		for i := range frames {
			var prev *anim.Frame
			if i > 0 {
				prev = &frames[i-1]
			}
			composite.ApplyFrame(a, prev, &frames[i])
			composite.ApplyFrame(b, prev, &frames[i])
			require.Equal(t, a.Image().Pix, b.Image().Pix, "disposal %s frame %d", d, i)
		}
	}
}

func TestRender(t *testing.T) {
	seq := &anim.Sequence{
		Frames: []anim.Frame{
			frame(image.Rect(0, 0, 2, 2), red, anim.DisposalBackground),
			frame(image.Rect(1, 1, 2, 2), green, anim.DisposalNone),
		},
		Canvas:     image.Pt(2, 2),
		Background: seqBg,
	}

	out := composite.Render(seq, host)
	require.Len(t, out, 2)
	require.Equal(t, red, out[0].RGBAAt(0, 0))
	require.Equal(t, seqBg, out[1].RGBAAt(0, 0))
	require.Equal(t, green, out[1].RGBAAt(1, 1))
}

func TestRelease(t *testing.T) {
	s := composite.NewSurface(image.Pt(1, 1), host, nil)
	require.False(t, s.Released())
	s.Release()
	require.True(t, s.Released())
	require.Nil(t, s.Image())
}
