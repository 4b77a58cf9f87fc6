package fuse

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"
	"time"

	"github.com/ostafen/splash/internal/anim"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
)

func testSequence() *anim.Sequence {
	mk := func(r image.Rectangle, c color.Color) anim.Frame {
		img := image.NewRGBA(r)
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
		return anim.Frame{Pixels: img, Delay: 30 * time.Millisecond}
	}
	return &anim.Sequence{
		Frames: []anim.Frame{
			mk(image.Rect(0, 0, 4, 4), red),
			mk(image.Rect(2, 2, 4, 4), green),
		},
		Canvas: image.Pt(4, 4),
	}
}

func TestEncodeFrames(t *testing.T) {
	entries, err := EncodeFrames(testSequence(), color.Black)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "frame_0000.png", entries[0].Name)
	require.Equal(t, "frame_0001.png", entries[1].Name)

	img, err := png.Decode(bytes.NewReader(entries[1].Data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())

	r, g, _, _ := img.At(0, 0).RGBA()
	require.Equal(t, uint32(0xffff), r)
	require.Zero(t, g)

	r, g, _, _ = img.At(3, 3).RGBA()
	require.Zero(t, r)
	require.Equal(t, uint32(0xffff), g)
}
