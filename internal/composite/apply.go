package composite

import (
	"image"
	"image/color"

	"github.com/ostafen/splash/internal/anim"
)

// ApplyFrame prepares the canvas according to the disposal policy of
// previous, then draws current at its offset. previous is nil for the very
// first frame of a sequence.
func ApplyFrame(s *Surface, previous, current *anim.Frame) {
	if previous != nil {
		switch previous.Disposal {
		case anim.DisposalBackground:
			s.Fill(previous.Bounds())
		case anim.DisposalPrevious:
			s.Blit(previous.Pixels)
		}
	}
	s.Blit(current.Pixels)
}

// Render composites one full cycle of seq and returns a canvas per frame.
func Render(seq *anim.Sequence, host color.Color) []*image.RGBA {
	s := NewSurface(seq.Canvas, host, seq.Background)
	defer s.Release()

	out := make([]*image.RGBA, len(seq.Frames))

	var prev *anim.Frame
	for i := range seq.Frames {
		cur := &seq.Frames[i]
		ApplyFrame(s, prev, cur)
		out[i] = s.Snapshot()
		prev = cur
	}
	return out
}
