package progress_test

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"testing"

	"github.com/ostafen/splash/internal/progress"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		state progress.State
		want  int
	}{
		{progress.State{Total: 0, Worked: 10}, 0},
		{progress.State{Total: 10, Worked: 0}, 0},
		{progress.State{Total: 10, Worked: 5}, 50},
		{progress.State{Total: 3, Worked: 1}, 33},
		{progress.State{Total: 10, Worked: 20}, 100},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.state.Percentage(), "%+v", c.state)
	}
}

func TestLabel(t *testing.T) {
	require.Equal(t, "", progress.State{Name: "loading"}.Label())
	require.Equal(t, "loading -- 40%", progress.State{Name: "loading", Total: 5, Worked: 2}.Label())
}

func TestMonitorClampsAndIsMonotonic(t *testing.T) {
	m := progress.NewMonitor(progress.MonitorOptions{})
	m.Begin("plugins", 10)

	last := 0
	for i := 0; i < 30; i++ {
		m.Worked(1)
		pct := m.Snapshot().Percentage()
		require.GreaterOrEqual(t, pct, last)
		last = pct
	}
	require.Equal(t, 100, last)
	require.Equal(t, float64(10), m.Snapshot().Worked)

	m.Worked(-5)
	require.Equal(t, 100, m.Snapshot().Percentage())

	m.Begin("index", 4)
	m.Worked(8)
	require.Equal(t, 100, m.Snapshot().Percentage())

	m.Begin("empty", 0)
	m.Worked(3)
	require.Equal(t, 0, m.Snapshot().Percentage())
}

func TestMonitorNames(t *testing.T) {
	m := progress.NewMonitor(progress.MonitorOptions{})

	m.Begin("a", 4)
	m.SetTaskName("b")
	require.Equal(t, "b", m.Snapshot().Name)
	m.SubTask("c")
	require.Equal(t, "c", m.Snapshot().Name)

	m.InternalWorked(1.5)
	m.Done()
	require.Equal(t, "c -- 100%", m.Snapshot().Label())
}

func TestMonitorCanceled(t *testing.T) {
	require.False(t, progress.NewMonitor(progress.MonitorOptions{}).Canceled())

	var canceled bool
	m := progress.NewMonitor(progress.MonitorOptions{Canceled: func() bool { return canceled }})
	require.False(t, m.Canceled())
	canceled = true
	require.True(t, m.Canceled())
}

type manualScheduler struct {
	mu    sync.Mutex
	tasks []func()
	full  bool
}

func (s *manualScheduler) Post(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.full {
		return false
	}
	s.tasks = append(s.tasks, fn)
	return true
}

func (s *manualScheduler) runAll() int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

func TestMonitorSchedulesRepaint(t *testing.T) {
	sched := &manualScheduler{}
	m := progress.NewMonitor(progress.MonitorOptions{})

	var seen []progress.State
	m.Attach(sched, func() error {
		seen = append(seen, m.Snapshot())
		return nil
	})

	// Nothing is painted synchronously.
	m.Begin("load", 10)
	require.Empty(t, seen)

	// Updates arriving while a repaint is pending are coalesced into it.
	m.Worked(2)
	m.Worked(3)
	require.Equal(t, 1, sched.runAll())
	require.Len(t, seen, 1)
	require.Equal(t, 50, seen[0].Percentage())

	m.Worked(1)
	require.Equal(t, 1, sched.runAll())
	require.Equal(t, 60, seen[1].Percentage())

	m.Detach()
	m.Done()
	require.Zero(t, sched.runAll())
	require.Equal(t, 100, m.Snapshot().Percentage())
}

func TestMonitorDroppedRepaint(t *testing.T) {
	sched := &manualScheduler{full: true}
	m := progress.NewMonitor(progress.MonitorOptions{})

	calls := 0
	m.Attach(sched, func() error {
		calls++
		return errors.New("closed")
	})

	m.Begin("load", 10)
	sched.full = false
	m.Worked(1)
	require.Equal(t, 1, sched.runAll())
	require.Equal(t, 1, calls)
}

func TestTee(t *testing.T) {
	a := progress.NewMonitor(progress.MonitorOptions{})
	b := progress.NewMonitor(progress.MonitorOptions{Canceled: func() bool { return true }})

	r := progress.Tee(a, b)
	r.Begin("x", 2)
	r.Worked(1)
	r.SubTask("y")

	require.Equal(t, a.Snapshot(), b.Snapshot())
	require.Equal(t, "y -- 50%", a.Snapshot().Label())
	require.True(t, r.Canceled())
}

var white = color.RGBA{255, 255, 255, 255}

func canvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func TestOverlayEmpty(t *testing.T) {
	img := canvas(120, 40)
	o := progress.NewOverlay(func() progress.State { return progress.State{Name: "x"} }, progress.DefaultStyle())
	o.Paint(img)

	for i := 0; i < len(img.Pix); i++ {
		require.Equal(t, uint8(255), img.Pix[i])
	}
}

func TestOverlayBar(t *testing.T) {
	img := canvas(120, 40)
	state := progress.State{Name: "load", Total: 10, Worked: 5}
	o := progress.NewOverlay(func() progress.State { return state }, progress.DefaultStyle())
	o.Paint(img)

	// The bar is 13 pixels tall along the bottom edge, filled up to 60.
	require.NotEqual(t, white, img.RGBAAt(10, 39))
	require.NotEqual(t, white, img.RGBAAt(10, 27))
	require.Equal(t, white, img.RGBAAt(10, 26))
	require.Equal(t, white, img.RGBAAt(100, 39))

	// Ticks every two pixels are drawn only up to the filled width.
	require.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(58, 39))
	require.Equal(t, white, img.RGBAAt(62, 39))

	// The label sits right-aligned above the bar.
	labelPixels := func(x0, x1 int) int {
		n := 0
		for y := 0; y < 27; y++ {
			for x := x0; x < x1; x++ {
				if img.RGBAAt(x, y) != white {
					n++
				}
			}
		}
		return n
	}
	require.Positive(t, labelPixels(60, 120))
	require.Zero(t, labelPixels(0, 20))
}

func TestOverlayFull(t *testing.T) {
	img := canvas(60, 20)
	state := progress.State{Name: "done", Total: 1, Worked: 1}
	style := progress.DefaultStyle()
	style.Ticks = 1
	o := progress.NewOverlay(func() progress.State { return state }, style)
	o.Paint(img)

	got := img.RGBAAt(59, 19)
	want := color.RGBAModel.Convert(style.TextColor.Color()).(color.RGBA)
	require.InDelta(t, want.R, got.R, 8)
	require.InDelta(t, want.G, got.G, 8)
	require.InDelta(t, want.B, got.B, 8)
}
