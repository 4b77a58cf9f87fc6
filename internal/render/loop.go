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
package render

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ostafen/splash/internal/anim"
	"github.com/ostafen/splash/internal/composite"
	"github.com/ostafen/splash/internal/shutdown"
)

type State int32

const (
	Idle State = iota
	Running
	Cancelled
	Exhausted
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	case Exhausted:
		return "exhausted"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// RenderFailure is any error or panic raised while compositing or drawing a
// frame. It ends the loop and is only ever logged.
type RenderFailure struct {
	Frame int
	Err   error
}

func (e *RenderFailure) Error() string {
	return fmt.Sprintf("render: frame %d: %v", e.Frame, e.Err)
}

func (e *RenderFailure) Unwrap() error {
	return e.Err
}

type LoopOptions struct {
	// Background is the host background the composite surface starts from.
	Background color.Color
	Logger     *slog.Logger
}

// Loop plays a sequence into a Target on its own goroutine.
type Loop struct {
	seq    *anim.Sequence
	target *Target
	coord  *shutdown.Coordinator

	bg     color.Color
	logger *slog.Logger

	state  atomic.Int32
	reason atomic.Int32
	draws  atomic.Int64
	err    error

	done chan struct{}
}

func NewLoop(seq *anim.Sequence, target *Target, coord *shutdown.Coordinator, opts LoopOptions) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{
		seq:    seq,
		target: target,
		coord:  coord,
		bg:     opts.Background,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches the render goroutine. Sequences with a single frame are not
// animated and Start returns false without starting anything, as it does when
// the loop was already started.
func (l *Loop) Start() bool {
	if !l.seq.Animated() {
		return false
	}
	if !l.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return false
	}
	go l.run()
	return true
}

func (l *Loop) State() State {
	return State(l.state.Load())
}

// ExitReason is Cancelled, Exhausted or Stopped once Done is closed, Idle
// before that.
func (l *Loop) ExitReason() State {
	return State(l.reason.Load())
}

// Draws returns the number of frames presented so far.
func (l *Loop) Draws() int64 {
	return l.draws.Load()
}

// Done is closed when the render goroutine has exited and released its
// resources. It is never closed for a loop that was not started.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Err returns the failure that stopped the loop, if any. Valid after Done.
func (l *Loop) Err() error {
	return l.err
}

func (l *Loop) run() {
	surface := composite.NewSurface(l.seq.Canvas, l.bg, l.seq.Background)

	idx := 0
	defer func() {
		if r := recover(); r != nil {
			l.fail(&RenderFailure{Frame: idx, Err: fmt.Errorf("panic: %v", r)})
		}
		surface.Release()

		l.state.Store(int32(Stopped))
		l.coord.Signal()
		close(l.done)
	}()

	l.logger.Debug("render loop started",
		"frames", len(l.seq.Frames),
		"repeat", l.seq.Repeat,
		"canvas", l.seq.Canvas)

	remaining := l.seq.Repeat

	var prev *anim.Frame
	for {
		if l.coord.Cancelled() {
			l.exit(Cancelled)
			return
		}

		cur := &l.seq.Frames[idx]
		composite.ApplyFrame(surface, prev, cur)
		if err := l.target.Present(surface.Image()); err != nil {
			l.fail(&RenderFailure{Frame: idx, Err: err})
			return
		}
		l.draws.Add(1)

		if !l.sleep(cur.Delay) {
			l.exit(Cancelled)
			return
		}

		prev = cur
		idx++
		if idx < len(l.seq.Frames) {
			continue
		}
		idx = 0

		if l.seq.Infinite() {
			continue
		}
		remaining--
		if remaining <= 0 {
			l.exit(Exhausted)
			return
		}
	}
}

// sleep waits for d and reports whether the loop should go on.
func (l *Loop) sleep(d time.Duration) bool {
	if l.coord.Cancelled() {
		return false
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-l.coord.CancelRequested():
		return false
	}
}

func (l *Loop) exit(reason State) {
	l.state.Store(int32(reason))
	l.reason.Store(int32(reason))
	l.logger.Info("render loop finished", "reason", reason, "draws", l.draws.Load())
}

func (l *Loop) fail(err *RenderFailure) {
	l.err = err
	l.reason.Store(int32(Stopped))
	l.logger.Error("render loop failed", "error", err, "draws", l.draws.Load())
}

// DrawStatic presents the first frame of a sequence that is not animated.
func DrawStatic(seq *anim.Sequence, target *Target, bg color.Color) (err error) {
	if len(seq.Frames) == 0 {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = &RenderFailure{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	surface := composite.NewSurface(seq.Canvas, bg, seq.Background)
	defer surface.Release()

	composite.ApplyFrame(surface, nil, &seq.Frames[0])
	if err := target.Present(surface.Image()); err != nil {
		return &RenderFailure{Err: err}
	}
	return nil
}
