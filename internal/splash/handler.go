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

// Package splash is the callback surface a host application drives to show
// an animated splash screen with load progress.
//
// A session is created with New, shown with Init, fed through the Reporter
// returned by ProgressReporter, and torn down with Dispose followed by
// OnDisposed.
package splash

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/ostafen/splash/internal/anim"
	"github.com/ostafen/splash/internal/host"
	"github.com/ostafen/splash/internal/logger"
	"github.com/ostafen/splash/internal/progress"
	"github.com/ostafen/splash/internal/render"
	"github.com/ostafen/splash/internal/shutdown"
	"github.com/ostafen/splash/internal/ui"
)

const DefaultTimeout = 10 * time.Second

// DefaultSize is the canvas used when no animation could be loaded.
var DefaultSize = image.Pt(480, 80)

var ErrInitialized = errors.New("splash: already initialized")

// Host is the surface the splash is shown on.
type Host interface {
	render.Surface
	Background() color.Color
}

type Options struct {
	// Resource is the path of the animation. Data, when set, is used instead.
	Resource string
	Data     []byte

	// Timeout bounds the wait in OnDisposed.
	Timeout time.Duration

	// PlayToEnd makes Dispose wait for a finite animation to finish.
	PlayToEnd bool

	QueueSize int
	Style     progress.Style
	Size      image.Point
	Logger    *slog.Logger
}

type Handler struct {
	opts   Options
	logger *slog.Logger

	coord   *shutdown.Coordinator
	monitor *progress.Monitor

	mu     sync.Mutex
	seq    *anim.Sequence
	queue  *ui.Queue
	target *render.Target
	loop   *render.Loop

	disposeOnce sync.Once
	disposeErr  error
}

func New(opts Options) *Handler {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = ui.DefaultQueueSize
	}
	if opts.Size.X <= 0 || opts.Size.Y <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Style == (progress.Style{}) {
		opts.Style = progress.DefaultStyle()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	coord := shutdown.New()
	return &Handler{
		opts:   opts,
		logger: opts.Logger,
		coord:  coord,
		monitor: progress.NewMonitor(progress.MonitorOptions{
			Canceled: coord.Cancelled,
			Logger:   opts.Logger,
		}),
	}
}

// Init loads the animation and starts showing it on h. A resource that
// cannot be decoded is logged and the splash shows the progress bar only.
func (h *Handler) Init(hs Host) error {
	if hs == nil {
		return errors.New("splash: nil host")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.target != nil {
		return ErrInitialized
	}

	seq, err := h.load()
	if err != nil {
		var derr *anim.DecodeError
		if errors.As(err, &derr) {
			h.logger.Error("unable to decode splash animation, showing progress only", "err", err)
		} else {
			h.logger.Error("unable to load splash animation, showing progress only", "err", err)
		}
		seq = nil
	}
	h.seq = seq

	size := h.opts.Size
	if seq != nil {
		size = seq.Canvas
	}
	bg := hs.Background()

	h.target = render.NewTarget(hs, size, bg)
	h.target.SetOverlay(progress.NewOverlay(h.monitor.Snapshot, h.opts.Style))

	h.queue = ui.NewQueue(h.opts.QueueSize, h.logger)
	go h.queue.Run()

	h.monitor.Attach(h.queue, h.target.Repaint)

	if c, ok := hs.(host.Canceler); ok {
		c.OnCancel(h.Cancel)
	}

	switch {
	case seq == nil:
		if err := h.target.Repaint(); err != nil {
			h.logger.Error("unable to draw splash", "err", err)
		}
	case seq.Animated():
		h.loop = render.NewLoop(seq, h.target, h.coord, render.LoopOptions{
			Background: bg,
			Logger:     h.logger,
		})
		h.loop.Start()
	default:
		if err := render.DrawStatic(seq, h.target, bg); err != nil {
			h.logger.Error("unable to draw splash", "err", err)
		}
	}

	h.logger.Info("splash initialized",
		"size", size,
		"animated", h.loop != nil,
		"timeout", h.opts.Timeout)
	return nil
}

func (h *Handler) load() (*anim.Sequence, error) {
	switch {
	case h.opts.Data != nil:
		return anim.DecodeBytes(h.opts.Data)
	case h.opts.Resource != "":
		return anim.LoadFile(h.opts.Resource)
	default:
		return nil, fmt.Errorf("splash: no resource configured")
	}
}

// ProgressReporter returns the reporter whose updates are painted over the
// animation.
func (h *Handler) ProgressReporter() *progress.Monitor {
	return h.monitor
}

// Cancel aborts the splash as if the user pressed the cancel key.
func (h *Handler) Cancel() {
	if !h.coord.Cancelled() {
		h.logger.Info("splash cancelled")
	}
	h.coord.RequestCancel()
}

// Dispose tells the splash the host has finished loading. It never blocks.
func (h *Handler) Dispose() {
	h.mu.Lock()
	loop, seq := h.loop, h.seq
	h.mu.Unlock()

	if h.opts.PlayToEnd && loop != nil && !seq.Infinite() && loop.State() == render.Running {
		h.logger.Debug("dispose deferred until the animation ends")
		return
	}
	h.coord.Signal()
}

// OnDisposed waits for the splash to complete, at most Timeout, then stops
// the animation and releases the host surface on the ui goroutine. Waiting
// for the release is bounded by Timeout too; a host whose Draw never returns
// leaves the release pending instead of blocking the caller. It is safe to
// call more than once.
func (h *Handler) OnDisposed(ctx context.Context) error {
	h.mu.Lock()
	initialized := h.target != nil
	h.mu.Unlock()

	if !initialized {
		return nil
	}

	h.disposeOnce.Do(func() {
		h.disposeErr = h.teardown(ctx)
	})
	return h.disposeErr
}

func (h *Handler) teardown(ctx context.Context) error {
	start := time.Now()

	wctx, cancel := context.WithTimeout(ctx, h.opts.Timeout)
	completed := h.coord.Await(wctx)
	cancel()

	if !completed {
		h.logger.Warn("splash did not complete in time, tearing down",
			"timeout", h.opts.Timeout,
			"waited", time.Since(start))
	}
	h.coord.RequestCancel()

	// Closing the target takes the render lock, which a stuck host Draw may
	// hold forever. The release is posted, never run inline.
	released := make(chan error, 1)
	release := func() {
		err := h.target.Close()
		h.monitor.Detach()
		released <- err
	}
	if !h.queue.Post(release) {
		h.logger.Warn("ui queue full, releasing splash on a separate goroutine")
		go release()
	}
	h.queue.Stop()

	rctx, cancel := context.WithTimeout(ctx, h.opts.Timeout)
	defer cancel()

	select {
	case err := <-released:
		if err != nil {
			return fmt.Errorf("splash: closing host surface: %w", err)
		}
		return nil
	case <-rctx.Done():
		h.logger.Warn("splash surface still busy, leaving release pending",
			"timeout", h.opts.Timeout)
		return nil
	}
}

// Done is closed once the splash has completed.
func (h *Handler) Done() <-chan struct{} {
	return h.coord.Done()
}

// Loop returns the render loop, nil when the splash is not animated.
func (h *Handler) Loop() *render.Loop {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.loop
}

// Sequence returns the animation being shown, nil when none could be loaded.
func (h *Handler) Sequence() *anim.Sequence {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.seq
}
