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

// Package ui provides the single goroutine that owns the on-screen surface.
// Work from other goroutines reaches it through a bounded task queue.
package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

const DefaultQueueSize = 64

var ErrStopped = errors.New("ui: queue stopped")

// Queue runs posted tasks one at a time, in posting order, on the goroutine
// that calls Run.
type Queue struct {
	tasks chan func()

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	logger *slog.Logger
}

func NewQueue(size int, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Queue{
		tasks:  make(chan func(), size),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Post enqueues fn without blocking. It returns false when the queue is
// full or stopped, in which case fn will never run.
func (q *Queue) Post(fn func()) bool {
	select {
	case <-q.stop:
		return false
	default:
	}

	select {
	case q.tasks <- fn:
		return true
	default:
		q.logger.Debug("ui queue full, dropping task")
		return false
	}
}

// Invoke enqueues fn and waits until it has run.
func (q *Queue) Invoke(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	task := func() {
		defer close(ran)
		fn()
	}

	select {
	case q.tasks <- task:
	case <-q.stop:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-ran:
		return nil
	case <-q.done:
		// Run drains before closing done, so the task either ran or never will.
		select {
		case <-ran:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes tasks until Stop is called, then runs whatever is still
// queued and returns. Panics raised by tasks are logged and swallowed.
func (q *Queue) Run() {
	defer close(q.done)

	for {
		select {
		case fn := <-q.tasks:
			q.exec(fn)
		case <-q.stop:
			q.drain()
			return
		}
	}
}

func (q *Queue) drain() {
	for {
		select {
		case fn := <-q.tasks:
			q.exec(fn)
		default:
			return
		}
	}
}

func (q *Queue) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("ui task panicked", "panic", r)
		}
	}()
	fn()
}

// Stop makes Run return after the queued tasks have run. Posting after Stop
// fails.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.stop)
	})
}

// Done is closed when Run returns.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}
