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

// Package shutdown provides the one-shot completion signal and the
// cancellation flag shared by a splash session.
package shutdown

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Coordinator is safe for concurrent use. The zero value is not usable,
// create one with New.
type Coordinator struct {
	cancelled  atomic.Bool
	cancelCh   chan struct{}
	cancelOnce sync.Once

	signaled atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

func New() *Coordinator {
	return &Coordinator{
		cancelCh: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// RequestCancel sets the cancellation flag and fires the completion signal.
// It can be called any number of times from any goroutine.
func (c *Coordinator) RequestCancel() {
	c.cancelOnce.Do(func() {
		c.cancelled.Store(true)
		close(c.cancelCh)
	})
	c.Signal()
}

// Signal fires the completion signal. It returns true only for the call that
// actually fired it.
func (c *Coordinator) Signal() bool {
	fired := false
	c.doneOnce.Do(func() {
		c.signaled.Store(true)
		close(c.done)
		fired = true
	})
	return fired
}

// Cancelled reports whether RequestCancel has been called.
func (c *Coordinator) Cancelled() bool {
	return c.cancelled.Load()
}

// CancelRequested is closed by the first RequestCancel.
func (c *Coordinator) CancelRequested() <-chan struct{} {
	return c.cancelCh
}

// Signaled reports whether the completion signal has fired.
func (c *Coordinator) Signaled() bool {
	return c.signaled.Load()
}

// Done is closed when the completion signal fires.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// AwaitCompletion blocks until the completion signal fires or timeout
// elapses. It reports whether the signal fired; a timeout is not an error.
func (c *Coordinator) AwaitCompletion(timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return c.Await(ctx)
}

// Await is like AwaitCompletion but bounded by ctx.
func (c *Coordinator) Await(ctx context.Context) bool {
	select {
	case <-c.done:
		return true
	default:
	}

	select {
	case <-c.done:
		return true
	case <-ctx.Done():
		return false
	}
}
