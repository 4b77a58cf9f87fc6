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
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Scheduler runs fn on the goroutine that owns the screen. Post must not
// block and reports whether fn was accepted.
type Scheduler interface {
	Post(fn func()) bool
}

// Monitor is the Reporter handed to the host while the splash is shown.
// Calls may come from any goroutine. They only update the state and schedule
// a repaint; painting always happens on the Scheduler.
type Monitor struct {
	mu    sync.Mutex
	state State

	sched   Scheduler
	repaint func() error

	// pending is set while a repaint is queued and not yet started.
	pending atomic.Bool

	canceled func() bool
	logger   *slog.Logger
}

type MonitorOptions struct {
	// Canceled backs Reporter.Canceled, nil means never.
	Canceled func() bool
	Logger   *slog.Logger
}

func NewMonitor(opts MonitorOptions) *Monitor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Monitor{
		canceled: opts.Canceled,
		logger:   logger,
	}
}

// Attach starts forwarding updates to repaint through sched.
func (m *Monitor) Attach(sched Scheduler, repaint func() error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sched = sched
	m.repaint = repaint
}

// Detach stops scheduling repaints. State updates are still recorded.
func (m *Monitor) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sched = nil
	m.repaint = nil
}

// Snapshot returns the current state.
func (m *Monitor) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

func (m *Monitor) Begin(name string, total int) {
	m.update(func(s *State) { s.begin(name, total) })
}

func (m *Monitor) SetTaskName(name string) {
	m.update(func(s *State) { s.Name = name })
}

func (m *Monitor) SubTask(name string) {
	m.update(func(s *State) { s.Name = name })
}

func (m *Monitor) Worked(delta int) {
	m.InternalWorked(float64(delta))
}

func (m *Monitor) InternalWorked(delta float64) {
	m.update(func(s *State) { s.work(delta) })
}

func (m *Monitor) Done() {
	m.update(func(s *State) { s.done() })
}

func (m *Monitor) Canceled() bool {
	return m.canceled != nil && m.canceled()
}

func (m *Monitor) update(fn func(s *State)) {
	m.mu.Lock()
	fn(&m.state)
	sched, repaint := m.sched, m.repaint
	m.mu.Unlock()

	if sched == nil || repaint == nil {
		return
	}

	// A queued repaint reads the latest state when it runs, so one is enough.
	if !m.pending.CompareAndSwap(false, true) {
		return
	}

	ok := sched.Post(func() {
		m.pending.Store(false)
		if err := repaint(); err != nil {
			m.logger.Error("progress repaint failed", "error", err)
		}
	})
	if !ok {
		m.pending.Store(false)
		m.logger.Debug("progress repaint dropped")
	}
}
