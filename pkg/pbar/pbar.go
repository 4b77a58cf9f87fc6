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

// Package pbar prints load progress as a single refreshing console line.
package pbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/ostafen/splash/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

// Bar is a progress.Reporter writing to a terminal.
type Bar struct {
	mu  sync.Mutex
	out io.Writer

	name   string
	total  int
	worked float64

	startTime      time.Time
	lastUpdateTime time.Time
	lastWorked     float64
	refreshRate    time.Duration
}

func New(out io.Writer) *Bar {
	return &Bar{
		out:         out,
		startTime:   time.Now(),
		refreshRate: MinRefreshRate,
	}
}

// SetRefreshRate changes the minimum interval between two redraws.
func (b *Bar) SetRefreshRate(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refreshRate = d
}

func (b *Bar) Begin(name string, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.name = name
	b.total = max(total, 0)
	b.worked = 0
	b.lastWorked = 0
	b.render(true)
}

func (b *Bar) SetTaskName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.name = name
	b.render(false)
}

func (b *Bar) SubTask(name string) {
	b.SetTaskName(name)
}

func (b *Bar) Worked(delta int) {
	b.InternalWorked(float64(delta))
}

func (b *Bar) InternalWorked(delta float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if delta > 0 {
		b.worked = min(b.worked+delta, float64(b.total))
	}
	b.render(false)
}

func (b *Bar) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.worked = float64(b.total)
	b.render(true)
}

func (b *Bar) Canceled() bool {
	return false
}

// render updates and prints the progress bar line
func (b *Bar) render(force bool) {
	if !force && time.Since(b.lastUpdateTime) < b.refreshRate {
		return
	}

	var percentage float64
	if b.total > 0 {
		percentage = b.worked / float64(b.total) * 100
	}

	barLength := 20
	filledLen := int(float64(barLength) * percentage / 100)
	var bar string
	if filledLen == barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	var rate float64
	if !b.lastUpdateTime.IsZero() {
		rate = (b.worked - b.lastWorked) / time.Since(b.lastUpdateTime).Seconds()
	}

	var etaStr string
	if b.worked > 0 && rate > 0 {
		remaining := time.Duration((float64(b.total) - b.worked) / rate * float64(time.Second))
		etaStr = format.FormatDuration(remaining) + " remaining"
	} else {
		etaStr = "calculating..."
	}

	b.lastUpdateTime = time.Now()
	b.lastWorked = b.worked

	// \r moves the cursor back, trailing spaces clear a longer previous line
	fmt.Fprintf(b.out, "\r[INFO] Progress: [%s] %3.0f%% (%.0f/%d) | %s | elapsed %s [%s]    ",
		bar,
		percentage,
		b.worked,
		b.total,
		b.name,
		format.FormatDuration(time.Since(b.startTime)),
		etaStr)
}

// Finish prints a newline, effectively finishing the progress bar output
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	fmt.Fprintln(b.out)
}
