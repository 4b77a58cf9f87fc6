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
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ostafen/splash/internal/config"
	"github.com/ostafen/splash/internal/host"
	"github.com/ostafen/splash/internal/logger"
	"github.com/ostafen/splash/internal/progress"
	"github.com/ostafen/splash/internal/splash"
	"github.com/ostafen/splash/pkg/pbar"
)

var stdout io.Writer = os.Stdout

var loadPhases = []string{
	"Loading configuration",
	"Starting plugins",
	"Indexing workspace",
	"Restoring editors",
	"Connecting services",
	"Warming caches",
}

func DefinePlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [resource]",
		Short: "Show a splash animation while a simulated startup runs",
		Long: `The 'play' command shows the given animation in the terminal and drives its progress bar
with a simulated multi-phase startup. Press Esc or Ctrl-C to cancel.
When stdout is not a terminal, or --headless is given, frames are rendered off-screen.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         RunPlay,
	}

	cmd.Flags().Duration("timeout", config.DefaultTimeout, "maximum time to wait for the splash to complete on dispose")
	cmd.Flags().Bool("play-to-end", false, "let a finite animation finish before closing")
	cmd.Flags().Int("tasks", 4, "number of simulated startup phases")
	cmd.Flags().Int("steps", 10, "units of work per phase")
	cmd.Flags().Duration("step", 100*time.Millisecond, "duration of a unit of work")
	cmd.Flags().Bool("headless", false, "render off-screen instead of in the terminal")
	cmd.Flags().String("snapshot", "", "with --headless, write the last drawn frame to this PNG file")

	return cmd
}

func RunPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	resource, err := resourceArg(cfg, args)
	if err != nil {
		return err
	}

	log, logFile, err := logger.Open(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer logFile.Close()

	tasks, _ := cmd.Flags().GetInt("tasks")
	steps, _ := cmd.Flags().GetInt("steps")
	step, _ := cmd.Flags().GetDuration("step")
	headless, _ := cmd.Flags().GetBool("headless")
	snapshot, _ := cmd.Flags().GetString("snapshot")

	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		headless = true
	}

	var hs splash.Host
	if headless {
		hs = host.NewRecorder(cfg.BackgroundColor(), snapshot)
	} else {
		t, err := host.NewTerminal(cfg.BackgroundColor())
		if err != nil {
			return err
		}
		hs = t
	}

	h := splash.New(splash.Options{
		Resource:  resource,
		Timeout:   cfg.Timeout,
		PlayToEnd: cfg.PlayToEnd,
		QueueSize: cfg.QueueSize,
		Style:     cfg.Style(),
		Logger:    log,
	})
	if err := h.Init(hs); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	go func() {
		select {
		case <-ctx.Done():
			h.Cancel()
		case <-h.Done():
		}
	}()

	var (
		reporter progress.Reporter = h.ProgressReporter()
		bar      *pbar.Bar
	)
	if headless {
		bar = pbar.New(stdout)
		reporter = progress.Tee(reporter, bar)
	}

	start := time.Now()

	done := make(chan bool, 1)
	go func() {
		done <- simulateStartup(reporter, tasks, steps, step)
	}()
	completed := <-done

	h.Dispose()
	disposeErr := h.OnDisposed(context.Background())

	if bar != nil {
		bar.Finish()
	}

	console := consoleLogger()
	if !completed {
		console.Warn("Startup cancelled")
	}
	if loop := h.Loop(); loop != nil {
		console.Infof("Splash closed after %s: %d frames drawn, loop %s", time.Since(start).Round(time.Millisecond), loop.Draws(), loop.ExitReason())
	} else {
		console.Infof("Splash closed after %s", time.Since(start).Round(time.Millisecond))
	}
	return disposeErr
}

// simulateStartup reports tasks phases of steps units each and returns false
// if the user cancelled before the end.
func simulateStartup(r progress.Reporter, tasks, steps int, step time.Duration) bool {
	tasks = min(max(tasks, 1), len(loadPhases))
	steps = max(steps, 1)

	r.Begin(loadPhases[0], tasks*steps)
	for _, phase := range loadPhases[:tasks] {
		r.SubTask(phase)
		for i := 0; i < steps; i++ {
			if r.Canceled() {
				return false
			}
			time.Sleep(step)
			r.Worked(1)
		}
	}
	r.Done()
	return true
}
