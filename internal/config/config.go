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

// Package config loads splash settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"

	"github.com/ostafen/splash/internal/progress"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultQueueSize  = 64
	DefaultBackground = "#000000"
)

type Progress struct {
	TextColor     string `yaml:"text_color"`
	GradientColor string `yaml:"gradient_color"`
	Ticks         int    `yaml:"ticks"`
}

type Config struct {
	// Resource is the path of the animation shown by the splash.
	Resource string `yaml:"resource"`

	// Timeout bounds how long disposal waits for the animation.
	Timeout time.Duration `yaml:"timeout"`

	Background string `yaml:"background"`
	PlayToEnd  bool   `yaml:"play_to_end"`
	QueueSize  int    `yaml:"queue_size"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	Progress Progress `yaml:"progress"`
}

func Default() Config {
	return Config{
		Timeout:    DefaultTimeout,
		Background: DefaultBackground,
		QueueSize:  DefaultQueueSize,
		LogLevel:   "INFO",
		Progress: Progress{
			TextColor:     "#f57e20",
			GradientColor: "#000000",
			Ticks:         progress.DefaultTicks,
		},
	}
}

// Load reads the file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %q: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("queue_size must not be negative, got %d", c.QueueSize))
	}
	if c.Progress.Ticks < 0 {
		errs = append(errs, fmt.Errorf("progress.ticks must not be negative, got %d", c.Progress.Ticks))
	}

	colors := map[string]string{
		"background":              c.Background,
		"progress.text_color":     c.Progress.TextColor,
		"progress.gradient_color": c.Progress.GradientColor,
	}
	for _, key := range []string{"background", "progress.text_color", "progress.gradient_color"} {
		if !isHexColor(colors[key]) {
			errs = append(errs, fmt.Errorf("%s: invalid color %q", key, colors[key]))
		}
	}
	return errors.Join(errs...)
}

// BackgroundColor returns the host background.
func (c Config) BackgroundColor() color.Color {
	return gg.Hex(c.Background).Color()
}

// Style returns the progress bar style.
func (c Config) Style() progress.Style {
	return progress.Style{
		TextColor:     gg.Hex(c.Progress.TextColor),
		GradientColor: gg.Hex(c.Progress.GradientColor),
		Ticks:         c.Progress.Ticks,
	}
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
