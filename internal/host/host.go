// Package host provides the surfaces a splash session can be shown on.
package host

import (
	"image/color"
	"sync"
)

// Canceler is implemented by hosts that let the user abort the splash.
type Canceler interface {
	OnCancel(fn func())
}

type cancelers struct {
	mu  sync.Mutex
	fns []func()
}

func (c *cancelers) add(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fns = append(c.fns, fn)
}

func (c *cancelers) fire() {
	c.mu.Lock()
	fns := append([]func(){}, c.fns...)
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func rgba(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
