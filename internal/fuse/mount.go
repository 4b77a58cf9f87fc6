//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/splash/internal/logger"
)

func Mount(mountpoint string, entries []Entry, log *logger.Logger) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
