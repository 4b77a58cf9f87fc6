package os

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	ErrNotDir   = errors.New("not a directory")
	ErrNotEmpty = errors.New("directory not empty")
)

// EmptyDir readies dir to receive generated frames: a missing directory is
// created together with its parents, an existing one must hold no entries.
// It reports whether dir was created.
func EmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	switch {
	case err == nil:
		if len(entries) > 0 {
			return false, fmt.Errorf("%s: %w (%d entries)", dir, ErrNotEmpty, len(entries))
		}
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("creating %s: %w", dir, err)
		}
		return true, nil
	}

	if fi, serr := os.Stat(dir); serr == nil && !fi.IsDir() {
		return false, fmt.Errorf("%s: %w", dir, ErrNotDir)
	}
	return false, fmt.Errorf("reading %s: %w", dir, err)
}
