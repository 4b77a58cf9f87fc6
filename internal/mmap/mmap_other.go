//go:build !unix

package mmap

import (
	"fmt"
	"os"
)

// File holds the file contents. Platforms without mmap read the whole file.
type File struct {
	Data []byte
}

func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file %q is empty", path)
	}
	return &File{Data: data}, nil
}

func (m *File) Close() error {
	m.Data = nil
	return nil
}
