package anim

import (
	"fmt"

	"github.com/ostafen/splash/internal/mmap"
)

// LoadFile maps the resource at path and decodes it. The mapping is released
// before returning; decoded frames do not reference it.
func LoadFile(path string) (*Sequence, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("anim: loading %s: %w", path, err)
	}
	defer m.Close()

	return DecodeBytes(m.Data)
}

// ProbeFile is the Probe counterpart of LoadFile.
func ProbeFile(path string) (*Info, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("anim: loading %s: %w", path, err)
	}
	defer m.Close()

	return probeBytes(m.Data)
}
