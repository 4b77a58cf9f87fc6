package mmap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/splash/internal/mmap"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	content := []byte("GIF89a-not-really")
	require.NoError(t, os.WriteFile(path, content, 0644))

	m, err := mmap.Open(path)
	require.NoError(t, err)
	require.Equal(t, content, m.Data)

	require.NoError(t, m.Close())
	require.Nil(t, m.Data)
	require.NoError(t, m.Close())
}

func TestOpenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := mmap.Open(path)
	require.Error(t, err)
}

func TestOpenMissing(t *testing.T) {
	_, err := mmap.Open(filepath.Join(t.TempDir(), "missing.gif"))
	require.Error(t, err)
}
