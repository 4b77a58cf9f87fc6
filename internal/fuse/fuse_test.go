//go:build linux
// +build linux

package fuse

import (
	"context"
	"testing"

	"bazil.org/fuse"
	"github.com/stretchr/testify/require"
)

func TestFramesFS(t *testing.T) {
	fsys := NewFramesFS([]Entry{
		{Name: "frame_0001.png", Data: []byte("second")},
		{Name: "frame_0000.png", Data: []byte("first frame")},
	})

	root, err := fsys.Root()
	require.NoError(t, err)
	dir := root.(*Dir)

	ctx := context.Background()
	dirents, err := dir.ReadDirAll(ctx)
	require.NoError(t, err)
	require.Len(t, dirents, 2)
	require.Equal(t, "frame_0000.png", dirents[0].Name)
	require.Equal(t, "frame_0001.png", dirents[1].Name)

	_, err = dir.Lookup(ctx, "missing.png")
	require.ErrorIs(t, err, fuse.ENOENT)

	node, err := dir.Lookup(ctx, "frame_0000.png")
	require.NoError(t, err)
	f := node.(File)

	var attr fuse.Attr
	require.NoError(t, f.Attr(ctx, &attr))
	require.Equal(t, uint64(11), attr.Size)

	var resp fuse.ReadResponse
	require.NoError(t, f.Read(ctx, &fuse.ReadRequest{Offset: 6, Size: 100}, &resp))
	require.Equal(t, "frame", string(resp.Data))

	require.NoError(t, f.Read(ctx, &fuse.ReadRequest{Offset: 20, Size: 4}, &resp))
	require.Empty(t, resp.Data)
}
