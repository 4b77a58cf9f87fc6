package manifest_test

import (
	"bytes"
	"testing"

	"github.com/ostafen/splash/pkg/manifest"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	w := manifest.NewWriter(&buf)

	hdr := manifest.Header{
		Creator: manifest.Creator{Package: "splash", Version: "dev", Env: manifest.GetExecEnv()},
		Source: manifest.Source{
			Filename: "splash.gif",
			Size:     1234,
			Format:   "GIF89a",
			Width:    120,
			Height:   40,
			Frames:   2,
		},
	}
	require.NoError(t, w.WriteHeader(hdr))
	require.NoError(t, w.WriteFrame(manifest.Frame{Index: 0, Filename: "frame_0000.png", Width: 120, Height: 40, Disposal: "none", DelayMs: 30}))
	require.NoError(t, w.WriteFrame(manifest.Frame{Index: 1, Filename: "frame_0001.png", X: 10, Y: 5, Width: 20, Height: 20, Disposal: "background", DelayMs: 100}))
	require.NoError(t, w.Close())

	require.Contains(t, buf.String(), `<splash_export version="1.0">`)

	got, frames, err := manifest.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, manifest.Version, got.Version)
	require.Equal(t, hdr.Source, got.Source)
	require.Equal(t, "splash", got.Creator.Package)
	require.Equal(t, hdr.Creator.Env.OS, got.Creator.Env.OS)

	require.Len(t, frames, 2)
	require.Equal(t, 1, frames[1].Index)
	require.Equal(t, "background", frames[1].Disposal)
	require.Equal(t, int64(100), frames[1].DelayMs)
	require.Equal(t, 10, frames[1].X)
}

func TestReadInvalid(t *testing.T) {
	_, _, err := manifest.Read(bytes.NewBufferString("<dfxml></dfxml>"))
	require.Error(t, err)
}
