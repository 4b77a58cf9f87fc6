package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ostafen/splash/internal/progress"
	"github.com/ostafen/splash/pkg/manifest"
	"github.com/stretchr/testify/require"
)

func writeGIF(t *testing.T, dir string) string {
	t.Helper()

	pal := color.Palette{color.Black, color.White}
	g := &gif.GIF{LoopCount: 0}
	for i := 0; i < 3; i++ {
		p := image.NewPaletted(image.Rect(0, 0, 8, 8), pal)
		p.Pix[i] = 1
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, 2)
	}

	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))

	path := filepath.Join(dir, "splash.gif")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()

	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&buf)
	require.NoError(t, root.Execute())
	return buf.String()
}

func TestInspect(t *testing.T) {
	path := writeGIF(t, t.TempDir())

	out := run(t, "inspect", path)
	require.Contains(t, out, "Format:     GIF89a")
	require.Contains(t, out, "Canvas:     8x8")
	require.Contains(t, out, "Frames:     3")
	require.Contains(t, out, "Plays:      forever")
	require.Contains(t, out, "INDEX")
	require.Contains(t, out, "30ms")
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path := writeGIF(t, dir)
	outDir := filepath.Join(dir, "frames")

	out := run(t, "export", path, "-o", outDir)
	require.Contains(t, out, "[INFO] Exported 3 frames")

	for _, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png", "manifest.xml"} {
		require.FileExists(t, filepath.Join(outDir, name))
	}

	f, err := os.Open(filepath.Join(outDir, "manifest.xml"))
	require.NoError(t, err)
	defer f.Close()

	hdr, frames, err := manifest.Read(f)
	require.NoError(t, err)
	require.Equal(t, "splash.gif", hdr.Source.Filename)
	require.Equal(t, 0, hdr.Source.Repeat)
	require.Len(t, frames, 3)
	require.Equal(t, int64(30), frames[2].DelayMs)
}

func TestPlayHeadless(t *testing.T) {
	dir := t.TempDir()
	path := writeGIF(t, dir)
	snapshot := filepath.Join(dir, "last.png")

	out := run(t, "play", path, "--headless", "--snapshot", snapshot,
		"--tasks", "2", "--steps", "2", "--step", "5ms", "--timeout", "2s")
	require.Contains(t, out, "100%")
	require.Contains(t, out, "[INFO] Splash closed after")
	require.FileExists(t, snapshot)
}

func TestPlayRequiresResource(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"play", "--headless"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	require.Error(t, root.Execute())
}

func TestSimulateStartup(t *testing.T) {
	m := progress.NewMonitor(progress.MonitorOptions{})
	require.True(t, simulateStartup(m, 2, 3, time.Millisecond))
	require.Equal(t, 100, m.Snapshot().Percentage())
	require.Equal(t, loadPhases[1], m.Snapshot().Name)

	cancelled := progress.NewMonitor(progress.MonitorOptions{Canceled: func() bool { return true }})
	require.False(t, simulateStartup(cancelled, 2, 3, time.Millisecond))
	require.Equal(t, 0, cancelled.Snapshot().Percentage())
}
