package pbar_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ostafen/splash/pkg/pbar"
	"github.com/stretchr/testify/require"
)

func TestBar(t *testing.T) {
	var buf bytes.Buffer
	b := pbar.New(&buf)
	b.SetRefreshRate(0)

	b.Begin("loading plugins", 4)
	require.Contains(t, buf.String(), "[INFO] Progress: [>                   ]   0% (0/4) | loading plugins")

	b.Worked(2)
	b.SubTask("indexing")
	b.Worked(10)
	b.Done()
	b.Finish()

	lines := strings.Split(buf.String(), "\r")
	last := lines[len(lines)-1]
	require.Contains(t, last, "[====================] 100% (4/4) | indexing")
	require.True(t, strings.HasSuffix(last, "\n"))
	require.False(t, b.Canceled())
}

func TestBarThrottles(t *testing.T) {
	var buf bytes.Buffer
	b := pbar.New(&buf)

	b.Begin("a", 100)
	for i := 0; i < 50; i++ {
		b.Worked(1)
	}
	require.Equal(t, 1, strings.Count(buf.String(), "\r"))
}
