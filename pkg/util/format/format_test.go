package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512B", FormatBytes(512))
	require.Equal(t, "1KB", FormatBytes(1024))
	require.Equal(t, "1.50KB", FormatBytes(1536))
	require.Equal(t, "3MB", FormatBytes(3<<20))
	require.Equal(t, "2GB", FormatBytes(2<<30))
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "00:00:00", FormatDuration(-time.Second))
	require.Equal(t, "00:00:09", FormatDuration(9*time.Second+900*time.Millisecond))
	require.Equal(t, "01:02:03", FormatDuration(time.Hour+2*time.Minute+3*time.Second))
}

func TestFormatDelay(t *testing.T) {
	require.Equal(t, "30ms", FormatDelay(30*time.Millisecond))
}
