package shutdown_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ostafen/splash/internal/shutdown"
	"github.com/stretchr/testify/require"
)

func TestSignalBeforeWait(t *testing.T) {
	c := shutdown.New()
	require.True(t, c.Signal())

	start := time.Now()
	require.True(t, c.AwaitCompletion(10*time.Second))
	require.Less(t, time.Since(start), time.Second)
}

func TestWaitBeforeSignal(t *testing.T) {
	c := shutdown.New()

	result := make(chan bool)
	go func() {
		result <- c.AwaitCompletion(10 * time.Second)
	}()

	time.Sleep(20 * time.Millisecond)
	c.Signal()

	select {
	case ok := <-result:
		require.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not woken by Signal")
	}
}

func TestAwaitTimeout(t *testing.T) {
	c := shutdown.New()

	timeout := 50 * time.Millisecond
	start := time.Now()
	require.False(t, c.AwaitCompletion(timeout))

	elapsed := time.Since(start)
	require.GreaterOrEqual(t, elapsed, timeout)
	require.Less(t, elapsed, timeout+500*time.Millisecond)
	require.False(t, c.Signaled())
}

func TestAwaitContext(t *testing.T) {
	c := shutdown.New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.False(t, c.Await(ctx))

	c.Signal()
	require.True(t, c.Await(ctx))
}

func TestSignalFiresOnce(t *testing.T) {
	c := shutdown.New()

	var fired atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Signal() {
				fired.Add(1)
			}
			c.RequestCancel()
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), fired.Load())
	require.True(t, c.Signaled())
	require.True(t, c.Cancelled())
}

func TestRequestCancel(t *testing.T) {
	c := shutdown.New()
	require.False(t, c.Cancelled())

	select {
	case <-c.CancelRequested():
		t.Fatal("cancel channel closed before RequestCancel")
	default:
	}

	c.RequestCancel()
	c.RequestCancel()

	require.True(t, c.Cancelled())
	require.True(t, c.Signaled())
	<-c.CancelRequested()
	<-c.Done()

	// The signal was already fired by the cancellation.
	require.False(t, c.Signal())
}
