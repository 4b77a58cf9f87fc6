package ui_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ostafen/splash/internal/ui"
	"github.com/stretchr/testify/require"
)

func TestQueueOrder(t *testing.T) {
	q := ui.NewQueue(16, nil)

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		require.True(t, q.Post(func() { got = append(got, i) }))
	}

	go q.Run()
	require.NoError(t, q.Invoke(context.Background(), func() {}))

	q.Stop()
	<-q.Done()

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestQueueSingleConsumer(t *testing.T) {
	q := ui.NewQueue(128, nil)
	go q.Run()

	var (
		mu      sync.Mutex
		running int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = q.Invoke(context.Background(), func() {
					mu.Lock()
					running++
					maxSeen = max(maxSeen, running)
					mu.Unlock()

					time.Sleep(100 * time.Microsecond)

					mu.Lock()
					running--
					mu.Unlock()
				})
			}
		}()
	}
	wg.Wait()
	q.Stop()
	<-q.Done()

	require.Equal(t, 1, maxSeen)
}

func TestQueueFull(t *testing.T) {
	q := ui.NewQueue(1, nil)

	require.True(t, q.Post(func() {}))
	require.False(t, q.Post(func() {}))
}

func TestQueueStop(t *testing.T) {
	q := ui.NewQueue(4, nil)

	ran := false
	require.True(t, q.Post(func() { ran = true }))

	q.Stop()
	q.Stop()
	q.Run()

	require.True(t, ran)
	require.False(t, q.Post(func() {}))
	require.ErrorIs(t, q.Invoke(context.Background(), func() {}), ui.ErrStopped)
}

func TestQueueRecoversPanics(t *testing.T) {
	q := ui.NewQueue(4, nil)
	go q.Run()

	require.True(t, q.Post(func() { panic("boom") }))

	ran := false
	require.NoError(t, q.Invoke(context.Background(), func() { ran = true }))
	require.True(t, ran)

	q.Stop()
	<-q.Done()
}

func TestInvokeContext(t *testing.T) {
	q := ui.NewQueue(1, nil)
	require.True(t, q.Post(func() {}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Nobody runs the queue and it is full.
	require.ErrorIs(t, q.Invoke(ctx, func() {}), context.DeadlineExceeded)
}
