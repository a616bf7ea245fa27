package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`возвращает ошибку safeCode`, func(t *testing.T) {
		ok, err := WithDelay(context.Background(), "k1", time.Second, func() error {
			return errors.New("сбой")
		})
		require.True(t, ok)
		require.EqualError(t, err, "сбой")
	})
	t.Run(`таймаут при занятом ключе`, func(t *testing.T) {
		held := make(chan struct{})
		releaseHeld := make(chan struct{})
		go WithDelay(context.Background(), "k2", time.Second, func() error {
			close(held)
			<-releaseHeld
			return nil
		})
		<-held
		called := false
		ok, err := WithDelay(context.Background(), "k2", 20*time.Millisecond, func() error {
			called = true
			return nil
		})
		close(releaseHeld)
		require.NoError(t, err)
		require.False(t, ok)
		require.False(t, called)
	})
	t.Run(`отмена контекста`, func(t *testing.T) {
		held := make(chan struct{})
		releaseHeld := make(chan struct{})
		go WithDelay(context.Background(), "k3", time.Second, func() error {
			close(held)
			<-releaseHeld
			return nil
		})
		<-held
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ok, err := WithDelay(ctx, "k3", time.Second, func() error { return nil })
		close(releaseHeld)
		require.NoError(t, err)
		require.False(t, ok)
	})
	t.Run(`последовательное выполнение по одному ключу`, func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			active  int
			maxSeen int
			missed  int
			guard   sync.Mutex
		)
		for n := 0; n < 10; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, _ := WithDelay(context.Background(), "k4", 5*time.Second, func() error {
					guard.Lock()
					active++
					if active > maxSeen {
						maxSeen = active
					}
					guard.Unlock()
					time.Sleep(time.Millisecond)
					guard.Lock()
					active--
					guard.Unlock()
					return nil
				})
				if !ok {
					guard.Lock()
					missed++
					guard.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Zero(t, missed)
		require.Equal(t, 1, maxSeen)
		mu.Lock()
		defer mu.Unlock()
		require.NotContains(t, locks, "k4")
	})
}
