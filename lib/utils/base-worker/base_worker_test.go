package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run(`повторяет задачу до отмены контекста`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls int32
		done := make(chan struct{})
		w := NewInstance("test", time.Millisecond, time.Millisecond)
		go func() {
			w.Run(ctx, func(ctx context.Context) error {
				if atomic.AddInt32(&calls, 1) == 3 {
					cancel()
				}
				return nil
			})
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("задача не остановилась")
		}
		require.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
	})
	t.Run(`ошибка и паника не останавливают цикл`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var calls int32
		reached := make(chan struct{})
		w := NewInstance("test", time.Millisecond, time.Millisecond)
		go w.Run(ctx, func(ctx context.Context) error {
			switch atomic.AddInt32(&calls, 1) {
			case 1:
				return errors.New("сбой")
			case 2:
				panic("сбой")
			case 3:
				close(reached)
			}
			return nil
		})
		select {
		case <-reached:
		case <-time.After(2 * time.Second):
			t.Fatal("третий проход не выполнен")
		}
	})
}
