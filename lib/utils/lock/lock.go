// Package lock блокировки по ключу в пределах процесса
package lock

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	ch   chan struct{}
	refs int
}

var (
	mu    sync.Mutex
	locks = map[string]*entry{}
)

// WithDelay выполняет safeCode под блокировкой key.
// Если блокировку не удалось получить за wait или ctx отменен, возвращает success=false без вызова safeCode.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	e := acquire(key)
	defer release(key, e)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case e.ch <- struct{}{}:
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, nil
	}
	defer func() { <-e.ch }()
	return true, safeCode()
}

func acquire(key string) *entry {
	mu.Lock()
	defer mu.Unlock()
	e, ok := locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		locks[key] = e
	}
	e.refs++
	return e
}

func release(key string, e *entry) {
	mu.Lock()
	defer mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(locks, key)
	}
}
