package lock

import (
	"context"
	"sync"
	"time"
)

// keyed lock: на каждый ключ один канал-семафор емкостью 1
var (
	mu    sync.Mutex
	locks = map[string]*keyLock{}
)

type keyLock struct {
	ch      chan struct{}
	holders int
}

func acquireKey(key string) *keyLock {
	mu.Lock()
	defer mu.Unlock()
	l, ok := locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		locks[key] = l
	}
	l.holders++
	return l
}

func releaseKey(key string, l *keyLock) {
	mu.Lock()
	defer mu.Unlock()
	l.holders--
	if l.holders == 0 {
		delete(locks, key)
	}
}

// WithDelay выполняет safeCode под блокировкой key, ожидая ее не дольше wait.
// success=false - блокировку получить не удалось (таймаут или завершен контекст)
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	l := acquireKey(key)
	defer releaseKey(key, l)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case l.ch <- struct{}{}:
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, nil
	}
	defer func() { <-l.ch }()
	return true, safeCode()
}
