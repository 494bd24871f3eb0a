package lock

import (
	"context"
	"sync"
	"sync/atomic"
)

// Resource lock для обращений к ИИ, одновременно выполняется только один запрос
var Resource = newResourceLock()

func InitResourceLock(ctx context.Context) {
	Resource = newResourceLock()

	go func() {
		<-ctx.Done()
		Resource.Stop()
	}()
}

type ResourceLock struct {
	mu        sync.Mutex
	sem       chan struct{}
	holder    string
	waitCount int32
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func newResourceLock() *ResourceLock {
	return &ResourceLock{
		sem:    make(chan struct{}, 1),
		stopCh: make(chan struct{}),
	}
}

// Acquire захватывает ресурс для functionName.
// false - контекст завершен или lock остановлен
func (c *ResourceLock) Acquire(ctx context.Context, functionName string) bool {
	atomic.AddInt32(&c.waitCount, 1)
	defer atomic.AddInt32(&c.waitCount, -1)

	select {
	case <-c.stopCh:
		return false
	default:
	}
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return false
	case <-c.stopCh:
		return false
	}
	c.mu.Lock()
	c.holder = functionName
	c.mu.Unlock()
	return true
}

// Release освобождает ресурс
func (c *ResourceLock) Release(functionName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.holder != functionName {
		return
	}
	c.holder = ""
	<-c.sem
}

// Stop прерывает всех ожидающих
func (c *ResourceLock) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

// WaitCount количество ожидающих горутин
func (c *ResourceLock) WaitCount() int {
	return int(atomic.LoadInt32(&c.waitCount))
}
