//go:build love_legacycond

package os

import (
	stdsync "sync"
	"sync/atomic"
	"time"

	"github.com/nikeinikei/love/sync"
)

// CondBackend names the compiled condition variable implementation.
const CondBackend = "legacy"

// CondCount tracks live native condition variables.
var CondCount int64

// Cond is a native condition variable handle backed by sync.Cond. Timeouts
// broadcast, so other waiters may see spurious wakeups.
type Cond struct {
	mu        stdsync.Mutex
	cond      *stdsync.Cond
	waiting   int
	destroyed atomic.Bool
}

// CondCreate creates a native condition variable.
func CondCreate() *Cond {
	c := &Cond{}
	c.cond = stdsync.NewCond(&c.mu)
	atomic.AddInt64(&CondCount, 1)
	return c
}

// CondSignal wakes one waiter, if any.
func CondSignal(c *Cond) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.cond.Signal()
	c.mu.Unlock()
}

// CondBroadcast wakes all waiters.
func CondBroadcast(c *Cond) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.cond.Broadcast()
	c.mu.Unlock()
}

// CondWait releases m, blocks until woken and reacquires m.
func CondWait(c *Cond, m *Mutex) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.waiting++
	MutexUnlock(m)
	c.cond.Wait()
	c.waiting--
	c.mu.Unlock()
	MutexLock(m)
}

// CondWaitTimeout is CondWait bounded by timeout. It returns false if the
// timeout fired before the waiter resumed, so a real wake that lands just
// before the timer fires can still be reported as false. The timeout wakes by
// broadcast, which lets other timed waiters return true without a signal.
func CondWaitTimeout(c *Cond, m *Mutex, timeout time.Duration) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	c.waiting++
	MutexUnlock(m)
	timer := time.AfterFunc(timeout, func() {
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	c.cond.Wait()
	c.waiting--
	c.mu.Unlock()
	woken := timer.Stop()
	if !woken {
		sync.CountWaitTimeout()
	}
	MutexLock(m)
	return woken
}

// CondWaiters reports the number of blocked waiters.
func CondWaiters(c *Cond) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiting
}

// CondDestroy releases a native condition variable. It reports false if the
// handle was already destroyed.
func CondDestroy(c *Cond) bool {
	if c == nil || !c.destroyed.CompareAndSwap(false, true) {
		return false
	}
	atomic.AddInt64(&CondCount, -1)
	return true
}
