//go:build !love_legacycond

package os

import (
	"sync/atomic"
	"time"

	"github.com/nikeinikei/love/sync"
)

// CondBackend names the compiled condition variable implementation.
const CondBackend = "waitlist"

// CondCount tracks live native condition variables.
var CondCount int64

// Cond is a native condition variable handle backed by a FIFO wait list.
type Cond struct {
	waiters   *sync.WaitList
	destroyed atomic.Bool
}

// CondCreate creates a native condition variable.
func CondCreate() *Cond {
	atomic.AddInt64(&CondCount, 1)
	return &Cond{waiters: sync.NewWaitList()}
}

// CondSignal wakes the oldest waiter, if any.
func CondSignal(c *Cond) {
	if c == nil {
		return
	}
	c.waiters.Signal()
}

// CondBroadcast wakes all waiters.
func CondBroadcast(c *Cond) {
	if c == nil {
		return
	}
	c.waiters.Broadcast()
}

// CondWait releases m, blocks until woken and reacquires m.
func CondWait(c *Cond, m *Mutex) {
	if c == nil {
		return
	}
	w := c.waiters.Enqueue()
	MutexUnlock(m)
	<-w.C()
	MutexLock(m)
}

// CondWaitTimeout is CondWait bounded by timeout. It returns false if the
// timeout elapsed before a wake.
func CondWaitTimeout(c *Cond, m *Mutex, timeout time.Duration) bool {
	if c == nil {
		return false
	}
	w := c.waiters.Enqueue()
	MutexUnlock(m)
	woken := true
	timer := time.NewTimer(timeout)
	select {
	case <-w.C():
		timer.Stop()
	case <-timer.C:
		// A wake that raced the timer still counts.
		if c.waiters.Remove(w) {
			woken = false
			sync.CountWaitTimeout()
		}
	}
	MutexLock(m)
	return woken
}

// CondWaiters reports the number of blocked waiters.
func CondWaiters(c *Cond) int {
	if c == nil {
		return 0
	}
	return c.waiters.Len()
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
