package os

import (
	stdsync "sync"
	"sync/atomic"

	"github.com/nikeinikei/love/sync"
)

// MutexCount tracks live native mutexes.
var MutexCount int64

// Mutex is a native mutual-exclusion handle.
type Mutex struct {
	mu        stdsync.Mutex
	destroyed atomic.Bool
}

// MutexCreate creates a native mutex.
func MutexCreate() *Mutex {
	atomic.AddInt64(&MutexCount, 1)
	return &Mutex{}
}

// MutexLock acquires the mutex.
func MutexLock(m *Mutex) {
	if m == nil {
		return
	}
	m.mu.Lock()
	sync.CountLock()
}

// MutexUnlock releases the mutex.
func MutexUnlock(m *Mutex) {
	if m == nil {
		return
	}
	sync.CountUnlock()
	m.mu.Unlock()
}

// MutexTryLock tries to acquire the mutex without blocking.
func MutexTryLock(m *Mutex) bool {
	if m == nil {
		return false
	}
	if !m.mu.TryLock() {
		return false
	}
	sync.CountLock()
	return true
}

// MutexDestroy releases a native mutex. It reports false if the handle was
// already destroyed.
func MutexDestroy(m *Mutex) bool {
	if m == nil || !m.destroyed.CompareAndSwap(false, true) {
		return false
	}
	atomic.AddInt64(&MutexCount, -1)
	return true
}
