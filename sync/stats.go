package sync

import "sync/atomic"

// LockCount tracks native mutex acquisitions.
var LockCount int64

// UnlockCount tracks native mutex releases.
var UnlockCount int64

// WaitTimeoutCount tracks condition waits that ended by timeout.
var WaitTimeoutCount int64

// ResetStats resets lock counters.
func ResetStats() {
	atomic.StoreInt64(&LockCount, 0)
	atomic.StoreInt64(&UnlockCount, 0)
	atomic.StoreInt64(&WaitTimeoutCount, 0)
}

// CountLock records a lock acquisition.
func CountLock() {
	atomic.AddInt64(&LockCount, 1)
}

// CountUnlock records a lock release.
func CountUnlock() {
	atomic.AddInt64(&UnlockCount, 1)
}

// CountWaitTimeout records a timed out wait.
func CountWaitTimeout() {
	atomic.AddInt64(&WaitTimeoutCount, 1)
}

// Stats is a snapshot of the lock counters.
type Stats struct {
	Locks        int64
	Unlocks      int64
	WaitTimeouts int64
}

// ReadStats returns the current counter values.
func ReadStats() Stats {
	return Stats{
		Locks:        atomic.LoadInt64(&LockCount),
		Unlocks:      atomic.LoadInt64(&UnlockCount),
		WaitTimeouts: atomic.LoadInt64(&WaitTimeoutCount),
	}
}
