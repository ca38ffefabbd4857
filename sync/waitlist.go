package sync

import (
	stdsync "sync"
)

// Waiter is a single slot in a WaitList.
type Waiter struct {
	ch     chan struct{}
	queued bool
}

// C returns a channel that is closed when the waiter is woken.
func (w *Waiter) C() <-chan struct{} {
	return w.ch
}

// WaitList is a FIFO of blocked waiters. Each waiter is woken at most once.
type WaitList struct {
	mu      stdsync.Mutex
	waiters []*Waiter
}

// NewWaitList creates an empty wait list.
func NewWaitList() *WaitList {
	return &WaitList{}
}

// Enqueue appends a new waiter to the tail of the list.
func (l *WaitList) Enqueue() *Waiter {
	w := &Waiter{ch: make(chan struct{}), queued: true}
	l.mu.Lock()
	l.waiters = append(l.waiters, w)
	l.mu.Unlock()
	return w
}

// Signal wakes the oldest waiter. It reports whether a waiter was woken.
func (l *WaitList) Signal() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.waiters) == 0 {
		return false
	}
	w := l.waiters[0]
	l.waiters[0] = nil
	l.waiters = l.waiters[1:]
	l.wake(w)
	return true
}

// Broadcast wakes every queued waiter and returns how many were woken.
func (l *WaitList) Broadcast() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.waiters)
	for i, w := range l.waiters {
		l.wake(w)
		l.waiters[i] = nil
	}
	l.waiters = l.waiters[:0]
	return n
}

// Remove withdraws a waiter that gave up waiting. It returns false if the
// waiter was already woken, in which case the wake must be honoured.
func (l *WaitList) Remove(w *Waiter) bool {
	if w == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !w.queued {
		return false
	}
	for i := range l.waiters {
		if l.waiters[i] == w {
			copy(l.waiters[i:], l.waiters[i+1:])
			l.waiters[len(l.waiters)-1] = nil
			l.waiters = l.waiters[:len(l.waiters)-1]
			w.queued = false
			return true
		}
	}
	return false
}

// Len reports the number of queued waiters.
func (l *WaitList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.waiters)
}

func (l *WaitList) wake(w *Waiter) {
	w.queued = false
	close(w.ch)
}
