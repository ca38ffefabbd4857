// Package thread provides the mutex, condition variable and thread objects
// used by higher level threading code, backed by the native primitives in
// package os.
package thread

import (
	"github.com/nikeinikei/love/os"
)

// Mutex is a mutual-exclusion lock. Only NewMutex produces values that
// satisfy it, so a Conditional can never be handed a foreign mutex.
type Mutex interface {
	Lock()
	Unlock()
	TryLock() bool
	// Release destroys the native handle. Calls after the first are no-ops.
	Release()

	native() *os.Mutex
}

// Conditional is a condition variable used together with a Mutex.
type Conditional interface {
	// Signal wakes at least one waiter, if any.
	Signal()
	// Broadcast wakes all waiters.
	Broadcast()
	// Wait atomically unlocks m and blocks until woken. A negative timeoutMs
	// waits forever and returns true. Otherwise it returns false if timeoutMs
	// elapsed first. m is held again on return. Spurious wakeups are possible,
	// so callers re-check their predicate.
	Wait(m Mutex, timeoutMs int) bool
	// Release destroys the native handle. Calls after the first are no-ops.
	Release()
}

// Threadable is a unit of work run on a new thread.
type Threadable interface {
	ThreadFunction()
	ThreadName() string
}

// Thread runs a Threadable on its own OS thread.
type Thread interface {
	// Start launches the thread. It returns false if it is already running.
	Start() bool
	// Wait blocks until the thread function returns.
	Wait()
	IsRunning() bool
	Name() string
	// Err reports a panic recovered from the last run, wrapped in ErrThreadPanic.
	Err() error
}

// NewMutex creates a Mutex. The caller owns it and releases it with Release.
func NewMutex() Mutex {
	return &mutex{handle: os.MutexCreate()}
}

// NewConditional creates a Conditional. The caller owns it and releases it
// with Release.
func NewConditional() Conditional {
	return &conditional{handle: os.CondCreate()}
}

// NewThread creates a Thread for t. The thread is not started.
func NewThread(t Threadable) Thread {
	return &thread{t: t}
}

// Synchronized runs fn while holding m.
func Synchronized(m Mutex, fn func()) {
	m.Lock()
	defer m.Unlock()
	fn()
}

type threadableFunc struct {
	name string
	fn   func()
}

func (f *threadableFunc) ThreadFunction() { f.fn() }

func (f *threadableFunc) ThreadName() string { return f.name }

// ThreadableFunc adapts a function to the Threadable interface.
func ThreadableFunc(name string, fn func()) Threadable {
	return &threadableFunc{name: name, fn: fn}
}
