package os

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
)

// ThreadID identifies a goroutine.
type ThreadID uint64

// ThreadCount tracks running threads created by ThreadCreate.
var ThreadCount int64

// threadIDCounter generates unique thread handle ids.
var threadIDCounter uint64

// ThreadFunc defines a thread entry point.
type ThreadFunc func()

// ThreadHandle represents a goroutine locked to its own OS thread.
type ThreadHandle struct {
	ID     ThreadID
	Name   string
	native atomic.Int64
	done   chan struct{}
}

// NativeID returns the OS thread id the thread ran on, or 0 before it started.
func (h *ThreadHandle) NativeID() int64 {
	if h == nil {
		return 0
	}
	return h.native.Load()
}

// ThreadCreate starts fn on a new goroutine locked to an OS thread.
func ThreadCreate(name string, fn ThreadFunc) *ThreadHandle {
	if fn == nil {
		return nil
	}
	handle := &ThreadHandle{
		ID:   ThreadID(atomic.AddUint64(&threadIDCounter, 1)),
		Name: name,
		done: make(chan struct{}),
	}
	atomic.AddInt64(&ThreadCount, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer func() {
			atomic.AddInt64(&ThreadCount, -1)
			close(handle.done)
		}()
		handle.native.Store(NativeThreadID())
		fn()
	}()
	return handle
}

// ThreadWait blocks until the thread finishes.
func ThreadWait(handle *ThreadHandle) {
	if handle == nil || handle.done == nil {
		return
	}
	<-handle.done
}

// ThreadRunning reports whether the thread has not yet finished.
func ThreadRunning(handle *ThreadHandle) bool {
	if handle == nil || handle.done == nil {
		return false
	}
	select {
	case <-handle.done:
		return false
	default:
		return true
	}
}

// ThreadGetCurrID returns the current goroutine id.
func ThreadGetCurrID() ThreadID {
	return ThreadID(curGoroutineID())
}

func curGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	if n <= 0 {
		return 0
	}
	// Stack header: "goroutine 123 ["
	fields := strings.Fields(strings.TrimPrefix(string(buf[:n]), "goroutine "))
	if len(fields) == 0 {
		return 0
	}
	id, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
