package thread

import (
	"errors"
	"fmt"
	stdsync "sync"

	"github.com/nikeinikei/love/log"
	"github.com/nikeinikei/love/os"
	"github.com/nikeinikei/love/thr"
)

// ErrThreadPanic wraps a panic raised by a thread function.
var ErrThreadPanic = errors.New("thread: thread function panicked")

type thread struct {
	t      Threadable
	mu     stdsync.Mutex
	handle *os.ThreadHandle
	err    error
}

func (th *thread) Name() string {
	if th.t == nil {
		return ""
	}
	return th.t.ThreadName()
}

func (th *thread) Start() bool {
	if th.t == nil {
		return false
	}
	th.mu.Lock()
	defer th.mu.Unlock()
	if os.ThreadRunning(th.handle) {
		return false
	}
	th.err = nil
	th.handle = os.ThreadCreate(th.Name(), th.run)
	return th.handle != nil
}

func (th *thread) Wait() {
	th.mu.Lock()
	h := th.handle
	th.mu.Unlock()
	os.ThreadWait(h)
}

func (th *thread) IsRunning() bool {
	th.mu.Lock()
	defer th.mu.Unlock()
	return os.ThreadRunning(th.handle)
}

func (th *thread) Err() error {
	th.mu.Lock()
	defer th.mu.Unlock()
	return th.err
}

func (th *thread) run() {
	name := th.Name()
	id := thr.LocalCreate(name)
	defer thr.LocalFree(id)
	// Start holds th.mu until the handle is stored.
	th.mu.Lock()
	h := th.handle
	th.mu.Unlock()
	log.DebugLog(log.DebugThread, "thread start", "tid", h.NativeID())
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %s: %v", ErrThreadPanic, name, r)
			th.mu.Lock()
			th.err = err
			th.mu.Unlock()
			log.WarnLog("thread panicked", "err", err)
		}
		log.DebugLog(log.DebugThread, "thread finish")
	}()
	th.t.ThreadFunction()
}
