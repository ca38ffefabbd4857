package thread

import (
	"math"
	"time"

	"github.com/nikeinikei/love/log"
	"github.com/nikeinikei/love/os"
)

// maxTimeoutMs is the largest millisecond count a time.Duration can hold.
const maxTimeoutMs = math.MaxInt64 / int64(time.Millisecond)

// timeoutDuration converts a non-negative millisecond timeout, saturating
// instead of overflowing.
func timeoutDuration(timeoutMs int) time.Duration {
	if int64(timeoutMs) > maxTimeoutMs {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(timeoutMs) * time.Millisecond
}

type conditional struct {
	handle *os.Cond
}

func (c *conditional) Signal() {
	os.CondSignal(c.handle)
}

func (c *conditional) Broadcast() {
	os.CondBroadcast(c.handle)
}

func (c *conditional) Wait(m Mutex, timeoutMs int) bool {
	var nm *os.Mutex
	if m != nil {
		nm = m.native()
	}
	if timeoutMs < 0 {
		os.CondWait(c.handle, nm)
		return true
	}
	woken := os.CondWaitTimeout(c.handle, nm, timeoutDuration(timeoutMs))
	if !woken {
		log.DebugLog(log.DebugSync, "conditional wait timed out", "timeoutms", timeoutMs)
	}
	return woken
}

func (c *conditional) Release() {
	os.CondDestroy(c.handle)
}
