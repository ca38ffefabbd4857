package thread

import (
	"time"

	"github.com/nikeinikei/love/log"
)

// Channel is a thread-safe FIFO message queue. Every pushed message gets an
// increasing id; a message counts as read once it is popped or cleared.
type Channel struct {
	mutex    Mutex
	cond     Conditional
	queue    []any
	sent     uint64
	received uint64
}

// NewChannel creates an empty Channel. The caller releases it with Release.
func NewChannel() *Channel {
	return &Channel{
		mutex: NewMutex(),
		cond:  NewConditional(),
	}
}

// Push appends v and returns its message id.
func (c *Channel) Push(v any) uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.push(v)
}

// Supply pushes v and blocks until it has been read. It returns false if
// timeoutMs (negative for no limit) elapsed first; the message stays queued.
func (c *Channel) Supply(v any, timeoutMs int) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	id := c.push(v)
	return c.waitUntil(timeoutMs, func() bool { return c.received >= id })
}

// Pop removes and returns the oldest message.
func (c *Channel) Pop() (any, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.pop()
}

// Demand blocks until a message is available and pops it. It returns false
// if timeoutMs (negative for no limit) elapsed first.
func (c *Channel) Demand(timeoutMs int) (any, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	var v any
	ok := c.waitUntil(timeoutMs, func() bool {
		var popped bool
		v, popped = c.pop()
		return popped
	})
	return v, ok
}

// Peek returns the oldest message without removing it.
func (c *Channel) Peek() (any, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.queue) == 0 {
		return nil, false
	}
	return c.queue[0], true
}

// Count reports the number of queued messages.
func (c *Channel) Count() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.queue)
}

// HasRead reports whether the message with the given id has been read.
func (c *Channel) HasRead(id uint64) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.received >= id
}

// Clear drops all queued messages and marks them read.
func (c *Channel) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.queue) == 0 {
		return
	}
	c.queue = nil
	c.received = c.sent
	c.cond.Broadcast()
}

// Release destroys the channel's mutex and conditional.
func (c *Channel) Release() {
	c.cond.Release()
	c.mutex.Release()
}

func (c *Channel) push(v any) uint64 {
	c.queue = append(c.queue, v)
	c.sent++
	c.cond.Broadcast()
	log.DebugLog(log.DebugChannel, "channel push", "id", c.sent, "count", len(c.queue))
	return c.sent
}

func (c *Channel) pop() (any, bool) {
	if len(c.queue) == 0 {
		return nil, false
	}
	v := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	c.received++
	c.cond.Broadcast()
	return v, true
}

// waitUntil must be called with c.mutex held.
func (c *Channel) waitUntil(timeoutMs int, done func() bool) bool {
	if timeoutMs < 0 {
		for !done() {
			c.cond.Wait(c.mutex, -1)
		}
		return true
	}
	deadline := time.Now().Add(timeoutDuration(timeoutMs))
	for {
		if done() {
			return true
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		waitMs := remaining / time.Millisecond
		if remaining%time.Millisecond != 0 {
			waitMs++
		}
		c.cond.Wait(c.mutex, int(waitMs))
	}
}
