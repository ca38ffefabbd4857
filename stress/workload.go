// Package stress runs workloads that exercise the thread primitives under
// contention and report whether each observed the expected behaviour.
package stress

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/nikeinikei/love/log"
	"github.com/nikeinikei/love/sync"
	"github.com/nikeinikei/love/thread"
)

var (
	// ErrUnknownWorkload reports a workload name that is not registered.
	ErrUnknownWorkload = errors.New("stress: unknown workload")
	// ErrWorkloadFailed reports a workload that observed wrong behaviour.
	ErrWorkloadFailed = errors.New("stress: workload failed")
)

// Result is the outcome of one workload. Stats holds the lock counters
// accumulated while it ran.
type Result struct {
	Name    string
	Elapsed time.Duration
	Stats   sync.Stats
	Err     error
}

type workloadFunc func(cfg *Config) error

var workloads = map[string]workloadFunc{
	"counter":   runCounter,
	"timedwait": runTimedWait,
	"signal":    runSignal,
	"broadcast": runBroadcast,
	"channel":   runChannel,
}

// WorkloadNames returns the registered workload names in sorted order.
func WorkloadNames() []string {
	names := make([]string, 0, len(workloads))
	for name := range workloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run validates cfg and runs each selected workload in order. Workloads
// must not run concurrently with other lock users, since the counters are
// process wide.
func Run(cfg *Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(cfg.Workloads))
	for _, name := range cfg.Workloads {
		sync.ResetStats()
		start := time.Now()
		err := workloads[name](cfg)
		res := Result{Name: name, Elapsed: time.Since(start), Stats: sync.ReadStats(), Err: err}
		log.DebugLog(log.DebugThread, "workload done", "name", name, "elapsed", res.Elapsed,
			"locks", res.Stats.Locks, "timeouts", res.Stats.WaitTimeouts, "err", err)
		results = append(results, res)
	}
	return results, nil
}

func failf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrWorkloadFailed}, args...)...)
}

func startAll(name string, n int, fn func(idx int)) []thread.Thread {
	threads := make([]thread.Thread, n)
	for i := range threads {
		idx := i
		threads[i] = thread.NewThread(thread.ThreadableFunc(fmt.Sprintf("%s-%d", name, idx), func() {
			fn(idx)
		}))
		threads[i].Start()
	}
	return threads
}

func waitAll(threads []thread.Thread) error {
	for _, th := range threads {
		th.Wait()
		if err := th.Err(); err != nil {
			return err
		}
	}
	return nil
}

// runCounter increments a shared counter only while holding the mutex.
func runCounter(cfg *Config) error {
	m := thread.NewMutex()
	defer m.Release()

	counter := 0
	threads := startAll("counter", cfg.Threads, func(int) {
		for i := 0; i < cfg.Iterations; i++ {
			thread.Synchronized(m, func() { counter++ })
		}
	})
	if err := waitAll(threads); err != nil {
		return err
	}
	if want := cfg.Threads * cfg.Iterations; counter != want {
		return failf("counter=%d want %d", counter, want)
	}
	return nil
}

// runTimedWait waits without a signal and expects a timeout.
func runTimedWait(cfg *Config) error {
	m := thread.NewMutex()
	c := thread.NewConditional()
	defer m.Release()
	defer c.Release()

	m.Lock()
	start := time.Now()
	woken := c.Wait(m, cfg.TimeoutMs)
	elapsed := time.Since(start)
	held := !m.TryLock()
	m.Unlock()
	if woken {
		return failf("unsignalled wait reported a wake")
	}
	if elapsed < time.Duration(cfg.TimeoutMs)*time.Millisecond {
		return failf("wait returned after %v, timeout %dms", elapsed, cfg.TimeoutMs)
	}
	if !held {
		return failf("mutex not held after wait")
	}
	return nil
}

// runSignal ping-pongs a token between two threads with Signal.
func runSignal(cfg *Config) error {
	m := thread.NewMutex()
	c := thread.NewConditional()
	defer m.Release()
	defer c.Release()

	turn := 0
	rounds := cfg.Iterations / 10
	if rounds == 0 {
		rounds = 1
	}
	threads := startAll("signal", 2, func(idx int) {
		for i := 0; i < rounds; i++ {
			m.Lock()
			for turn != idx {
				c.Wait(m, -1)
			}
			turn = 1 - idx
			c.Signal()
			m.Unlock()
		}
	})
	return waitAll(threads)
}

// runBroadcast parks every thread on the conditional and releases them with
// a single Broadcast.
func runBroadcast(cfg *Config) error {
	m := thread.NewMutex()
	c := thread.NewConditional()
	defer m.Release()
	defer c.Release()

	var parked, woke int32
	open := false
	threads := startAll("broadcast", cfg.Threads, func(int) {
		m.Lock()
		atomic.AddInt32(&parked, 1)
		c.Signal()
		for !open {
			c.Wait(m, -1)
		}
		atomic.AddInt32(&woke, 1)
		m.Unlock()
	})

	m.Lock()
	for int(atomic.LoadInt32(&parked)) < cfg.Threads {
		c.Wait(m, cfg.TimeoutMs)
	}
	open = true
	c.Broadcast()
	m.Unlock()

	if err := waitAll(threads); err != nil {
		return err
	}
	if got := int(atomic.LoadInt32(&woke)); got != cfg.Threads {
		return failf("woke=%d want %d", got, cfg.Threads)
	}
	return nil
}

// runChannel streams messages from producers to one consumer.
func runChannel(cfg *Config) error {
	ch := thread.NewChannel()
	defer ch.Release()

	perProducer := cfg.Iterations / cfg.Threads
	if perProducer == 0 {
		perProducer = 1
	}
	total := perProducer * cfg.Threads
	producers := startAll("producer", cfg.Threads, func(idx int) {
		for i := 0; i < perProducer; i++ {
			ch.Push(idx)
		}
	})

	received := 0
	for received < total {
		if _, ok := ch.Demand(-1); !ok {
			break
		}
		received++
	}
	if err := waitAll(producers); err != nil {
		return err
	}
	if received != total {
		return failf("received=%d want %d", received, total)
	}
	return nil
}
