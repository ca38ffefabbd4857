package os

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitForWaiters(t *testing.T, c *Cond, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for CondWaiters(c) < n {
		if time.Now().After(deadline) {
			t.Fatalf("waiters=%d, want %d", CondWaiters(c), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestCondWaitTimeoutExpires(t *testing.T) {
	c := CondCreate()
	m := MutexCreate()
	defer CondDestroy(c)
	defer MutexDestroy(m)

	MutexLock(m)
	start := time.Now()
	woken := CondWaitTimeout(c, m, 20*time.Millisecond)
	elapsed := time.Since(start)
	require.False(t, woken)
	require.GreaterOrEqual(t, int64(elapsed), int64(20*time.Millisecond))
	require.False(t, MutexTryLock(m), "mutex must be held after wait")
	MutexUnlock(m)
	require.Equal(t, 0, CondWaiters(c))
}

func TestCondSignalWakesWaiter(t *testing.T) {
	c := CondCreate()
	m := MutexCreate()
	defer CondDestroy(c)
	defer MutexDestroy(m)

	done := make(chan bool)
	go func() {
		MutexLock(m)
		woken := CondWaitTimeout(c, m, 5*time.Second)
		MutexUnlock(m)
		done <- woken
	}()
	waitForWaiters(t, c, 1)
	MutexLock(m)
	CondSignal(c)
	MutexUnlock(m)
	select {
	case woken := <-done:
		require.True(t, woken)
	case <-time.After(time.Second):
		t.Fatalf("signal did not wake waiter")
	}
}

func TestCondBroadcastWakesAll(t *testing.T) {
	c := CondCreate()
	m := MutexCreate()
	defer CondDestroy(c)
	defer MutexDestroy(m)

	const n = 5
	var returned int32
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		go func() {
			MutexLock(m)
			CondWait(c, m)
			MutexUnlock(m)
			atomic.AddInt32(&returned, 1)
			done <- struct{}{}
		}()
	}
	waitForWaiters(t, c, n)
	CondBroadcast(c)
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("only %d of %d waiters woke", atomic.LoadInt32(&returned), n)
		}
	}
}

func TestCondDestroyOnce(t *testing.T) {
	start := atomic.LoadInt64(&CondCount)
	c := CondCreate()
	require.True(t, CondDestroy(c))
	require.False(t, CondDestroy(c))
	require.Equal(t, start, atomic.LoadInt64(&CondCount))
}
