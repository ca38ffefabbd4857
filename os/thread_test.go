package os

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThreadCreateAndWait(t *testing.T) {
	var ran int32
	release := make(chan struct{})
	handle := ThreadCreate("worker", func() {
		<-release
		atomic.StoreInt32(&ran, 1)
	})
	require.NotNil(t, handle)
	require.NotZero(t, handle.ID)
	require.Equal(t, "worker", handle.Name)
	require.True(t, ThreadRunning(handle))

	close(release)
	ThreadWait(handle)
	require.False(t, ThreadRunning(handle))
	require.Equal(t, int32(1), atomic.LoadInt32(&ran))
	if runtime.GOOS == "linux" {
		require.NotZero(t, handle.NativeID())
	}
}

func TestThreadCreateNil(t *testing.T) {
	require.Nil(t, ThreadCreate("nil", nil))
	ThreadWait(nil)
	require.False(t, ThreadRunning(nil))
	require.Zero(t, (*ThreadHandle)(nil).NativeID())
}

func TestThreadCountReturnsToBaseline(t *testing.T) {
	start := atomic.LoadInt64(&ThreadCount)
	handles := make([]*ThreadHandle, 4)
	for i := range handles {
		handles[i] = ThreadCreate("count", func() {})
	}
	for _, h := range handles {
		ThreadWait(h)
	}
	require.Equal(t, start, atomic.LoadInt64(&ThreadCount))
}

func TestThreadGetCurrID(t *testing.T) {
	id := ThreadGetCurrID()
	require.NotZero(t, id)
	other := make(chan ThreadID)
	go func() { other <- ThreadGetCurrID() }()
	require.NotEqual(t, id, <-other)
}
