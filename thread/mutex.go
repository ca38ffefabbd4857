package thread

import (
	"github.com/nikeinikei/love/os"
)

type mutex struct {
	handle *os.Mutex
}

func (m *mutex) Lock() {
	os.MutexLock(m.handle)
}

func (m *mutex) Unlock() {
	os.MutexUnlock(m.handle)
}

func (m *mutex) TryLock() bool {
	return os.MutexTryLock(m.handle)
}

func (m *mutex) Release() {
	os.MutexDestroy(m.handle)
}

func (m *mutex) native() *os.Mutex {
	return m.handle
}
