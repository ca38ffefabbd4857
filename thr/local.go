package thr

import (
	stdsync "sync"

	"github.com/nikeinikei/love/os"
)

type localState struct {
	id   os.ThreadID
	name string
}

var (
	localMu  stdsync.Mutex
	localMap map[os.ThreadID]*localState
)

// LocalCreate registers the current goroutine under name and returns its id.
func LocalCreate(name string) os.ThreadID {
	id := os.ThreadGetCurrID()
	localMu.Lock()
	if localMap == nil {
		localMap = make(map[os.ThreadID]*localState)
	}
	localMap[id] = &localState{id: id, name: name}
	localMu.Unlock()
	return id
}

// LocalFree removes local storage for the given goroutine id.
func LocalFree(id os.ThreadID) {
	localMu.Lock()
	if localMap != nil {
		delete(localMap, id)
	}
	localMu.Unlock()
}

// LocalName returns the registered name for a goroutine, or "" if none.
func LocalName(id os.ThreadID) string {
	localMu.Lock()
	defer localMu.Unlock()
	if local := localMap[id]; local != nil {
		return local.name
	}
	return ""
}

// CurrentName returns the registered name of the calling goroutine.
func CurrentName() string {
	return LocalName(os.ThreadGetCurrID())
}
