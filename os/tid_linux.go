//go:build linux

package os

import "golang.org/x/sys/unix"

// NativeThreadID returns the kernel id of the calling OS thread.
func NativeThreadID() int64 {
	return int64(unix.Gettid())
}
