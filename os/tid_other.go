//go:build !linux

package os

// NativeThreadID returns 0 where the kernel thread id is not exposed.
func NativeThreadID() int64 {
	return 0
}
