//go:build !tinygo

package critical

import "sync/atomic"

// State is a placeholder for interrupt state on regular Go
type State uintptr

var depth int32

// Disable records entry into a critical section (for testing)
func Disable() State {
	return State(atomic.AddInt32(&depth, 1) - 1)
}

// Restore records leaving a critical section (for testing)
func Restore(state State) {
	atomic.StoreInt32(&depth, int32(state))
}

// Active reports whether a critical section is currently open.
// The host register model uses it to check that multi-write sequences
// run masked.
func Active() bool {
	return atomic.LoadInt32(&depth) > 0
}
