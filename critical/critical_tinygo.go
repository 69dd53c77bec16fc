//go:build tinygo

package critical

import "runtime/interrupt"

// State is the saved interrupt enable state.
type State = interrupt.State

// Disable disables interrupts and returns the previous state
func Disable() State {
	return interrupt.Disable()
}

// Restore restores the interrupt state
func Restore(state State) {
	interrupt.Restore(state)
}
