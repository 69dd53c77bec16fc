// Package critical masks interrupts around register sequences whose
// intermediate states must not be observed by an interrupt handler.
package critical

// Section runs fn with interrupts disabled and restores the previous
// interrupt state on every exit path, including a panic inside fn.
func Section(fn func()) {
	state := Disable()
	defer Restore(state)
	fn()
}
