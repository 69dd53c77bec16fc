// Package debug carries the HAL's diagnostic output. Firmware points the
// writer at a serial port; tests point it at a buffer.
package debug

// Writer is a function type for writing debug messages
type Writer func(string)

var (
	// writer is the global debug print function (set by platform code)
	writer Writer = func(s string) {} // No-op by default

	// enabled controls whether debug output is active
	// Disabled by default so configuration code stays quiet in production
	enabled bool = false
)

// SetWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to USART0, a test buffer, etc.
func SetWriter(w Writer) {
	if w == nil {
		w = func(string) {}
	}
	writer = w
}

// SetEnabled enables or disables debug output
func SetEnabled(on bool) {
	enabled = on
}

// Enabled returns whether debug output is enabled
func Enabled() bool {
	return enabled
}

// Println writes a debug message using the platform-specific writer
func Println(msg string) {
	if enabled {
		writer(msg)
	}
}
