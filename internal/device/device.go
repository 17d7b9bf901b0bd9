// Package device abstracts pointer and keyboard state reads so the sampler
// can run against real hardware backends or a simulated source.
package device

// State is one instantaneous reading of the input devices.
type State struct {
	MouseX int
	MouseY int
	Keys   []string
}

// Device reads the current input state. Implementations must be safe for
// repeated calls from a single goroutine; they are polled at the sample rate.
type Device interface {
	Sample() (State, error)
}

// Func adapts a function literal to the Device interface.
type Func func() (State, error)

// Sample calls the underlying function.
func (f Func) Sample() (State, error) {
	return f()
}
