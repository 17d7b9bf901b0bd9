package device

import "sync"

// Simulated is a deterministic in-process input source. It walks the pointer
// across a virtual screen and cycles through a small set of key chords, so
// downstream code sees realistic variation without touching hardware.
type Simulated struct {
	mu     sync.Mutex
	step   int
	width  int
	height int
}

var keyTimeline = [][]string{
	nil,
	{"LShift"},
	{"LControl", "C"},
	{"A"},
	nil,
	{"LControl", "V"},
}

// NewSimulated returns a simulated device for the given virtual screen size.
func NewSimulated(width, height int) *Simulated {
	if width <= 0 {
		width = 1920
	}
	if height <= 0 {
		height = 1080
	}

	return &Simulated{width: width, height: height}
}

// Sample advances the virtual pointer one step and reports the state.
func (s *Simulated) Sample() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		MouseX: (s.step * 7) % s.width,
		MouseY: (s.step * 3) % s.height,
		Keys:   keyTimeline[s.step%len(keyTimeline)],
	}
	s.step++

	return state, nil
}
