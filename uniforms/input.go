package uniforms

import (
	"sync"

	"github.com/glowdeck/glowdeck/camera"
)

// InputSource exposes the raw directional input as a shader uniform and
// doubles as the poll point for the camera. The input-handling layer calls
// Set from its own event loop; the render loop polls Current once per frame.
type InputSource struct {
	mu sync.Mutex
	in camera.Input
}

func NewInputSource() *InputSource {
	return &InputSource{}
}

// Set replaces the current directional state.
func (s *InputSource) Set(in camera.Input) {
	s.mu.Lock()
	s.in = in
	s.mu.Unlock()
}

// Current returns the latest directional state.
func (s *InputSource) Current() camera.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in
}

func (s *InputSource) Update(dt float64) {}

// Uniforms packs the six directions into a signed vec3 plus the modifier
// flag: x = right-left, y = up-down, z = forward-back, w = precision.
func (s *InputSource) Uniforms() Map {
	in := s.Current()
	mod := float32(0)
	if in.Precise {
		mod = 1
	}
	return Map{
		"iInputDir": Vec4(in.Right-in.Left, in.Up-in.Down, in.Forward-in.Back, mod),
	}
}
