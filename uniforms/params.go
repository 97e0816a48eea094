package uniforms

import (
	"fmt"
	"sync"
)

// ParamSource carries the four general-purpose float parameters set by
// external controllers (MIDI knobs, remote control values) plus the
// debug-axes flag. The parameter count is a fixed part of the uniform
// contract; there is no extension point for more.
type ParamSource struct {
	mu        sync.Mutex
	params    [4]float32
	debugAxes bool
}

func NewParamSource() *ParamSource {
	return &ParamSource{}
}

// SetParam sets parameter index (0-3). Out-of-range indexes are rejected.
func (s *ParamSource) SetParam(index int, value float32) error {
	if index < 0 || index > 3 {
		return fmt.Errorf("parameter index %d out of range [0,3]", index)
	}
	s.mu.Lock()
	s.params[index] = value
	s.mu.Unlock()
	return nil
}

func (s *ParamSource) SetDebugAxes(on bool) {
	s.mu.Lock()
	s.debugAxes = on
	s.mu.Unlock()
}

func (s *ParamSource) Update(dt float64) {}

func (s *ParamSource) Uniforms() Map {
	s.mu.Lock()
	p := s.params
	dbg := int32(0)
	if s.debugAxes {
		dbg = 1
	}
	s.mu.Unlock()
	return Map{
		"iParam1":    Float(p[0]),
		"iParam2":    Float(p[1]),
		"iParam3":    Float(p[2]),
		"iParam4":    Float(p[3]),
		"iParams":    Vec4(p[0], p[1], p[2], p[3]),
		"iDebugAxes": Int(dbg),
	}
}
