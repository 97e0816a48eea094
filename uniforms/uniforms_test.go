package uniforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdeck/glowdeck/camera"
)

type stubSource struct {
	updates int
	out     Map
}

func (s *stubSource) Update(dt float64) { s.updates++ }
func (s *stubSource) Uniforms() Map     { return s.out }

func TestManagerUpdatesEverySource(t *testing.T) {
	a := &stubSource{out: Map{}}
	b := &stubSource{out: Map{}}
	m := NewManager()
	m.Add(a)
	m.Add(b)

	m.Update(1.0 / 60)
	m.Update(1.0 / 60)
	assert.Equal(t, 2, a.updates)
	assert.Equal(t, 2, b.updates)
}

func TestManagerMergedLaterSourceWins(t *testing.T) {
	first := &stubSource{out: Map{"iTime": Float(1), "iParam1": Float(7)}}
	second := &stubSource{out: Map{"iTime": Float(2)}}
	m := NewManager()
	m.Add(first)
	m.Add(second)

	merged := m.Merged()
	assert.Equal(t, Float(2), merged["iTime"])
	assert.Equal(t, Float(7), merged["iParam1"])
}

func TestInputSourceUniform(t *testing.T) {
	s := NewInputSource()
	s.Set(camera.Input{Right: 1, Down: 0.5, Forward: 1, Precise: true})

	u := s.Uniforms()
	v, ok := u["iInputDir"]
	require.True(t, ok)
	assert.Equal(t, KindVec4, v.Kind)
	assert.Equal(t, float32(1), v.Vec[0])
	assert.Equal(t, float32(-0.5), v.Vec[1])
	assert.Equal(t, float32(1), v.Vec[2])
	assert.Equal(t, float32(1), v.Vec[3])
}

func TestParamSourceRangeAndOutput(t *testing.T) {
	s := NewParamSource()
	require.Error(t, s.SetParam(-1, 0))
	require.Error(t, s.SetParam(4, 0))
	require.NoError(t, s.SetParam(0, 0.25))
	require.NoError(t, s.SetParam(3, 0.75))
	s.SetDebugAxes(true)

	u := s.Uniforms()
	assert.Equal(t, Float(0.25), u["iParam1"])
	assert.Equal(t, Float(0.75), u["iParam4"])
	assert.Equal(t, Vec4(0.25, 0, 0, 0.75), u["iParams"])
	assert.Equal(t, Int(1), u["iDebugAxes"])
}

func TestCameraSourceOverride(t *testing.T) {
	orbit := camera.NewOrbit(3, 1, 10)
	s := NewCameraSource(orbit, nil)

	base := s.Uniforms()
	assert.InDelta(t, 3, base["iCamPos"].Vec[2], 1e-5)

	// Override replaces the uniform output without touching the model.
	fixed := camera.NewStatic([3]float32{5, 0, 0}, [3]float32{0, 0, 0})
	s.SetOverride(fixed)
	over := s.Uniforms()
	assert.InDelta(t, 5, over["iCamPos"].Vec[0], 1e-5)
	assert.Same(t, camera.Camera(orbit), s.Camera())

	s.ClearOverride()
	restored := s.Uniforms()
	assert.Equal(t, base, restored)
}

func TestCameraSourceUpdateDrivesModelNotOverride(t *testing.T) {
	orbit := camera.NewOrbit(3, 1, 10)
	polled := camera.Input{Right: 1}
	s := NewCameraSource(orbit, func() camera.Input { return polled })

	s.SetOverride(camera.NewStatic([3]float32{0, 0, 1}, [3]float32{0, 0, 0}))
	for i := 0; i < 10; i++ {
		s.Update(1.0 / 60)
	}
	// The wrapped model kept moving while the override was active.
	assert.NotZero(t, orbit.Yaw())
}
