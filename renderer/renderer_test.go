package renderer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdeck/glowdeck/camera"
	"github.com/glowdeck/glowdeck/frame"
	"github.com/glowdeck/glowdeck/mapper"
	"github.com/glowdeck/glowdeck/uniforms"
)

// fakeEngine records the pass sequence and returns buffers colored by pass
// index so layout order is observable.
type fakeEngine struct {
	width, height  int
	setResolutions int
	renders        int
	failRender     bool
}

func (e *fakeEngine) SetResolution(width, height int) {
	e.width, e.height = width, height
	e.setResolutions++
}

func (e *fakeEngine) Render() error {
	if e.failRender {
		return fmt.Errorf("compile failed")
	}
	e.renders++
	return nil
}

func (e *fakeEngine) ReadPixels() (*frame.Buffer, error) {
	buf := frame.New(e.width, e.height)
	buf.Fill(byte(e.renders), 0, 0)
	return buf, nil
}

func TestRenderFrameSurface(t *testing.T) {
	eng := &fakeEngine{}
	r := New(eng, mapper.NewSurface(8, 4), nil)

	out, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, 8, out.Width)
	assert.Equal(t, 4, out.Height)
	assert.Equal(t, 1, eng.renders)

	w, h := r.OutputSize()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)
}

func TestRenderFrameCubeLayout(t *testing.T) {
	eng := &fakeEngine{}
	cube, err := mapper.NewCube(6, 4, 4, nil)
	require.NoError(t, err)
	r := New(eng, cube, nil)

	out, err := r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, 24, out.Width)
	assert.Equal(t, 4, out.Height)
	assert.Equal(t, 6, eng.renders)

	// Passes land left to right in pass order.
	for i := 0; i < 6; i++ {
		red, _, _ := out.At(i*4, 0)
		assert.Equal(t, byte(i+1), red, "face %d", i)
	}
}

func TestRenderFrameSwitchesResolutionOnlyOnChange(t *testing.T) {
	eng := &fakeEngine{}
	cube, err := mapper.NewCube(6, 4, 4, nil)
	require.NoError(t, err)
	r := New(eng, cube, nil)

	_, err = r.RenderFrame()
	require.NoError(t, err)
	// Six same-size passes: one switch on the first pass only.
	assert.Equal(t, 1, eng.setResolutions)

	_, err = r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, 1, eng.setResolutions)
}

func TestRenderFrameOverrideClearedAfterFrame(t *testing.T) {
	eng := &fakeEngine{}
	orbit := camera.NewOrbit(3, 1, 10)
	camSrc := uniforms.NewCameraSource(orbit, nil)
	cube, err := mapper.NewCube(2, 4, 4, orbit)
	require.NoError(t, err)
	r := New(eng, cube, camSrc)

	before := camSrc.Uniforms()
	_, err = r.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, before, camSrc.Uniforms())
}

func TestRenderFrameOverrideClearedOnError(t *testing.T) {
	eng := &fakeEngine{failRender: true}
	orbit := camera.NewOrbit(3, 1, 10)
	camSrc := uniforms.NewCameraSource(orbit, nil)
	cube, err := mapper.NewCube(2, 4, 4, orbit)
	require.NoError(t, err)
	r := New(eng, cube, camSrc)

	before := camSrc.Uniforms()
	_, err = r.RenderFrame()
	require.Error(t, err)
	assert.Equal(t, before, camSrc.Uniforms())
}
