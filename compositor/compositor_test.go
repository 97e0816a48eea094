package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdeck/glowdeck/frame"
)

func TestMergeBlackLayerIsTransparent(t *testing.T) {
	base := frame.New(4, 4)
	base.Fill(10, 20, 30)
	black := frame.New(4, 4)

	out, err := Merge(base, black)
	require.NoError(t, err)
	assert.Equal(t, base.Pix, out.Pix)
}

func TestMergeTopNonBlackWins(t *testing.T) {
	base := frame.New(2, 1)
	base.Fill(10, 10, 10)
	top := frame.New(2, 1)
	top.Set(1, 0, 0, 0, 200)

	out, err := Merge(base, top)
	require.NoError(t, err)

	r, g, bl := out.At(0, 0)
	assert.Equal(t, []byte{10, 10, 10}, []byte{r, g, bl})
	r, g, bl = out.At(1, 0)
	assert.Equal(t, []byte{0, 0, 200}, []byte{r, g, bl})
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := frame.New(2, 2)
	base.Fill(5, 5, 5)
	top := frame.New(2, 2)
	top.Fill(7, 7, 7)

	out, err := Merge(base, top)
	require.NoError(t, err)
	out.Fill(0, 0, 0)

	r, _, _ := base.At(0, 0)
	assert.Equal(t, byte(5), r)
	r, _, _ = top.At(0, 0)
	assert.Equal(t, byte(7), r)
}

func TestMergeErrors(t *testing.T) {
	_, err := Merge()
	assert.Error(t, err)

	_, err = Merge(frame.New(2, 2), frame.New(3, 2))
	assert.Error(t, err)
}

func TestGammaAndBrightnessClamped(t *testing.T) {
	c := New(150, 9.0)
	assert.Equal(t, 100.0, c.Brightness())
	assert.Equal(t, 3.0, c.Gamma())

	c.SetBrightness(-5)
	c.SetGamma(0.1)
	assert.Equal(t, 0.0, c.Brightness())
	assert.Equal(t, 0.5, c.Gamma())
}

func TestApplyIdentityAtUnityGammaFullBrightness(t *testing.T) {
	c := New(100, 1.0)
	buf := frame.New(1, 1)
	buf.Set(0, 0, 0, 128, 255)

	c.Apply(buf)
	r, g, bl := buf.At(0, 0)
	assert.Equal(t, byte(0), r)
	assert.Equal(t, byte(128), g)
	assert.Equal(t, byte(255), bl)
}

func TestApplyGammaDarkensMidtones(t *testing.T) {
	c := New(100, 2.2)
	buf := frame.New(1, 1)
	buf.Set(0, 0, 128, 0, 255)

	c.Apply(buf)
	r, _, bl := buf.At(0, 0)
	// Endpoints are fixed by the power curve; midtones drop.
	assert.Equal(t, byte(255), bl)
	assert.Less(t, r, byte(128))
	assert.NotZero(t, r)
}

func TestApplyBrightnessScales(t *testing.T) {
	c := New(50, 1.0)
	buf := frame.New(1, 1)
	buf.Set(0, 0, 200, 100, 0)

	c.Apply(buf)
	r, g, bl := buf.At(0, 0)
	assert.Equal(t, byte(100), r)
	assert.Equal(t, byte(50), g)
	assert.Equal(t, byte(0), bl)

	c.SetBrightness(0)
	buf.Set(0, 0, 255, 255, 255)
	c.Apply(buf)
	r, g, bl = buf.At(0, 0)
	assert.Equal(t, []byte{0, 0, 0}, []byte{r, g, bl})
}

func TestCompositeMergesThenCorrects(t *testing.T) {
	c := New(50, 1.0)
	base := frame.New(1, 1)
	base.Fill(100, 0, 0)
	top := frame.New(1, 1)
	top.Fill(0, 200, 0)

	out, err := c.Composite(base, top)
	require.NoError(t, err)
	r, g, _ := out.At(0, 0)
	assert.Equal(t, byte(0), r)
	assert.Equal(t, byte(100), g)
}
