package engine

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelPathsConvention(t *testing.T) {
	paths := ChannelPaths("shaders/plasma.glsl", 0)
	require.Len(t, paths, 4)
	assert.Equal(t, "shaders/plasma.channel0.png", paths[0])
	assert.Equal(t, "shaders/plasma.channel0.jpg", paths[1])
	assert.Equal(t, "shaders/plasma.channel0.jpeg", paths[2])
	assert.Equal(t, "shaders/plasma.channel0.bmp", paths[3])

	paths = ChannelPaths("cube.frag", 3)
	assert.Equal(t, "cube.channel3.png", paths[0])
}

func TestChannelPathsNoExtension(t *testing.T) {
	paths := ChannelPaths("plasma", 1)
	assert.Equal(t, "plasma.channel1.png", paths[0])
}

func TestVflip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Pix[0] = 0xAA          // top row red
	src.Pix[src.Stride] = 0x55 // bottom row red

	out := vflip(src)
	assert.Equal(t, byte(0x55), out.Pix[0])
	assert.Equal(t, byte(0xAA), out.Pix[1*out.Stride])
}
