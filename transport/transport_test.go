package transport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/glowdeck/glowdeck/frame"
)

func TestFuncAdapter(t *testing.T) {
	var got *frame.Buffer
	sink := Func(func(b *frame.Buffer) error {
		got = b
		return nil
	})

	buf := frame.New(2, 2)
	require.NoError(t, sink.Send(buf))
	assert.Same(t, buf, got)
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Send(frame.New(1, 1)))
}

func TestBMPFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	sink := &BMPFile{Path: path}

	buf := frame.New(3, 2)
	buf.Set(1, 0, 255, 0, 0)
	buf.Set(2, 1, 0, 0, 255)
	require.NoError(t, sink.Send(buf))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	r, g, b, _ := img.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	_, _, b, _ = img.At(2, 1).RGBA()
	assert.Equal(t, uint32(0xFFFF), b)

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestBMPFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	sink := &BMPFile{Path: path}

	first := frame.New(2, 2)
	require.NoError(t, sink.Send(first))

	second := frame.New(4, 4)
	second.Fill(0, 255, 0)
	require.NoError(t, sink.Send(second))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}
