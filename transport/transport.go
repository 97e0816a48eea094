package transport

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/bmp"

	"github.com/glowdeck/glowdeck/frame"
)

// Transport is the display-side consumer of corrected output frames: the
// LED matrix driver on the device, a file sink for debugging, or nothing.
// Send is called once per frame; the buffer belongs to the transport for
// that frame only.
type Transport interface {
	Send(*frame.Buffer) error
}

// Func adapts a plain function to the Transport interface.
type Func func(*frame.Buffer) error

func (f Func) Send(b *frame.Buffer) error { return f(b) }

// Discard drops every frame, for desktop runs where the preview window is
// the only consumer and no matrix is attached.
var Discard Transport = Func(func(*frame.Buffer) error { return nil })

// BMPFile writes each frame as a BMP image to a fixed path. The write goes
// through a temp file and rename so a concurrent reader never observes a
// half-written image.
type BMPFile struct {
	Path string
}

func (s *BMPFile) Send(b *frame.Buffer) error {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl := b.At(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = bl
			img.Pix[i+3] = 0xFF
		}
	}

	tmp := s.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("bmp encode failed: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.Path)
}
