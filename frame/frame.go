package frame

import "fmt"

// Buffer is a row-major RGB pixel buffer, 8 bits per channel, top-left origin.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte // len = Width*Height*3
}

// New allocates a zeroed (black) buffer.
func New(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// At returns the RGB triple at (x, y).
func (b *Buffer) At(x, y int) (r, g, bl byte) {
	i := (y*b.Width + x) * 3
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Set writes the RGB triple at (x, y).
func (b *Buffer) Set(x, y int, r, g, bl byte) {
	i := (y*b.Width + x) * 3
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
}

// Fill sets every pixel to the given color.
func (b *Buffer) Fill(r, g, bl byte) {
	for i := 0; i < len(b.Pix); i += 3 {
		b.Pix[i] = r
		b.Pix[i+1] = g
		b.Pix[i+2] = bl
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := New(b.Width, b.Height)
	copy(out.Pix, b.Pix)
	return out
}

// FlipVertical reverses the row order in place, converting between
// bottom-left (GL readback) and top-left row order.
func (b *Buffer) FlipVertical() {
	rowSize := b.Width * 3
	tmp := make([]byte, rowSize)
	for y := 0; y < b.Height/2; y++ {
		top := b.Pix[y*rowSize : (y+1)*rowSize]
		bot := b.Pix[(b.Height-1-y)*rowSize : (b.Height-y)*rowSize]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// HConcat lays the given buffers out left to right into one buffer. All
// inputs must share the same height.
func HConcat(bufs []*Buffer) (*Buffer, error) {
	if len(bufs) == 0 {
		return nil, fmt.Errorf("no buffers to concatenate")
	}
	height := bufs[0].Height
	width := 0
	for _, b := range bufs {
		if b.Height != height {
			return nil, fmt.Errorf("buffer height mismatch: %d != %d", b.Height, height)
		}
		width += b.Width
	}
	out := New(width, height)
	xoff := 0
	for _, b := range bufs {
		rowSize := b.Width * 3
		for y := 0; y < height; y++ {
			dst := out.Pix[(y*width+xoff)*3:]
			src := b.Pix[y*rowSize : (y+1)*rowSize]
			copy(dst[:rowSize], src)
		}
		xoff += b.Width
	}
	return out, nil
}
