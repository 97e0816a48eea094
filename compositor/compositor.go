package compositor

import (
	"fmt"
	"math"

	"github.com/glowdeck/glowdeck/frame"
)

const (
	minGamma = 0.5
	maxGamma = 3.0
)

// Compositor merges independently rendered layers with a non-black-wins
// transparency rule and applies brightness and gamma correction before the
// combined frame is handed to the display transport.
type Compositor struct {
	brightness float64 // percent, linear scale
	gamma      float64 // power-law exponent, clamped to [0.5, 3.0]
	lut        [256]byte
}

func New(brightness, gamma float64) *Compositor {
	c := &Compositor{}
	c.SetBrightness(brightness)
	c.SetGamma(gamma)
	return c
}

func (c *Compositor) SetBrightness(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	c.brightness = percent
	c.rebuildLUT()
}

func (c *Compositor) SetGamma(gamma float64) {
	if gamma < minGamma {
		gamma = minGamma
	}
	if gamma > maxGamma {
		gamma = maxGamma
	}
	c.gamma = gamma
	c.rebuildLUT()
}

func (c *Compositor) Brightness() float64 { return c.brightness }
func (c *Compositor) Gamma() float64      { return c.gamma }

func (c *Compositor) rebuildLUT() {
	scale := c.brightness / 100
	for i := 0; i < 256; i++ {
		v := math.Pow(float64(i)/255, c.gamma) * scale
		c.lut[i] = byte(math.Round(v * 255))
	}
}

// Merge combines layers bottom-up: for each pixel the topmost non-black
// layer wins; pixels black in every layer stay black. All layers must share
// one size. Inputs are read-only; the result is a fresh buffer.
func Merge(layers ...*frame.Buffer) (*frame.Buffer, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("no layers to merge")
	}
	w, h := layers[0].Width, layers[0].Height
	for _, l := range layers[1:] {
		if l.Width != w || l.Height != h {
			return nil, fmt.Errorf("layer size mismatch: %dx%d != %dx%d", l.Width, l.Height, w, h)
		}
	}

	out := layers[0].Clone()
	for _, l := range layers[1:] {
		for i := 0; i < len(l.Pix); i += 3 {
			if l.Pix[i] != 0 || l.Pix[i+1] != 0 || l.Pix[i+2] != 0 {
				out.Pix[i] = l.Pix[i]
				out.Pix[i+1] = l.Pix[i+1]
				out.Pix[i+2] = l.Pix[i+2]
			}
		}
	}
	return out, nil
}

// Apply runs the brightness/gamma LUT over buf in place and returns it.
func (c *Compositor) Apply(buf *frame.Buffer) *frame.Buffer {
	for i, v := range buf.Pix {
		buf.Pix[i] = c.lut[v]
	}
	return buf
}

// Composite merges the layers and applies correction. Ownership of the
// returned buffer passes to the display transport for this frame.
func (c *Compositor) Composite(layers ...*frame.Buffer) (*frame.Buffer, error) {
	merged, err := Merge(layers...)
	if err != nil {
		return nil, err
	}
	return c.Apply(merged), nil
}
