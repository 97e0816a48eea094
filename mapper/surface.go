package mapper

import (
	"fmt"

	"github.com/glowdeck/glowdeck/frame"
)

// Surface maps the shader onto a single flat output: one pass at the full
// output resolution, identity layout.
type Surface struct {
	width  int
	height int
}

func NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

func (s *Surface) Specs() []RenderSpec {
	return []RenderSpec{{Width: s.width, Height: s.height}}
}

func (s *Surface) Layout(bufs []*frame.Buffer) (*frame.Buffer, error) {
	if len(bufs) != 1 {
		return nil, fmt.Errorf("surface mapper expects 1 pass result, got %d", len(bufs))
	}
	return bufs[0], nil
}

func (s *Surface) OutputSize() (int, int) {
	return s.width, s.height
}
