package mapper

import (
	"github.com/glowdeck/glowdeck/camera"
	"github.com/glowdeck/glowdeck/frame"
)

// RenderSpec describes one GPU pass: its resolution and, for mappers that
// reposition the camera per pass, the fixed camera to render it with.
// Camera is nil when the pass uses the live camera unchanged.
type RenderSpec struct {
	Width  int
	Height int
	Camera camera.Camera
}

// PixelMapper decides how many render passes a frame needs and how their
// pixel results are laid out into the final output frame.
type PixelMapper interface {
	// Specs returns the passes for the current frame, in render order.
	Specs() []RenderSpec
	// Layout combines the per-pass buffers, in the same order Specs
	// returned them, into one output frame.
	Layout(bufs []*frame.Buffer) (*frame.Buffer, error)
	// OutputSize is the dimensions Layout will produce.
	OutputSize() (int, int)
}
