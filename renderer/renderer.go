package renderer

import (
	"fmt"

	"github.com/glowdeck/glowdeck/frame"
	"github.com/glowdeck/glowdeck/mapper"
	"github.com/glowdeck/glowdeck/uniforms"
)

// PassEngine is the slice of the shader execution engine the unified
// renderer drives per pass. The concrete engine satisfies it; tests
// substitute a fake.
type PassEngine interface {
	SetResolution(width, height int)
	Render() error
	ReadPixels() (*frame.Buffer, error)
}

// Renderer orchestrates one frame: it walks the mapper's render specs,
// repositions the camera for passes that carry one, drives the engine, and
// hands the collected results back to the mapper for layout. All passes of a
// frame run strictly in sequence; they share one program and viewport.
type Renderer struct {
	engine PassEngine
	mapper mapper.PixelMapper
	camera *uniforms.CameraSource

	lastWidth  int
	lastHeight int
}

// New creates a unified renderer. camera may be nil when no camera source is
// registered; per-pass overrides are then skipped.
func New(engine PassEngine, m mapper.PixelMapper, camera *uniforms.CameraSource) *Renderer {
	return &Renderer{
		engine:     engine,
		mapper:     m,
		camera:     camera,
		lastWidth:  -1,
		lastHeight: -1,
	}
}

// RenderFrame renders all passes for one frame and returns the laid-out
// output buffer. The camera override is always cleared before returning,
// even on error.
func (r *Renderer) RenderFrame() (*frame.Buffer, error) {
	specs := r.mapper.Specs()
	if len(specs) == 0 {
		return nil, fmt.Errorf("mapper produced no render specs")
	}

	if r.camera != nil {
		defer r.camera.ClearOverride()
	}

	bufs := make([]*frame.Buffer, 0, len(specs))
	for _, spec := range specs {
		if spec.Camera != nil && r.camera != nil {
			r.camera.SetOverride(spec.Camera)
		}
		if spec.Width != r.lastWidth || spec.Height != r.lastHeight {
			r.engine.SetResolution(spec.Width, spec.Height)
			r.lastWidth = spec.Width
			r.lastHeight = spec.Height
		}
		if err := r.engine.Render(); err != nil {
			return nil, err
		}
		buf, err := r.engine.ReadPixels()
		if err != nil {
			return nil, err
		}
		bufs = append(bufs, buf)
	}

	return r.mapper.Layout(bufs)
}

// OutputSize is the dimensions RenderFrame produces.
func (r *Renderer) OutputSize() (int, int) {
	return r.mapper.OutputSize()
}
