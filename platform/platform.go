package platform

import (
	"fmt"

	"github.com/glowdeck/glowdeck/glfwcontext"
	"github.com/glowdeck/glowdeck/graphics"
	"github.com/glowdeck/glowdeck/headless"
)

// Target names a context-provider strategy. The caller decides the target;
// the engine never sniffs the platform itself.
type Target string

const (
	// TargetHeadless renders through a GBM/EGL context on a DRM render node.
	TargetHeadless Target = "headless"
	// TargetWindow renders through a visible GLFW preview window.
	TargetWindow Target = "window"
	// TargetHidden renders through a hidden GLFW window, for offscreen use
	// on a desktop (including the shader validator's dedicated context).
	TargetHidden Target = "hidden"
)

// Options configures context creation for a target.
type Options struct {
	Width      int
	Height     int
	RenderNode string // headless only; empty means headless.DefaultRenderNode
}

// New creates the context provider for the given target. For window targets
// glfwcontext.InitGraphics must have been called first.
func New(target Target, opts Options) (graphics.Context, error) {
	switch target {
	case TargetHeadless:
		return headless.New(opts.RenderNode, opts.Width, opts.Height)
	case TargetWindow:
		return glfwcontext.New(opts.Width, opts.Height, true, nil)
	case TargetHidden:
		return glfwcontext.New(opts.Width, opts.Height, false, nil)
	default:
		return nil, fmt.Errorf("unknown render target %q", target)
	}
}
