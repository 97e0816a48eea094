//go:build !linux || !cgo

package headless

import (
	"fmt"

	"github.com/glowdeck/glowdeck/graphics"
)

// DefaultRenderNode exists on all platforms so callers can reference it;
// headless rendering itself is Linux-only.
const DefaultRenderNode = "/dev/dri/renderD128"

func New(renderNode string, width, height int) (graphics.Context, error) {
	return nil, fmt.Errorf("gbm headless rendering is not supported on this platform")
}
