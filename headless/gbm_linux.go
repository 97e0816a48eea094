//go:build linux && cgo

package headless

import (
	"fmt"
	"log"
	"os"
	"time"
	"unsafe"
)

/*
#cgo LDFLAGS: -lEGL -lGLESv2 -lgbm
#include <stdlib.h>
#include <gbm.h>
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Go doesn't have a great way to call function pointers from C,
// so we'll create a simple wrapper for the extension function.
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_gbm_display(void *gbm_device) {
    if (eglGetPlatformDisplayEXT_ptr) {
        return eglGetPlatformDisplayEXT_ptr(EGL_PLATFORM_GBM_KHR, gbm_device, NULL);
    }
    return EGL_NO_DISPLAY;
}
*/
import "C"

// DefaultRenderNode is the DRM render node probed when none is configured.
const DefaultRenderNode = "/dev/dri/renderD128"

// Headless is the embedded-Linux provider: a GBM device on a DRM render
// node backing an EGL context with no window surface. Rendering targets the
// engine's FBO; when the driver lacks surfaceless support a 1x1 pbuffer
// satisfies EGL's surface requirement instead.
type Headless struct {
	drmFile *os.File
	gbm     *C.struct_gbm_device
	display C.EGLDisplay
	context C.EGLContext
	surface C.EGLSurface
	width   int
	height  int
	created time.Time
}

// New opens the DRM render node and builds the EGL context. A missing
// device node or an incompatible EGL configuration is a fatal construction
// error; it is never retried.
func New(renderNode string, width, height int) (*Headless, error) {
	if renderNode == "" {
		renderNode = DefaultRenderNode
	}

	drmFile, err := os.OpenFile(renderNode, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open DRM render node %s: %w", renderNode, err)
	}

	h := &Headless{
		drmFile: drmFile,
		width:   width,
		height:  height,
		created: time.Now(),
	}

	h.gbm = C.gbm_create_device(C.int(drmFile.Fd()))
	if h.gbm == nil {
		h.Shutdown()
		return nil, fmt.Errorf("failed to create GBM device on %s", renderNode)
	}

	C.initialize_egl_extension_pointers()
	h.display = C.get_gbm_display(unsafe.Pointer(h.gbm))
	if h.display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
		h.Shutdown()
		return nil, fmt.Errorf("failed to get EGL display from GBM device")
	}

	var major, minor C.EGLint
	if C.eglInitialize(h.display, &major, &minor) == C.EGL_FALSE {
		h.Shutdown()
		return nil, fmt.Errorf("failed to initialize EGL")
	}
	log.Printf("EGL Initialized on %s. Version: %d.%d", renderNode, major, minor)

	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_DEPTH_SIZE, 24,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_ES3_BIT,
		C.EGL_NONE,
	}

	var config C.EGLConfig
	var numConfig C.EGLint
	if C.eglChooseConfig(h.display, &configAttribs[0], &config, 1, &numConfig) == C.EGL_FALSE || numConfig == 0 {
		h.Shutdown()
		return nil, fmt.Errorf("no compatible EGL config on %s", renderNode)
	}

	contextAttribs := []C.EGLint{
		C.EGL_CONTEXT_CLIENT_VERSION, 3,
		C.EGL_NONE,
	}
	h.context = C.eglCreateContext(h.display, config, C.EGLContext(C.EGL_NO_CONTEXT), &contextAttribs[0])
	if h.context == C.EGLContext(C.EGL_NO_CONTEXT) {
		h.Shutdown()
		return nil, fmt.Errorf("failed to create EGL context")
	}

	if hasExtension(h.display, "EGL_KHR_surfaceless_context") {
		h.surface = C.EGLSurface(C.EGL_NO_SURFACE)
	} else {
		// The driver insists on a surface; a minimal pbuffer will do, the
		// real render target is the engine's FBO.
		pbufferAttribs := []C.EGLint{
			C.EGL_WIDTH, 1,
			C.EGL_HEIGHT, 1,
			C.EGL_NONE,
		}
		h.surface = C.eglCreatePbufferSurface(h.display, config, &pbufferAttribs[0])
		if h.surface == C.EGLSurface(C.EGL_NO_SURFACE) {
			h.Shutdown()
			return nil, fmt.Errorf("failed to create pbuffer surface")
		}
	}

	h.MakeCurrent()
	return h, nil
}

func hasExtension(display C.EGLDisplay, name string) bool {
	exts := C.GoString(C.eglQueryString(display, C.EGL_EXTENSIONS))
	for _, e := range splitSpace(exts) {
		if e == name {
			return true
		}
	}
	return false
}

func splitSpace(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

// MakeCurrent binds the context to the calling thread. Idempotent; the
// validation worker calls it before every GPU call on its own instance.
func (h *Headless) MakeCurrent() {
	if C.eglMakeCurrent(h.display, h.surface, h.surface, h.context) == C.EGL_FALSE {
		log.Printf("Warning: eglMakeCurrent failed: 0x%x", uint32(C.eglGetError()))
	}
}

func (h *Headless) Shutdown() {
	if h.display != C.EGLDisplay(C.EGL_NO_DISPLAY) {
		C.eglMakeCurrent(h.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
		if h.context != C.EGLContext(C.EGL_NO_CONTEXT) {
			C.eglDestroyContext(h.display, h.context)
		}
		if h.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
			C.eglDestroySurface(h.display, h.surface)
		}
		C.eglTerminate(h.display)
		h.display = C.EGLDisplay(C.EGL_NO_DISPLAY)
	}
	if h.gbm != nil {
		C.gbm_device_destroy(h.gbm)
		h.gbm = nil
	}
	if h.drmFile != nil {
		h.drmFile.Close()
		h.drmFile = nil
	}
}

func (h *Headless) ShouldClose() bool { return false }

// EndFrame is a no-op: there is nothing to present, frames leave through
// pixel readback.
func (h *Headless) EndFrame() {}

func (h *Headless) GetFramebufferSize() (int, int) {
	return h.width, h.height
}

func (h *Headless) Time() float64 {
	return time.Since(h.created).Seconds()
}

func (h *Headless) IsGLES() bool { return true }

func (h *Headless) GetMouseInput() [4]float32 {
	return [4]float32{}
}
