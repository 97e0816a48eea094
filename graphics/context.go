package graphics

// Context defines the interface for an OpenGL context provider. Both the
// headless (GBM/EGL) and the hidden-window (GLFW) implementations satisfy it.
type Context interface {
	// MakeCurrent binds the context to the calling goroutine's OS thread.
	// It must be explicit and idempotent: the shader validator runs on its
	// own context from a separate goroutine and calls this before any GL call.
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame. It is a no-op for headless targets.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// IsGLES reports whether the context speaks GLSL ES rather than desktop GLSL.
	IsGLES() bool
	// GetMouseInput returns the current mouse state: x, y, clickX, clickY.
	// Headless contexts return zeros.
	GetMouseInput() [4]float32
}
