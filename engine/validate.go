package engine

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glowdeck/glowdeck/graphics"
	"github.com/glowdeck/glowdeck/shader"
)

// Validator compiles fragment source without touching the live renderer. It
// owns a dedicated context because GL contexts are not shared across
// goroutines; Check makes that context current before every GPU call, so a
// validation worker can run concurrently with the render loop.
type Validator struct {
	ctx graphics.Context
}

func NewValidator(ctx graphics.Context) (*Validator, error) {
	v := &Validator{ctx: ctx}
	v.ctx.MakeCurrent()
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	return v, initErr
}

// Check wraps source with the standard preamble and compiles it. A nil
// return means the source is valid; otherwise the *CompileError carries the
// compiler diagnostics for the caller to act on.
func (v *Validator) Check(source string) error {
	v.ctx.MakeCurrent()
	isGLES := v.ctx.IsGLES()
	program, err := newProgram(
		shader.GenerateVertexShader(isGLES),
		shader.GetFragmentShader(source, isGLES),
	)
	if err != nil {
		return err
	}
	gl.DeleteProgram(program)
	return nil
}

func (v *Validator) Shutdown() {
	v.ctx.Shutdown()
}
