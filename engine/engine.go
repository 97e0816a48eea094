package engine

import (
	"fmt"
	"os"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glowdeck/glowdeck/frame"
	"github.com/glowdeck/glowdeck/graphics"
	"github.com/glowdeck/glowdeck/shader"
	"github.com/glowdeck/glowdeck/uniforms"
)

// Initialize the OpenGL function pointers only once per process.
var glInitOnce sync.Once

// CompileError carries the compiler's raw diagnostic text for a failed
// shader build. The engine never retries; the caller (validation, live
// reload) decides whether to retry with corrected source.
type CompileError struct {
	Stage string // "vertex", "fragment" or "link"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, strings.TrimRight(e.Log, "\x00\n"))
}

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// Engine owns the compiled GPU program, the static quad that invokes the
// fragment program once per output pixel, the offscreen render target, and
// the per-channel textures. One Engine exists per renderer instance; it is
// torn down together with its context.
type Engine struct {
	ctx     graphics.Context
	sources *uniforms.Manager

	quadVAO uint32
	quadVBO uint32

	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32

	program     uint32
	blitProgram uint32
	uniformLocs map[string]int32
	channels    [4]channelTexture

	width      int
	height     int
	frameCount int32
	startTime  float64
}

// New creates an engine rendering at the given resolution into an FBO with
// a backing texture. The FBO stands in for the window-system target that a
// headless context does not have.
func New(ctx graphics.Context, sources *uniforms.Manager, width, height int) (*Engine, error) {
	e := &Engine{
		ctx:     ctx,
		sources: sources,
		width:   width,
		height:  height,
	}

	e.ctx.MakeCurrent()
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	gl.GenVertexArrays(1, &e.quadVAO)
	gl.GenBuffers(1, &e.quadVBO)
	gl.BindVertexArray(e.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, e.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if err := e.createRenderTarget(); err != nil {
		return nil, err
	}

	isGLES := ctx.IsGLES()
	blit, err := newProgram(shader.GenerateVertexShader(isGLES), shader.GetBlitFragmentShader(false, isGLES))
	if err != nil {
		return nil, fmt.Errorf("failed to create blit program: %w", err)
	}
	e.blitProgram = blit

	// RGB readback rows are not 4-byte aligned for arbitrary widths.
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)

	e.startTime = ctx.Time()
	return e, nil
}

func (e *Engine) createRenderTarget() error {
	gl.GenFramebuffers(1, &e.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, e.fbo)

	gl.GenTextures(1, &e.textureID)
	gl.BindTexture(gl.TEXTURE_2D, e.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(e.width), int32(e.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, e.textureID, 0)

	gl.GenRenderbuffers(1, &e.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, e.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(e.width), int32(e.height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, e.depthRenderbuffer)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("offscreen fbo is not complete")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// SetResolution reallocates the render target when a pass needs a different
// resolution than the previous one.
func (e *Engine) SetResolution(width, height int) {
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	gl.BindTexture(gl.TEXTURE_2D, e.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindRenderbuffer(gl.RENDERBUFFER, e.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
}

// Load reads, wraps, and compiles a fragment program, replacing the current
// one on success. Channel textures are torn down and reloaded from the new
// shader's side files. Do not call concurrently with Render.
func (e *Engine) Load(sourcePath string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("shader source not found: %w", err)
	}

	isGLES := e.ctx.IsGLES()
	fragSource := shader.GetFragmentShader(string(src), isGLES)
	program, err := newProgram(shader.GenerateVertexShader(isGLES), fragSource)
	if err != nil {
		return err
	}

	if e.program != 0 {
		gl.DeleteProgram(e.program)
	}
	e.destroyChannels()

	e.program = program
	e.uniformLocs = discoverUniforms(program)
	e.channels = loadChannels(sourcePath)
	e.frameCount = 0
	e.startTime = e.ctx.Time()
	return nil
}

// UniformNames returns the names of the program's active uniforms, for
// inspection and tests.
func (e *Engine) UniformNames() []string {
	names := make([]string, 0, len(e.uniformLocs))
	for name := range e.uniformLocs {
		names = append(names, name)
	}
	return names
}

// discoverUniforms enumerates the program's active uniforms into a
// name-to-location table. The uniform list is never hard-coded: preamble
// uniforms the shader does not use simply never appear here and are skipped
// at dispatch time.
func discoverUniforms(program uint32) map[string]int32 {
	locs := make(map[string]int32)
	var count int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		var buf [256]byte
		gl.GetActiveUniform(program, uint32(i), int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		name = strings.TrimSuffix(name, "[0]")
		locs[name] = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}
	return locs
}

// Render merges all uniform sources, applies the engine-owned uniforms on
// top (they always win), binds channel textures, and draws the quad. GPU
// state (bound program, textures, framebuffer) is mutated.
func (e *Engine) Render() error {
	if e.program == 0 {
		return fmt.Errorf("no shader program loaded")
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, e.fbo)
	gl.UseProgram(e.program)

	merged := e.sources.Merged()
	merged["iResolution"] = uniforms.Vec3(float32(e.width), float32(e.height), 1)
	merged["iTime"] = uniforms.Float(float32(e.ctx.Time() - e.startTime))
	merged["iFrame"] = uniforms.Int(e.frameCount)
	merged["iMouse"] = mouseValue(e.ctx.GetMouseInput())

	for name, v := range merged {
		e.applyUniform(name, v)
	}
	e.bindChannels()

	gl.Viewport(0, 0, int32(e.width), int32(e.height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.BindVertexArray(e.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	e.unbindChannels()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	e.frameCount++
	return nil
}

func mouseValue(m [4]float32) uniforms.Value {
	return uniforms.Vec4(m[0], m[1], m[2], m[3])
}

// applyUniform dispatches one value. Names that did not resolve in the
// compiled program are silently skipped.
func (e *Engine) applyUniform(name string, v uniforms.Value) {
	loc, ok := e.uniformLocs[name]
	if !ok || loc == -1 {
		return
	}
	switch v.Kind {
	case uniforms.KindFloat:
		gl.Uniform1f(loc, v.Vec[0])
	case uniforms.KindInt:
		gl.Uniform1i(loc, v.Int)
	case uniforms.KindVec2:
		gl.Uniform2f(loc, v.Vec[0], v.Vec[1])
	case uniforms.KindVec3:
		gl.Uniform3f(loc, v.Vec[0], v.Vec[1], v.Vec[2])
	case uniforms.KindVec4:
		gl.Uniform4f(loc, v.Vec[0], v.Vec[1], v.Vec[2], v.Vec[3])
	}
}

func (e *Engine) bindChannels() {
	for i, ch := range e.channels {
		if ch.id == 0 {
			continue
		}
		loc, ok := e.uniformLocs[fmt.Sprintf("iChannel%d", i)]
		if !ok || loc == -1 {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, ch.id)
		gl.Uniform1i(loc, int32(i))
	}
}

func (e *Engine) unbindChannels() {
	for i, ch := range e.channels {
		if ch.id == 0 {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
}

// ReadPixels blocks until the pass completes and returns a fresh top-left
// row-order RGB buffer. Ownership passes to the caller.
func (e *Engine) ReadPixels() (*frame.Buffer, error) {
	buf := frame.New(e.width, e.height)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, e.fbo)
	gl.ReadPixels(0, 0, int32(e.width), int32(e.height), gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(buf.Pix))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	// GL reads bottom-left first.
	buf.FlipVertical()
	return buf, nil
}

// Blit draws the offscreen texture into the default framebuffer at the
// given size. Used by the preview window only.
func (e *Engine) Blit(width, height int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(e.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, e.textureID)
	gl.BindVertexArray(e.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (e *Engine) destroyChannels() {
	for i := range e.channels {
		if e.channels[i].id != 0 {
			gl.DeleteTextures(1, &e.channels[i].id)
			e.channels[i] = channelTexture{}
		}
	}
}

// Shutdown releases all GPU resources. The context itself is shut down by
// the owner that created it.
func (e *Engine) Shutdown() {
	if e.program != 0 {
		gl.DeleteProgram(e.program)
	}
	gl.DeleteProgram(e.blitProgram)
	e.destroyChannels()
	gl.DeleteFramebuffers(1, &e.fbo)
	gl.DeleteTextures(1, &e.textureID)
	gl.DeleteRenderbuffers(1, &e.depthRenderbuffer)
	gl.DeleteBuffers(1, &e.quadVBO)
	gl.DeleteVertexArrays(1, &e.quadVAO)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		return 0, &CompileError{Stage: "link", Log: logText}
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csources, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(sh, logLength, nil, gl.Str(logText))
		gl.DeleteShader(sh)
		return 0, &CompileError{Stage: stage, Log: logText}
	}
	return sh, nil
}
