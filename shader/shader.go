package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const blitFragmentShaderSourceFlipGL = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`

const blitFragmentShaderSourceGL = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const blitFragmentShaderSourceFlipGLES = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`

const blitFragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// ────────────────────────────────── Public API ─────────────────────────────────

func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

func GetBlitFragmentShader(flip, isGLES bool) string {
	if isGLES {
		if flip {
			return blitFragmentShaderSourceFlipGLES
		}
		return blitFragmentShaderSourceGLES
	}
	if flip {
		return blitFragmentShaderSourceFlipGL
	}
	return blitFragmentShaderSourceGL
}

// ────────────────────── Dynamic preamble / user code glue ──────────────────────

// uniformDecls is the fixed uniform contract every fragment program is
// compiled against. Unused declarations are eliminated by the compiler and
// never resolve at dispatch time, which is fine. There is deliberately no
// extension point beyond four channels and four parameters.
const uniformDecls = `
uniform vec3  iResolution;
uniform float iTime;
uniform int   iFrame;
uniform vec4  iMouse;
uniform vec4  iInputDir;
uniform sampler2D iChannel0;
uniform sampler2D iChannel1;
uniform sampler2D iChannel2;
uniform sampler2D iChannel3;
uniform vec3  iCamPos;
uniform vec3  iCamForward;
uniform vec3  iCamRight;
uniform vec3  iCamUp;
uniform float iBPM;
uniform float iBeatPhase;
uniform float iBeatPulse;
uniform float iBeatConfidence;
uniform float iAudioLevel;
uniform float iAudioLow;
uniform float iAudioMid;
uniform float iAudioHigh;
uniform float iParam1;
uniform float iParam2;
uniform float iParam3;
uniform float iParam4;
uniform vec4  iParams;
uniform int   iDebugAxes;
`

// GeneratePreamble returns the declarations and helper polyfills prepended
// to user fragment source.
func GeneratePreamble(isGLES bool) string {
	if isGLES {
		return `#version 300 es
precision highp float;
precision highp int;
` + uniformDecls + `
in vec2 frag_uv;
out vec4 fragColor;

#define FAST_TANH_BODY(x) ((x) * (27.0 + (x)*(x)) / (27.0 + 9.0*(x)*(x)))
float fast_tanh(float x) { return FAST_TANH_BODY(x); }
vec2  fast_tanh(vec2  x) { return FAST_TANH_BODY(x); }
vec3  fast_tanh(vec3  x) { return FAST_TANH_BODY(x); }
vec4  fast_tanh(vec4  x) { return FAST_TANH_BODY(x); }
#define tanh fast_tanh
`
	}
	return `#version 410 core
` + uniformDecls + `
in vec2 frag_uv;
out vec4 fragColor;
`
}

func GetMain() string {
	return `
void main(void)
{
    mainImage(fragColor, gl_FragCoord.xy);
}
`
}

// GetFragmentShader combines preamble + user fragment program + wrapper. The
// user source must define mainImage(out vec4, in vec2).
func GetFragmentShader(user string, isGLES bool) string {
	return GeneratePreamble(isGLES) + user + GetMain()
}
